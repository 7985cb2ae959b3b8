// File: internal/domain/error.go
package domain

import "errors"

var (
	// Common domain errors
	ErrInvalidArgument = errors.New("invalid argument")

	// Recognition errors surfaced to the user as recoverable failures.
	ErrSpeechNotUnderstood      = errors.New("speech could not be understood")
	ErrSpeechServiceUnavailable = errors.New("speech recognition service unavailable")
	ErrNoTextRecognized         = errors.New("no text recognized in image")
)
