package adapter

import "context"

// SpeechTranscriber converts linear-PCM audio into text for a fixed target
// language. Implementations must return domain.ErrSpeechNotUnderstood when
// the service produced no transcript and wrap
// domain.ErrSpeechServiceUnavailable when the service itself failed.
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
}

// TextExtractor runs OCR over an image file and returns the extracted text,
// possibly empty.
type TextExtractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// AudioTranscoder converts the transport's compressed voice container into
// a linear-PCM container the transcriber accepts.
type AudioTranscoder interface {
	ToWAV(ctx context.Context, srcPath, destPath string) error
}
