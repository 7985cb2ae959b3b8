// File: internal/domain/ports/repository/history.go
package repository

import (
	"time"

	"telegram-ai-companion/internal/domain/model"
)

// HistoryRepository is the bounded per-user conversation buffer. It lives in
// process memory only; contents are lost on restart. Implementations must be
// safe for concurrent use across users, but callers that need a coherent
// request/response order for a single user serialize on that user themselves
// (see usecase.ConversationUseCase).
type HistoryRepository interface {
	// Append adds a turn to the end of the user's sequence, dropping the
	// oldest turns when the bound is exceeded.
	Append(userID int64, turn model.Turn)

	// History returns a copy of the current sequence. An unknown user yields
	// an empty sequence, never nil semantics worth distinguishing.
	History(userID int64) []model.Turn

	// Reset replaces the user's sequence with an empty one.
	Reset(userID int64)

	// PruneIdle removes the sequences of users whose last turn is older
	// than before, returning how many users were dropped.
	PruneIdle(before time.Time) int
}
