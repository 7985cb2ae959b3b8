// File: internal/infra/memory/history_repo.go
package memory

import (
	"sync"
	"time"

	"telegram-ai-companion/internal/domain/model"
	"telegram-ai-companion/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo keeps the rolling conversation window for every user in
// process memory. When a user's sequence grows past maxTurns the oldest
// turns are dropped first; the most recent turns always survive.
type HistoryRepo struct {
	mu       sync.RWMutex
	byUser   map[int64][]model.Turn
	lastSeen map[int64]time.Time
	maxTurns int
}

func NewHistoryRepo(maxTurns int) *HistoryRepo {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &HistoryRepo{
		byUser:   make(map[int64][]model.Turn),
		lastSeen: make(map[int64]time.Time),
		maxTurns: maxTurns,
	}
}

func (r *HistoryRepo) Append(userID int64, turn model.Turn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq := append(r.byUser[userID], turn)
	if len(seq) > r.maxTurns {
		// FIFO truncation: keep the newest maxTurns entries. Copy instead of
		// re-slicing so dropped turns do not pin the backing array.
		trimmed := make([]model.Turn, r.maxTurns)
		copy(trimmed, seq[len(seq)-r.maxTurns:])
		seq = trimmed
	}
	r.byUser[userID] = seq
	r.lastSeen[userID] = time.Now()
}

func (r *HistoryRepo) History(userID int64) []model.Turn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seq := r.byUser[userID]
	out := make([]model.Turn, len(seq))
	copy(out, seq)
	return out
}

func (r *HistoryRepo) Reset(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, userID)
	delete(r.lastSeen, userID)
}

// PruneIdle drops users who have been silent since before the cutoff. It
// bounds resident memory on long uptimes without touching active chats.
func (r *HistoryRepo) PruneIdle(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for userID, seen := range r.lastSeen {
		if seen.Before(before) {
			delete(r.byUser, userID)
			delete(r.lastSeen, userID)
			n++
		}
	}
	return n
}
