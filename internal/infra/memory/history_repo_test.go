package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"telegram-ai-companion/internal/domain/model"
)

func TestHistoryRepo_AppendBound(t *testing.T) {
	repo := NewHistoryRepo(10)

	for i := 0; i < 25; i++ {
		repo.Append(1, model.NewTurn(model.RoleUser, fmt.Sprintf("msg-%d", i)))
		if got := len(repo.History(1)); got > 10 {
			t.Fatalf("history length %d exceeds bound after %d appends", got, i+1)
		}
	}

	seq := repo.History(1)
	if len(seq) != 10 {
		t.Fatalf("expected 10 turns, got %d", len(seq))
	}
	// Oldest entries dropped first, relative order preserved.
	for i, turn := range seq {
		want := fmt.Sprintf("msg-%d", 15+i)
		if turn.Content != want {
			t.Errorf("turn %d: expected %q, got %q", i, want, turn.Content)
		}
	}
}

func TestHistoryRepo_UnknownUserIsEmpty(t *testing.T) {
	repo := NewHistoryRepo(10)
	if got := repo.History(42); len(got) != 0 {
		t.Fatalf("expected empty sequence for unknown user, got %d turns", len(got))
	}
}

func TestHistoryRepo_Reset(t *testing.T) {
	repo := NewHistoryRepo(10)
	repo.Append(7, model.NewTurn(model.RoleUser, "hello"))
	repo.Append(7, model.NewTurn(model.RoleAssistant, "hi"))

	repo.Reset(7)

	if got := repo.History(7); len(got) != 0 {
		t.Fatalf("expected empty sequence after reset, got %d turns", len(got))
	}
}

func TestHistoryRepo_ReturnsCopy(t *testing.T) {
	repo := NewHistoryRepo(10)
	repo.Append(1, model.NewTurn(model.RoleUser, "original"))

	seq := repo.History(1)
	seq[0].Content = "mutated"

	if got := repo.History(1)[0].Content; got != "original" {
		t.Errorf("stored turn mutated through returned slice: %q", got)
	}
}

func TestHistoryRepo_ConcurrentUsers(t *testing.T) {
	repo := NewHistoryRepo(10)

	var wg sync.WaitGroup
	for u := int64(1); u <= 8; u++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				repo.Append(userID, model.NewTurn(model.RoleUser, fmt.Sprintf("u%d-%d", userID, i)))
			}
		}(u)
	}
	wg.Wait()

	for u := int64(1); u <= 8; u++ {
		seq := repo.History(u)
		if len(seq) != 10 {
			t.Errorf("user %d: expected 10 turns, got %d", u, len(seq))
		}
		for _, turn := range seq {
			wantPrefix := fmt.Sprintf("u%d-", u)
			if len(turn.Content) < len(wantPrefix) || turn.Content[:len(wantPrefix)] != wantPrefix {
				t.Errorf("user %d: foreign turn %q", u, turn.Content)
			}
		}
	}
}

func TestPruneIdle(t *testing.T) {
	repo := NewHistoryRepo(10)
	repo.Append(1, model.NewTurn(model.RoleUser, "old"))
	repo.Append(2, model.NewTurn(model.RoleUser, "also old"))

	time.Sleep(10 * time.Millisecond)
	cutoff := time.Now()
	repo.Append(3, model.NewTurn(model.RoleUser, "fresh"))

	if n := repo.PruneIdle(cutoff); n != 2 {
		t.Fatalf("expected 2 users pruned, got %d", n)
	}
	if len(repo.History(1)) != 0 || len(repo.History(2)) != 0 {
		t.Error("idle users should be gone")
	}
	if len(repo.History(3)) != 1 {
		t.Error("active user must survive pruning")
	}

	// Activity after pruning starts a fresh window.
	repo.Append(1, model.NewTurn(model.RoleUser, "back again"))
	if got := repo.History(1); len(got) != 1 || got[0].Content != "back again" {
		t.Errorf("unexpected history after return: %v", got)
	}
}
