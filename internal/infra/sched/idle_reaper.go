// File: internal/infra/sched/idle_reaper.go
package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-ai-companion/internal/domain/ports/repository"
	"telegram-ai-companion/internal/infra/metrics"
)

// IdleReaper periodically drops conversation histories of users who have
// been silent longer than ttl, bounding resident memory over long uptimes.
type IdleReaper struct {
	interval time.Duration
	ttl      time.Duration
	history  repository.HistoryRepository
	log      *zerolog.Logger
}

func NewIdleReaper(interval, ttl time.Duration, history repository.HistoryRepository, logger *zerolog.Logger) *IdleReaper {
	reaperLog := logger.With().Str("component", "IdleReaper").Logger()
	return &IdleReaper{
		interval: interval,
		ttl:      ttl,
		history:  history,
		log:      &reaperLog,
	}
}

func (w *IdleReaper) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Dur("ttl", w.ttl).Msg("starting idle reaper")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stopping idle reaper")
			return ctx.Err()
		case <-ticker.C:
			n := w.history.PruneIdle(time.Now().Add(-w.ttl))
			if n > 0 {
				metrics.IncHistoriesPruned(n)
				w.log.Info().Int("count", n).Msg("idle histories pruned")
			}
		}
	}
}
