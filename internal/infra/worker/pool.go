// File: internal/infra/worker/pool.go
package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

// Task is one unit of work dispatched to the pool.
type Task func(ctx context.Context) error

// Pool fans tasks out to a fixed set of goroutines. Submit blocks when all
// workers are busy and the queue is full, so update bursts apply
// back-pressure to the poller instead of being dropped.
type Pool struct {
	wg     sync.WaitGroup
	jobs   chan Task
	n      int
	logger *zerolog.Logger
}

func NewPool(workers int, logger *zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{jobs: make(chan Task, workers*4), n: workers, logger: logger}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.n; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case task, ok := <-p.jobs:
					if !ok {
						return
					}
					if task == nil {
						continue
					}
					if err := task(ctx); err != nil {
						p.logger.Error().Err(err).Int("worker", id).Msg("task failed")
					}
				}
			}
		}(i)
	}
}

// Submit enqueues a task, waiting when the queue is full. It fails only when
// ctx is canceled first.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	select {
	case p.jobs <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
