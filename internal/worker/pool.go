// Package worker provides bounded-concurrency fan-out for per-candidate
// catalog calls during content verification.
package worker

import (
	"context"
	"sync"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

// Verify fetches and verifies a single candidate playlist. The second
// return value reports acceptance; failures are the callback's problem
// to swallow (skip-and-continue is per item, never batch-fatal).
type Verify func(ctx context.Context, candidateID string) (domain.PlaylistCandidate, bool)

// Pool fans candidate ids out to a fixed set of goroutines. The
// accepted-count early stop lives here, at the coordination point, so
// individual workers stay oblivious to it.
type Pool struct {
	size int
}

// NewPool creates a pool with the given worker count. Size 1 degrades
// to sequential processing.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size}
}

// Run processes ids until all are exhausted or limit candidates have
// been accepted, then cancels outstanding work. Results arrive in
// completion order; callers needing a total order sort afterwards.
func (p *Pool) Run(ctx context.Context, ids []string, limit int, fn Verify) []domain.PlaylistCandidate {
	if len(ids) == 0 || limit <= 0 {
		return nil
	}

	workers := p.size
	if workers > len(ids) {
		workers = len(ids)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	results := make(chan domain.PlaylistCandidate)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if ctx.Err() != nil {
					return
				}
				candidate, ok := fn(ctx, id)
				if !ok {
					continue
				}
				select {
				case results <- candidate:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, id := range ids {
			select {
			case jobs <- id:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	accepted := make([]domain.PlaylistCandidate, 0, limit)
	for candidate := range results {
		if len(accepted) < limit {
			accepted = append(accepted, candidate)
			if len(accepted) == limit {
				cancel()
			}
		}
	}
	return accepted
}
