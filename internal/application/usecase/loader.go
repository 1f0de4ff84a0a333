package usecase

import (
	"context"
	"sync"
)

// Loader runs one fetch per dependency change. Starting a new fetch cancels the one in
// flight, and a result from an older generation is dropped even if it arrives last.
type Loader[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Run starts fetch on a new goroutine and calls apply with its result when the run is
// still the latest. The returned channel is closed once the run has finished.
func (l *Loader[T]) Run(parent context.Context, fetch func(ctx context.Context) T, apply func(T)) <-chan struct{} {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		result := fetch(ctx)

		l.mu.Lock()
		current := gen == l.gen
		if current {
			l.cancel = nil
		}
		l.mu.Unlock()

		if current && ctx.Err() == nil {
			apply(result)
		}
	}()
	return done
}

// Cancel stops the fetch in flight, if any, and invalidates its result.
func (l *Loader[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
