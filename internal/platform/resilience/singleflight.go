package resilience

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/panics"
)

// SingleFlight collapses concurrent calls for the same key into one execution.
type SingleFlight[T any] struct {
	mu    sync.Mutex
	calls map[string]*call[T]
}

type call[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Do runs fn once per key at a time. Callers arriving while fn is running get
// the same result and shared=true.
func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (val T, err error, shared bool) {
	c, leader := g.join(key)
	if !leader {
		<-c.done
		return c.val, c.err, true
	}

	defer g.finish(key, c)
	c.val, c.err = fn()
	return c.val, c.err, false
}

// DoContext is Do for cancellable work. fn runs in its own goroutine on a
// context that keeps ctx's values but not its cancellation, so a caller that
// gives up does not fail the others waiting on the same key. Each caller stops
// waiting when its own ctx is done. fn must bound its own run time.
func (g *SingleFlight[T]) DoContext(ctx context.Context, key string, fn func(context.Context) (T, error)) (val T, err error, shared bool) {
	c, leader := g.join(key)
	if leader {
		loadCtx := context.WithoutCancel(ctx)
		go func() {
			defer g.finish(key, c)

			var catcher panics.Catcher
			catcher.Try(func() {
				c.val, c.err = fn(loadCtx)
			})
			if recovered := catcher.Recovered(); recovered != nil {
				var zero T
				c.val, c.err = zero, recovered.AsError()
			}
		}()
	}

	select {
	case <-c.done:
		return c.val, c.err, !leader
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err(), !leader
	}
}

func (g *SingleFlight[T]) join(key string) (*call[T], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.calls == nil {
		g.calls = make(map[string]*call[T])
	}
	if c, ok := g.calls[key]; ok {
		return c, false
	}

	c := &call[T]{done: make(chan struct{})}
	g.calls[key] = c
	return c, true
}

func (g *SingleFlight[T]) finish(key string, c *call[T]) {
	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
	close(c.done)
}
