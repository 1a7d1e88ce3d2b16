package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	first, _ := store.GetOrLoad(context.Background(), "k", loader)
	second, _ := store.GetOrLoad(context.Background(), "k", loader)
	if first != 1 || second != 1 {
		t.Fatalf("expected cached value 1, got %d and %d", first, second)
	}

	now = now.Add(2 * time.Minute)
	third, _ := store.GetOrLoad(context.Background(), "k", loader)
	if third != 2 {
		t.Fatalf("expected reload after ttl, got %d", third)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	errBoom := errors.New("boom")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "", errBoom
	}); !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("failed load must not be cached")
	}
}

func TestStore_GetOrLoad_CancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	var loads atomic.Int32
	loader := func(ctx context.Context) (string, error) {
		if loads.Add(1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return "cards", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := store.GetOrLoad(firstCtx, "matches:06/15/2024", loader)
		firstErr <- err
	}()

	<-started
	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled for the abandoned caller, got %v", err)
	}

	type result struct {
		value string
		err   error
	}
	second := make(chan result, 1)
	go func() {
		v, err := store.GetOrLoad(context.Background(), "matches:06/15/2024", loader)
		second <- result{value: v, err: err}
	}()

	time.Sleep(50 * time.Millisecond)
	close(release)
	got := <-second
	if got.err != nil || got.value != "cards" {
		t.Fatalf("expected shared load to finish for the live caller, got %q err=%v", got.value, got.err)
	}
	if n := loads.Load(); n != 1 {
		t.Fatalf("expected one load, got %d", n)
	}
	if v, ok := store.Get(context.Background(), "matches:06/15/2024"); !ok || v != "cards" {
		t.Fatalf("expected loaded value to be cached, got %q ok=%v", v, ok)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
