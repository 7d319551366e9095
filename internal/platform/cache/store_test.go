package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
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

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32
	boom := errors.New("boom")

	loader := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, boom
		}
		return 7, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if v != 7 {
		t.Fatalf("unexpected value %d", v)
	}
}

func TestStore_EntriesExpire(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := NewStore[string](time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "v")
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_DeleteAndClear(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	ctx := context.Background()
	store.Set(ctx, "a", "1")
	store.Set(ctx, "b", "2")

	store.Delete(ctx, "a")
	if _, ok := store.Get(ctx, "a"); ok {
		t.Fatalf("expected a to be deleted")
	}
	store.Clear(ctx)
	if _, ok := store.Get(ctx, "b"); ok {
		t.Fatalf("expected store to be empty")
	}
}

func TestStore_ZeroTTLDisablesCaching(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	ctx := context.Background()
	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	for want := 1; want <= 3; want++ {
		v, err := store.GetOrLoad(ctx, "k", loader)
		if err != nil {
			t.Fatalf("GetOrLoad error: %v", err)
		}
		if v != want {
			t.Fatalf("expected a fresh load %d, got %d", want, v)
		}
	}

	store.Set(ctx, "k", 99)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected disabled store to keep nothing")
	}
}

func TestStore_GetOrLoad_LoaderIgnoresCallerCancellation(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := store.GetOrLoad(ctx, "k", func(loadCtx context.Context) (string, error) {
		if err := loadCtx.Err(); err != nil {
			return "", err
		}
		return "loaded", nil
	})
	if err != nil {
		t.Fatalf("expected loader to run detached, got %v", err)
	}
	if v != "loaded" {
		t.Fatalf("unexpected value %q", v)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
