package mdconv

// Notes:
// - Pool converters never launch a browser here: previews are not requested,
//   and the rod renderer only starts Chrome on first capture.
// - Acquire after Close returns ErrPoolClosed instead of blocking.
// - Release never blocks: foreign and repeated releases are dropped.

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire(context.Context) (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

// ---------------------------------------------------------------------------
// TestResolvePoolSize - Worker count resolution
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	auto := min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit takes priority", 4, 4},
		{"explicit=1 for sequential", 1, 1},
		{"explicit can exceed max", 32, 32},
		{"zero uses auto calculation", 0, auto},
		{"negative uses auto calculation", -3, auto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConverterPool - Acquire, release and close
// ---------------------------------------------------------------------------

func TestNewConverterPool(t *testing.T) {
	t.Parallel()

	t.Run("size is clamped to minimum", func(t *testing.T) {
		t.Parallel()
		pool, err := NewConverterPool(0)
		if err != nil {
			t.Fatalf("NewConverterPool() error = %v", err)
		}
		defer pool.Close()

		if pool.Size() != MinPoolSize {
			t.Errorf("Size() = %d, want %d", pool.Size(), MinPoolSize)
		}
	})

	t.Run("invalid options fail early", func(t *testing.T) {
		t.Parallel()
		_, err := NewConverterPool(2, WithStyle("nonexistent"))
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("NewConverterPool() error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool, err := NewConverterPool(2)
	if err != nil {
		t.Fatalf("NewConverterPool() error = %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	c1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	c2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c1 == c2 {
		t.Error("expected different converter instances")
	}

	pool.Release(c1)
	c3, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c3 != c1 {
		t.Error("expected to get back released converter")
	}

	pool.Release(c2)
	pool.Release(c3)
}

func TestConverterPool_AcquireHonoursContext(t *testing.T) {
	t.Parallel()

	pool, err := NewConverterPool(1)
	if err != nil {
		t.Fatalf("NewConverterPool() error = %v", err)
	}
	defer pool.Close()

	held, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer pool.Release(held)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := pool.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	pool, err := NewConverterPool(1)
	if err != nil {
		t.Fatalf("NewConverterPool() error = %v", err)
	}

	held, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	// A waiter blocked on the full pool is released by Close.
	waitErr := make(chan error, 1)
	go func() {
		_, err := pool.Acquire(context.Background())
		waitErr <- err
	}()

	time.Sleep(10 * time.Millisecond)
	if err := pool.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	select {
	case err := <-waitErr:
		if !errors.Is(err, ErrPoolClosed) {
			t.Errorf("blocked Acquire() error = %v, want ErrPoolClosed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Acquire() still blocked after Close")
	}

	// Release after close is a no-op; second close is safe.
	pool.Release(held)
	pool.Release(nil)
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestConverterPool_ReleaseForeignConverter(t *testing.T) {
	t.Parallel()

	pool, err := NewConverterPool(1)
	if err != nil {
		t.Fatalf("NewConverterPool() error = %v", err)
	}
	defer pool.Close()

	foreign, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer foreign.Close()

	// The pool is full: its only converter sits idle in the channel.
	released := make(chan struct{})
	go func() {
		pool.Release(foreign)
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(5 * time.Second):
		t.Fatal("Release() of a foreign converter blocked")
	}

	c, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c == foreign {
		t.Error("Acquire() returned a converter the pool never created")
	}
	pool.Release(c)
}

func TestConverterPool_DoubleRelease(t *testing.T) {
	t.Parallel()

	pool, err := NewConverterPool(1)
	if err != nil {
		t.Fatalf("NewConverterPool() error = %v", err)
	}
	defer pool.Close()

	c, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		pool.Release(c)
		pool.Release(c)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("second Release() blocked")
	}
}

// TestConverterPool_HighContention checks the pool stays deadlock-free with
// many goroutines sharing few converters.
func TestConverterPool_HighContention(t *testing.T) {
	t.Parallel()

	pool, err := NewConverterPool(2)
	if err != nil {
		t.Fatalf("NewConverterPool() error = %v", err)
	}
	defer pool.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				c, err := pool.Acquire(context.Background())
				if err != nil {
					errs <- err
					return
				}
				_, err = c.Convert(context.Background(), Input{
					Content:   "<p>item</p>",
					Direction: HTMLToMarkdown,
				})
				pool.Release(c)
				if err != nil {
					errs <- err
					return
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("high contention test timed out - possible deadlock")
	}

	close(errs)
	for err := range errs {
		t.Errorf("worker error: %v", err)
	}
}
