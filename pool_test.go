package html2deck

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire() *Converter
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name  string
		count int
		want  int
	}{
		{
			name:  "explicit takes priority",
			count: 4,
			want:  4,
		},
		{
			name:  "explicit=1 for sequential",
			count: 1,
			want:  1,
		},
		{
			name:  "zero uses auto calculation",
			count: 0,
			want:  min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.count)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.count, got, tt.want)
			}
		})
	}
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)
	defer pool.Close()

	conv1 := pool.Acquire()
	if conv1 == nil {
		t.Fatal("Acquire() returned nil")
	}

	conv2 := pool.Acquire()
	if conv2 == nil {
		t.Fatal("Acquire() returned nil")
	}
	if conv1 == conv2 {
		t.Error("expected distinct converters")
	}

	// Both in use; the next acquire must block until a release.
	released := make(chan struct{})
	go func() {
		conv3 := pool.Acquire()
		if conv3 != conv1 {
			t.Error("expected the released converter back")
		}
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("Acquire should block while all converters are in use")
	case <-time.After(50 * time.Millisecond):
	}

	pool.Release(conv1)

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("Acquire did not resume after Release")
	}

	pool.Release(conv2)
}

func TestConverterPool_LazyCreation(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(4)
	defer pool.Close()

	if got := len(pool.converters); got != 0 {
		t.Errorf("expected no converters before first acquire, got %d", got)
	}

	conv := pool.Acquire()
	defer pool.Release(conv)

	if got := len(pool.converters); got != 1 {
		t.Errorf("expected exactly one converter after one acquire, got %d", got)
	}
}

func TestConverterPool_MinimumSize(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(0)
	defer pool.Close()

	if pool.Size() != 1 {
		t.Errorf("expected minimum size 1, got %d", pool.Size())
	}
}

func TestConverterPool_CloseIdempotent(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)
	conv := pool.Acquire()
	pool.Release(conv)

	if err := pool.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	// Release after close must not block or panic.
	pool.Release(conv)
}

func TestConverterPool_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	if err := pool.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if conv := pool.Acquire(); conv != nil {
		t.Error("Acquire on a closed pool must return nil")
	}
}

func TestConverterPool_ReleaseDuringClose(t *testing.T) {
	t.Parallel()

	// Release racing Close must neither panic nor deadlock.
	for i := 0; i < 100; i++ {
		pool := NewConverterPool(2)
		conv := pool.Acquire()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			pool.Release(conv)
		}()
		go func() {
			defer wg.Done()
			_ = pool.Close()
		}()
		wg.Wait()
	}
}

func TestConverterPool_ConcurrentAcquire(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(3)
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv := pool.Acquire()
			time.Sleep(time.Millisecond)
			pool.Release(conv)
		}()
	}
	wg.Wait()

	if got := len(pool.converters); got > 3 {
		t.Errorf("pool created %d converters, capacity is 3", got)
	}
}

func TestConverterPool_OptionsPropagate(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithWorkers(2))
	defer pool.Close()

	conv := pool.Acquire()
	defer pool.Release(conv)

	if conv.cfg.workers != 2 {
		t.Errorf("expected pool options on created converters, got workers=%d", conv.cfg.workers)
	}
}
