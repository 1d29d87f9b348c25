package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int32

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := g.Do("key", func() (any, error) {
				calls.Add(1)
				time.Sleep(10 * time.Millisecond)
				return "result", nil
			})
			if err != nil || v != "result" {
				t.Errorf("unexpected result: %v %v", v, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("fn ran %d times, want 1", got)
	}
}

func TestSingleFlight_SequentialCallsRunIndependently(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		if _, err := g.Do("key", func() (any, error) {
			calls.Add(1)
			return nil, nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 3 {
		t.Fatalf("fn ran %d times, want 3", got)
	}
}
