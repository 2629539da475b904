package writequeue

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestExecute_Serializes(t *testing.T) {
	q := New(nil, nil)
	defer q.Shutdown(context.Background())

	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		n := i
		go func() {
			defer wg.Done()
			_ = q.Execute(context.Background(), func() error {
				mu.Lock()
				order = append(order, n)
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if len(order) != 10 {
		t.Fatalf("expected 10 executed ops, got %d", len(order))
	}
}

func TestExecute_FIFO(t *testing.T) {
	q := New(&Config{QueueCapacity: 32}, nil)
	defer q.Shutdown(context.Background())

	var mu sync.Mutex
	var order []int

	// Single submitter so queue order is deterministic
	for i := 0; i < 5; i++ {
		n := i
		if err := q.Execute(context.Background(), func() error {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
			return nil
		}); err != nil {
			t.Fatalf("Execute(%d) returned error: %v", n, err)
		}
	}

	for i, n := range order {
		if i != n {
			t.Fatalf("expected FIFO order, got %v", order)
		}
	}
}

func TestExecute_AfterShutdown(t *testing.T) {
	q := New(nil, nil)
	if err := q.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}

	err := q.Execute(context.Background(), func() error { return nil })
	if err != ErrWriteQueueClosed {
		t.Fatalf("expected ErrWriteQueueClosed, got %v", err)
	}
}

func TestExecute_ContextCancelled(t *testing.T) {
	q := New(nil, nil)
	defer q.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.Execute(ctx, func() error {
		time.Sleep(10 * time.Millisecond)
		return nil
	})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestGetMetrics(t *testing.T) {
	q := New(&Config{QueueCapacity: 7}, nil)
	defer q.Shutdown(context.Background())

	m := q.GetMetrics()
	if m.QueueCapacity != 7 {
		t.Fatalf("expected capacity 7, got %d", m.QueueCapacity)
	}
	if m.IsClosed {
		t.Fatal("expected queue to be open")
	}
}
