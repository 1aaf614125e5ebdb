package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsJobs(t *testing.T) {
	p := NewPool(2)
	var ran atomic.Int32

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if err := p.Submit(ctx, func() { ran.Add(1) }); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	p.Close()

	if got := ran.Load(); got != 10 {
		t.Errorf("expected 10 jobs, ran %d", got)
	}
	if p.InFlight() != 0 {
		t.Errorf("expected no jobs in flight, got %d", p.InFlight())
	}
}

func TestPoolLimit(t *testing.T) {
	p := NewPool(1)
	block := make(chan struct{})

	if err := p.Submit(context.Background(), func() { <-block }); err != nil {
		t.Fatal(err)
	}
	if err := p.TrySubmit(func() {}); err != ErrPoolSaturated {
		t.Errorf("expected ErrPoolSaturated, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Submit(ctx, func() {}); err != context.DeadlineExceeded {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	close(block)
	p.Close()
}

func TestPoolClosed(t *testing.T) {
	p := NewPool(1)
	p.Close()
	if err := p.Submit(context.Background(), func() {}); err != ErrPoolClosed {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
	if err := p.TrySubmit(func() {}); err != ErrPoolClosed {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}
