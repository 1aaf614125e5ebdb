package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	ErrPoolClosed    = errors.New("pool is closed")
	ErrPoolSaturated = errors.New("pool is saturated")
)

// Pool bounds the number of concurrently running jobs. Event dispatch uses
// it so a slow handler cannot fan out without limit.
type Pool struct {
	limit    int
	tickets  chan struct{}
	inFlight atomic.Int32
	wg       sync.WaitGroup
	closed   atomic.Bool
}

// NewPool creates a pool running at most limit jobs at once.
func NewPool(limit int) *Pool {
	if limit <= 0 {
		limit = 4
	}
	p := &Pool{
		limit:   limit,
		tickets: make(chan struct{}, limit),
	}
	for i := 0; i < limit; i++ {
		p.tickets <- struct{}{}
	}
	return p
}

// run executes the job on a fresh goroutine, returning the ticket after.
func (p *Pool) run(job func()) {
	p.inFlight.Add(1)
	p.wg.Add(1)
	go func() {
		defer func() {
			p.inFlight.Add(-1)
			p.tickets <- struct{}{}
			p.wg.Done()
		}()
		if job != nil {
			job()
		}
	}()
}

// Submit runs the job on a pool slot, blocking until one frees up or the
// context is done.
func (p *Pool) Submit(ctx context.Context, job func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.tickets:
	}
	if p.closed.Load() {
		p.tickets <- struct{}{}
		return ErrPoolClosed
	}
	p.run(job)
	return nil
}

// TrySubmit runs the job only if a slot is free right now.
func (p *Pool) TrySubmit(job func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}
	select {
	case <-p.tickets:
	default:
		return ErrPoolSaturated
	}
	p.run(job)
	return nil
}

// Close stops accepting jobs and waits for the running ones to finish.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	p.wg.Wait()
}

// InFlight returns the number of currently running jobs.
func (p *Pool) InFlight() int {
	return int(p.inFlight.Load())
}
