package workerpool

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/time/rate"
)

var (
	ErrQueueFull = errors.New("worker pool queue full")
	ErrClosed    = errors.New("worker pool closed")
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

// WorkerPool runs submitted tasks on a fixed number of goroutines. An optional
// limiter shared by all workers spaces out task starts, which keeps the
// importer polite to job feeds.
type WorkerPool struct {
	workers int
	tasks   chan Task

	mu      sync.RWMutex
	closed  bool
	limiter *rate.Limiter
}

func New(workers, buffer int) *WorkerPool {
	return &WorkerPool{
		workers: max(workers, 1),
		tasks:   make(chan Task, max(buffer, 0)),
	}
}

// SetRateLimit allows rps task starts per second across all workers with no
// burst. Zero or less removes the limit.
func (p *WorkerPool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if rps <= 0 {
		p.limiter = nil
		return
	}
	p.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

// Submit blocks until the task is queued or ctx is done.
func (p *WorkerPool) Submit(ctx context.Context, t Task) error {
	return p.send(ctx, t, true)
}

// TrySubmit queues the task only if there is room right now.
func (p *WorkerPool) TrySubmit(t Task) error {
	return p.send(context.Background(), t, false)
}

// send holds the read lock so Close cannot close the channel mid-send.
func (p *WorkerPool) send(ctx context.Context, t Task, wait bool) error {
	if p == nil || t == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	if !wait {
		select {
		case p.tasks <- t:
			return nil
		default:
			return ErrQueueFull
		}
	}
	select {
	case p.tasks <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks. Workers drain the queue and then exit.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
}

// Run starts the workers. The returned channel yields one Result per task
// and is closed once every worker has exited.
func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, 64)
	if p == nil {
		close(out)
		return out
	}

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.work(ctx, out)
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (p *WorkerPool) work(ctx context.Context, out chan<- Result) {
	for {
		var t Task
		var ok bool
		select {
		case <-ctx.Done():
			return
		case t, ok = <-p.tasks:
			if !ok {
				return
			}
		}

		p.mu.RLock()
		lim := p.limiter
		p.mu.RUnlock()
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return
			}
		}

		select {
		case out <- Result{Err: t(ctx)}:
		case <-ctx.Done():
			return
		}
	}
}
