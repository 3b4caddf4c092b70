package workerpool

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrPoolFull   = errors.New("job pool is full")
	ErrPoolClosed = errors.New("job pool is closed")
)

// Job is a unit of background work. Its context is cancelled when Shutdown
// gives up waiting.
type Job func(ctx context.Context) error

type JobPool interface {
	Enqueue(job Job) error
}

type Pool struct {
	mu     sync.RWMutex
	closed bool
	queue  chan Job
	wg     sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	onError func(error)
}

// New creates a pool whose queue holds poolSize jobs. onError receives every
// error a job returns and may be nil.
func New(poolSize int, onError func(error)) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	if onError == nil {
		onError = func(error) {}
	}

	return &Pool{
		queue:   make(chan Job, poolSize),
		ctx:     ctx,
		cancel:  cancel,
		onError: onError,
	}
}

func (p *Pool) Start(workers int) {
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()

	for job := range p.queue {
		if err := job(p.ctx); err != nil {
			p.onError(err)
		}
	}
}

// Enqueue never blocks: a full queue yields ErrPoolFull.
func (p *Pool) Enqueue(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.queue <- job:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown stops accepting jobs and waits for the queued ones to finish.
// If ctx ends first, running jobs are cancelled and ctx.Err() is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}
