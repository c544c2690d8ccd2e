// Package workpool runs batches of independent tasks on a fixed set of
// long-lived worker goroutines. Each RunBatch call is a barrier: it returns
// only after every task of the batch has finished or been skipped.
package workpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when a batch is submitted after Close.
var ErrClosed = errors.New("worker pool closed")

// Task is one unit of work. The context is cancelled once another task of the
// same batch fails.
type Task func(ctx context.Context) error

// Pool is a bounded, reusable worker pool.
type Pool struct {
	size   int
	jobs   chan job
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

type job struct {
	ctx   context.Context
	run   Task
	batch *batch
}

type batch struct {
	wg      sync.WaitGroup
	once    sync.Once
	err     error
	cancel  context.CancelFunc
	skipped atomic.Bool
}

func (b *batch) fail(err error) {
	b.once.Do(func() {
		b.err = err
		b.cancel()
	})
}

// New starts size workers. A size below one starts a single worker.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{size: size, jobs: make(chan job)}
	p.wg.Add(size)
	for range size {
		go p.worker()
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.execute(j)
	}
}

func (p *Pool) execute(j job) {
	defer j.batch.wg.Done()
	if j.ctx.Err() != nil {
		j.batch.skipped.Store(true)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			j.batch.fail(fmt.Errorf("task panic: %v", r))
		}
	}()
	if err := j.run(j.ctx); err != nil {
		j.batch.fail(err)
	}
}

// RunBatch dispatches tasks to the workers and waits for all of them. It
// returns the first task error; tasks not yet started when that error occurs
// are skipped. ctx.Err() is returned only when cancellation of ctx caused
// tasks to be skipped.
func (p *Pool) RunBatch(ctx context.Context, tasks []Task) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrClosed
	}

	bctx, cancel := context.WithCancel(ctx)
	defer cancel()
	b := &batch{cancel: cancel}

dispatch:
	for _, task := range tasks {
		b.wg.Add(1)
		select {
		case p.jobs <- job{ctx: bctx, run: task, batch: b}:
		case <-bctx.Done():
			b.wg.Done()
			b.skipped.Store(true)
			break dispatch
		}
	}
	p.mu.RUnlock()

	b.wg.Wait()
	if b.err != nil {
		return b.err
	}
	if b.skipped.Load() {
		return ctx.Err()
	}
	return nil
}

// Close stops the workers after in-flight batches drain. It is safe to call
// more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
