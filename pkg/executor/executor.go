// Package executor provides the worker-pool collaborator consumed by the
// pregel engine. A pool is created once per run (or shared across runs by the
// caller) and reused for every superstep, so workers are not respawned at each
// barrier.
package executor

import (
	"fmt"
	"sync"
)

// Task is one unit of work, typically a node batch for a single superstep.
type Task func() error

// Executor is implemented by types that can run tasks concurrently and
// barrier on their completion.
//
// Submit hands a task to the pool for execution. It may block if all workers
// are busy and the backlog is full. Submit must not be called after Close.
//
// AwaitAll blocks until every task submitted since the previous AwaitAll has
// finished, and returns the first error any of them produced. A recovered
// task panic is reported as an error.
//
// Close shuts the workers down. It is idempotent and blocks until all worker
// goroutines have exited.
type Executor interface {
	Submit(task Task)
	AwaitAll() error
	Close()
}

// FixedPool runs tasks on a fixed set of worker goroutines, all started when
// the pool is created. The zero value is not usable; use NewFixedPool.
type FixedPool struct {
	tasks   chan Task
	workers sync.WaitGroup
	pending sync.WaitGroup
	once    sync.Once

	mu       sync.Mutex
	firstErr error
}

var _ Executor = (*FixedPool)(nil)

// NewFixedPool starts size worker goroutines and returns the pool. A size
// below one is treated as one.
func NewFixedPool(size int) *FixedPool {
	if size < 1 {
		size = 1
	}

	p := &FixedPool{
		tasks: make(chan Task, size),
	}

	p.workers.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}

	return p
}

func (p *FixedPool) worker() {
	defer p.workers.Done()

	for task := range p.tasks {
		p.runTask(task)
	}
}

func (p *FixedPool) runTask(task Task) {
	defer p.pending.Done()
	defer func() {
		if r := recover(); r != nil {
			p.recordErr(fmt.Errorf("task panicked: %v", r))
		}
	}()

	if err := task(); err != nil {
		p.recordErr(err)
	}
}

func (p *FixedPool) recordErr(err error) {
	p.mu.Lock()
	if p.firstErr == nil {
		p.firstErr = err
	}
	p.mu.Unlock()
}

// Submit enqueues a task on the pool.
func (p *FixedPool) Submit(task Task) {
	p.pending.Add(1)
	p.tasks <- task
}

// AwaitAll barriers on all outstanding tasks and returns the first error seen
// since the previous barrier.
func (p *FixedPool) AwaitAll() error {
	p.pending.Wait()

	p.mu.Lock()
	err := p.firstErr
	p.firstErr = nil
	p.mu.Unlock()

	return err
}

// Close stops the workers after the backlog drains.
func (p *FixedPool) Close() {
	p.once.Do(func() {
		close(p.tasks)
	})
	p.workers.Wait()
}
