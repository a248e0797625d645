// Package parallel runs independent glyph jobs on a fixed set of goroutines.
//
// Rasterizing font glyphs and decoding image glyphs are the only expensive
// steps before a pack. Every job touches exactly one glyph, so jobs need no
// coordination beyond waiting for the whole batch.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines pulling jobs from a shared queue.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			p.drain()
			return
		case job := <-p.queue:
			job()
		}
	}
}

// drain runs whatever is left in the queue.
func (p *WorkerPool) drain() {
	for {
		select {
		case job := <-p.queue:
			job()
		default:
			return
		}
	}
}

// ExecuteAll runs every job and waits for all of them to finish.
// On a closed pool the jobs run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	if !p.running.Load() {
		for _, job := range jobs {
			job()
		}
		return
	}

	var batch sync.WaitGroup
	batch.Add(len(jobs))
	for _, job := range jobs {
		wrapped := func() {
			defer batch.Done()
			job()
		}
		select {
		case p.queue <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	batch.Wait()
}

// ForEach calls fn(i) for every i in [0, n) and waits for completion.
func (p *WorkerPool) ForEach(n int, fn func(i int)) {
	jobs := make([]func(), n)
	for i := range jobs {
		jobs[i] = func() { fn(i) }
	}
	p.ExecuteAll(jobs)
}

// Close stops the workers after the queued jobs have run.
// It must not race with ExecuteAll. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
