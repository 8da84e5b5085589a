package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("parallel: pool closed")

// Pool is a fixed set of long-lived worker goroutines fed from a queue.
// Background jobs (async exports) run here instead of spawning a goroutine per call.
type Pool struct {
	numWorkers int
	workC      chan func()
	mu         sync.RWMutex // held for reading while enqueueing, for writing by Close
	closed     atomic.Bool
	wg         sync.WaitGroup
}

// NewPool starts a pool with numWorkers workers. numWorkers <= 0 means GOMAXPROCS.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan func(), numWorkers*2),
	}
	p.wg.Add(numWorkers)
	for range numWorkers {
		go p.worker()
	}
	log.Debugf("parallel: pool started with %d workers", numWorkers)
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for fn := range p.workC {
		fn()
	}
}

// NumWorkers returns the number of workers.
func (p *Pool) NumWorkers() int { return p.numWorkers }

// Submit queues fn. It blocks while the queue is full.
func (p *Pool) Submit(fn func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed.Load() {
		return ErrPoolClosed
	}
	p.workC <- fn
	return nil
}

// Close stops accepting work, lets queued jobs finish and waits for the workers.
// Calling Close more than once is a no-op.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed.Swap(true) {
		p.mu.Unlock()
		return
	}
	close(p.workC)
	p.mu.Unlock()
	p.wg.Wait()
}

// ParallelFor splits [0, n) into about NumWorkers ranges, runs them on the
// pool and waits. Falls back to the caller's goroutine once the pool is closed.
func (p *Pool) ParallelFor(n int, f func(start, end int)) {
	if n <= 0 {
		return
	}
	if n == 1 || p.numWorkers == 1 {
		f(0, n)
		return
	}
	chunk := (n + p.numWorkers - 1) / p.numWorkers

	var barrier sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		barrier.Add(1)
		s, e := start, end
		if err := p.Submit(func() {
			defer barrier.Done()
			f(s, e)
		}); err != nil {
			f(s, e)
			barrier.Done()
		}
	}
	barrier.Wait()
}

var (
	sharedOnce sync.Once
	sharedPool *Pool
)

// Shared returns the process-wide pool, sized by DefaultConfig on first use.
// It is never closed.
func Shared() *Pool {
	sharedOnce.Do(func() {
		sharedPool = NewPool(DefaultConfig().NumWorkers)
	})
	return sharedPool
}
