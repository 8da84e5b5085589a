// Package parallel provides the row-parallel loops and the background worker
// pool used by the matrix engine.
package parallel

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EnvNumThreads overrides the worker count picked by DefaultConfig.
const EnvNumThreads = "CVMAT_NUM_THREADS"

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum rows per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count. CVMAT_NUM_THREADS, when
// set to a positive integer, replaces the CPU count; 1 disables parallelism.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	if s := os.Getenv(EnvNumThreads); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			log.Warnf("parallel: ignoring %s=%q", EnvNumThreads, s)
		} else {
			n = v
		}
	}
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}

// ForRange splits [0, n) into contiguous chunks and calls f(start, end) for
// each, concurrently when cfg allows it. It returns after every chunk is done.
func ForRange(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ForBatch iterates the outer x inner grid, e.g. rows x channel sources.
func ForBatch(outer, inner int, f func(o, i int), cfg Config) {
	if inner <= 0 {
		return
	}
	For(outer*inner, func(k int) {
		f(k/inner, k%inner)
	}, cfg)
}
