package mat

import (
	"sync/atomic"

	"github.com/born-ml/cvmat/internal/parallel"
)

var parallelCfg atomic.Pointer[parallel.Config]

func init() {
	cfg := parallel.DefaultConfig()
	parallelCfg.Store(&cfg)
}

// SetParallelConfig replaces the configuration used by row-parallel kernels.
func SetParallelConfig(cfg parallel.Config) {
	parallelCfg.Store(&cfg)
}

// ParallelConfig returns the configuration used by row-parallel kernels.
func ParallelConfig() parallel.Config {
	return *parallelCfg.Load()
}

// forRows runs f over row ranges of an n-row matrix.
func forRows(n int, f func(start, end int)) {
	parallel.ForRange(n, f, ParallelConfig())
}

// forColumns runs f over column ranges on the shared worker pool. Callers
// must not already be running on that pool.
func forColumns(n int, f func(start, end int)) {
	cfg := ParallelConfig()
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		f(0, n)
		return
	}
	parallel.Shared().ParallelFor(n, f)
}
