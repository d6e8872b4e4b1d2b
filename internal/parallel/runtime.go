// Package parallel reports how many worker threads are available to kernels
// and provides the fan-out helpers kernels use to spread a bulk compute call
// across them.
package parallel

import (
	"runtime"
	"sync"
)

// Runtime reports the number of parallel worker threads. The count is
// resolved once and stays constant for the lifetime of the Runtime.
type Runtime struct {
	override int
	once     sync.Once
	threads  int
}

// NewRuntime creates a Runtime. A positive override forces the thread count;
// zero or negative means detect it from GOMAXPROCS and the CPU affinity mask.
func NewRuntime(override int) *Runtime {
	return &Runtime{override: override}
}

// ThreadCount returns the number of worker threads, always at least 1.
func (r *Runtime) ThreadCount() int {
	r.once.Do(func() {
		if r.override > 0 {
			r.threads = r.override
			return
		}
		r.threads = DetectThreads()
	})
	return r.threads
}

// DetectThreads returns min(GOMAXPROCS, CPUs in the affinity mask).
func DetectThreads() int {
	n := runtime.GOMAXPROCS(0)
	if cpus := affinityCPUs(); cpus > 0 && cpus < n {
		n = cpus
	}
	return max(n, 1)
}

// ForChunks splits [0, n) into at most workers contiguous chunks and calls fn
// for each chunk on its own goroutine. It waits for every chunk and returns
// the first error reported. With one worker or one item, fn runs inline.
func ForChunks(n, workers int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	workers = min(max(workers, 1), n)
	if workers == 1 {
		return fn(0, n)
	}

	var (
		wg sync.WaitGroup
		ec ErrorCollector
	)
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			ec.SetError(fn(lo, hi))
		}(lo, hi)
	}
	wg.Wait()
	return ec.Err()
}
