//go:build !linux

package parallel

import "runtime"

// affinityCPUs falls back to the logical CPU count where no affinity
// syscall is wired.
func affinityCPUs() int {
	return runtime.NumCPU()
}
