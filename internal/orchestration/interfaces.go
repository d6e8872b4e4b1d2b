package orchestration

import (
	"io"
	"time"

	"github.com/agbru/kerntune/internal/autotune"
	"github.com/agbru/kerntune/internal/metrics"
	"github.com/agbru/kerntune/internal/sysmon"
)

// KernelResult is the outcome of tuning a single kernel.
// It serves as the shared domain type between orchestration and presentation layers.
type KernelResult struct {
	// Name is the kernel label.
	Name string
	// Outcome is the search result. It is zero if Err is set.
	Outcome autotune.Outcome
	// Duration is the wall time spent initializing and tuning the kernel.
	Duration time.Duration
	// Err contains any error that stopped the tuning.
	Err error
}

// Report aggregates a tuning run.
type Report struct {
	RunID       string
	Version     string
	Threads     int
	CPUFeatures []string
	Workload    string
	Started     time.Time
	Elapsed     time.Duration
	Results     []KernelResult
	// System summarizes machine load while tuning ran.
	System sysmon.Summary
	// HeapAlloc is the live heap after tuning.
	HeapAlloc uint64
	// GC is the collector work done while tuning.
	GC metrics.GCActivity
}

// ProgressReporter is told when each kernel starts and finishes tuning.
// Per-trial progress arrives through autotune.Observer.
type ProgressReporter interface {
	KernelStarted(name string, index, total int)
	KernelFinished(result KernelResult)
}

// NullProgressReporter discards all progress. Useful for quiet mode or testing.
type NullProgressReporter struct{}

// KernelStarted does nothing.
func (NullProgressReporter) KernelStarted(string, int, int) {}

// KernelFinished does nothing.
func (NullProgressReporter) KernelFinished(KernelResult) {}

// ResultPresenter renders a finished report.
type ResultPresenter interface {
	PresentReport(report Report, out io.Writer) error
}
