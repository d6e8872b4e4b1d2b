package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"

	"github.com/agbru/kerntune/internal/autotune"
	"github.com/agbru/kerntune/internal/orchestration"
)

// SpinnerReporter shows a spinner while kernels are tuned. Its suffix names
// the kernel in progress and the last trial measured.
//
// It is both an orchestration.ProgressReporter and an autotune.Observer.
type SpinnerReporter struct {
	out io.Writer

	mu      sync.Mutex
	spinner Spinner
	kernel  string
	index   int
	total   int
}

var (
	_ orchestration.ProgressReporter = (*SpinnerReporter)(nil)
	_ autotune.Observer              = (*SpinnerReporter)(nil)
)

// NewSpinnerReporter creates a reporter drawing on out.
func NewSpinnerReporter(out io.Writer) *SpinnerReporter {
	return &SpinnerReporter{out: out}
}

// KernelStarted starts the spinner on the first kernel.
func (r *SpinnerReporter) KernelStarted(name string, index, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kernel, r.index, r.total = name, index, total
	if r.spinner == nil {
		r.spinner = newSpinner(spinner.WithWriter(r.out))
		r.spinner.Start()
	}
	r.spinner.UpdateSuffix(r.suffix("initializing"))
}

// KernelFinished stops the spinner after the last kernel.
func (r *SpinnerReporter) KernelFinished(res orchestration.KernelResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner == nil {
		return
	}
	if r.index+1 >= r.total {
		r.spinner.Stop()
		r.spinner = nil
	}
}

// ObserveTrial shows the trial in the spinner suffix.
func (r *SpinnerReporter) ObserveTrial(kernel string, t autotune.Trial) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner == nil {
		return
	}
	r.spinner.UpdateSuffix(r.suffix(fmt.Sprintf("scale %d: %s c/s",
		t.Scale, humanize.Comma(int64(t.Throughput)))))
}

// ObserveOutcome is a no-op; the outcome is shown by the presenter.
func (r *SpinnerReporter) ObserveOutcome(autotune.Outcome) {}

// suffix formats the spinner text. Caller holds mu.
func (r *SpinnerReporter) suffix(status string) string {
	progress := 0.0
	if r.total > 0 {
		progress = float64(r.index) / float64(r.total)
	}
	return fmt.Sprintf(" [%s] %d/%d %s %s",
		progressBar(progress, ProgressBarWidth), r.index+1, r.total, r.kernel, status)
}
