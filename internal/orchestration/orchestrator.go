package orchestration

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/kerntune/internal/autotune"
	apperrors "github.com/agbru/kerntune/internal/errors"
	"github.com/agbru/kerntune/internal/metrics"
	"github.com/agbru/kerntune/internal/sysmon"
	"github.com/agbru/kerntune/internal/workload"
)

// Session describes one tuning run.
type Session struct {
	Tuner    *autotune.Tuner
	Kernels  []autotune.Kernel
	Workload *workload.DB
	// Threads is the worker thread count the tuner sees.
	Threads  int
	Reporter ProgressReporter
	// Monitor, when set, samples system load while the kernels are tuned.
	Monitor *sysmon.Monitor
}

// ExecuteTuning tunes every kernel of the session in turn, the way a host
// would: initialize through the tuner, set the kernel up, then search. The
// system monitor runs alongside in the same errgroup and stops when the last
// kernel is done.
//
// A kernel failure is recorded in its KernelResult and the remaining kernels
// still run. Only cancellation of ctx aborts the session, in which case the
// context error is returned with the results gathered so far.
func ExecuteTuning(ctx context.Context, s Session) (Report, error) {
	if s.Reporter == nil {
		s.Reporter = NullProgressReporter{}
	}
	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	report := Report{Threads: s.Threads, Started: time.Now()}
	if s.Workload != nil {
		report.Workload = s.Workload.Name
	}

	g, gctx := errgroup.WithContext(ctx)
	monCtx, stopMonitor := context.WithCancel(gctx)
	defer stopMonitor()
	if s.Monitor != nil {
		g.Go(func() error { return s.Monitor.Run(monCtx) })
	}

	results := make([]KernelResult, 0, len(s.Kernels))
	g.Go(func() error {
		defer stopMonitor()
		for i, k := range s.Kernels {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.Reporter.KernelStarted(k.Label(), i, len(s.Kernels))
			res := tuneKernel(gctx, s.Tuner, k, s.Workload)
			results = append(results, res)
			s.Reporter.KernelFinished(res)
		}
		return nil
	})
	err := g.Wait()

	after := mem.Snapshot()
	report.Results = results
	report.Elapsed = time.Since(report.Started)
	report.HeapAlloc = after.HeapAlloc
	report.GC = after.Since(before)
	if s.Monitor != nil {
		report.System = s.Monitor.Summary()
	}
	return report, err
}

// tuneKernel runs the host side of the tuning protocol for k and releases
// the kernel's buffers afterwards.
func tuneKernel(ctx context.Context, tuner *autotune.Tuner, k autotune.Kernel, db *workload.DB) KernelResult {
	start := time.Now()
	res := KernelResult{Name: k.Label()}
	defer k.Teardown()

	if _, err := tuner.Autotune(ctx, k, nil); err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	if err := k.Setup(); err != nil {
		res.Err = apperrors.KernelError{Kernel: k.Label(), Op: "setup", Cause: err}
		res.Duration = time.Since(start)
		return res
	}
	mult, err := tuner.Autotune(ctx, k, db)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}

	if out, ok := tuner.Outcome(k); ok {
		res.Outcome = out
	} else {
		// Single worker thread: nothing was searched.
		res.Outcome = autotune.Outcome{
			Kernel:     k.Label(),
			Threads:    1,
			BaseBatch:  k.MaxBatch(),
			BestScale:  1,
			Multiplier: mult,
			MaxBatch:   k.MaxBatch(),
		}
	}
	return res
}

// AnalyzeResults presents the report and derives the exit code: success if
// every kernel was tuned, otherwise the code of the first failure.
func AnalyzeResults(report Report, presenter ResultPresenter, out io.Writer) int {
	if err := presenter.PresentReport(report, out); err != nil {
		fmt.Fprintf(out, "failed to present report: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	for _, res := range report.Results {
		if res.Err != nil {
			return apperrors.ExitCode(res.Err)
		}
	}
	return apperrors.ExitSuccess
}
