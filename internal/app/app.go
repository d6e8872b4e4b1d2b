package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/kerntune/internal/autotune"
	"github.com/agbru/kerntune/internal/cli"
	"github.com/agbru/kerntune/internal/config"
	apperrors "github.com/agbru/kerntune/internal/errors"
	"github.com/agbru/kerntune/internal/kernel"
	"github.com/agbru/kerntune/internal/logging"
	"github.com/agbru/kerntune/internal/metrics"
	"github.com/agbru/kerntune/internal/orchestration"
	"github.com/agbru/kerntune/internal/parallel"
	"github.com/agbru/kerntune/internal/sysmon"
	"github.com/agbru/kerntune/internal/tui"
	"github.com/agbru/kerntune/internal/ui"
	"github.com/agbru/kerntune/internal/workload"
)

// Application represents the kerntune application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *kernel.Registry
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets a custom kernel registry.
func WithRegistry(r *kernel.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = kernel.NewRegistry()
	}

	programName := "kerntune"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Registry.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run tunes the selected kernels and presents the report on out. It returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runID := uuid.NewString()
	logger := a.newLogger(runID)

	rt := parallel.NewRuntime(a.Config.Threads)
	threads := rt.ThreadCount()

	db, err := a.loadWorkload()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}
	kernels, err := orchestration.GetKernelsToRun(a.Config, a.Registry, threads)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	collector := metrics.NewTuningCollector()
	observers := []autotune.Observer{collector}
	var reporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	var dashboard *tui.Reporter
	switch {
	case a.Config.TUI:
		dashboard = tui.NewReporter()
		reporter = dashboard
		observers = append(observers, dashboard)
	case !a.Config.Quiet && !a.Config.JSONOutput:
		spin := cli.NewSpinnerReporter(a.ErrWriter)
		reporter = spin
		observers = append(observers, spin)
	}

	tuner := autotune.New(rt,
		autotune.WithPolicy(a.Config.ToPolicy()),
		autotune.WithCostCap(a.Config.CostCap),
		autotune.WithLogger(logger),
		autotune.WithObserver(observers...),
	)
	session := orchestration.Session{
		Tuner:    tuner,
		Kernels:  kernels,
		Workload: db,
		Threads:  threads,
		Reporter: reporter,
		Monitor:  sysmon.NewMonitor(sysmon.DefaultInterval),
	}
	tune := func(ctx context.Context) (orchestration.Report, error) {
		return orchestration.ExecuteTuning(ctx, session)
	}

	logger.Info("tuning started",
		logging.Int("threads", threads),
		logging.Int("kernels", len(kernels)),
		logging.String("workload", db.Name),
		logging.Int("salts", db.Len()),
	)

	var report orchestration.Report
	if dashboard != nil {
		report, err = tui.Run(ctx, dashboard, tune, Version, threads)
	} else {
		report, err = tune(ctx)
	}
	canceled := false
	if err != nil {
		if !apperrors.IsContextError(err) {
			logger.Error("tuning failed", err)
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitCode(err)
		}
		logger.Error("tuning interrupted", err, logging.Int("kernels_done", len(report.Results)))
		fmt.Fprintln(a.ErrWriter, "Tuning canceled.")
		if len(report.Results) == 0 {
			return apperrors.ExitCode(err)
		}
		canceled = true
	}
	report.RunID = runID
	report.Version = Version
	report.CPUFeatures = parallel.CPUFeatures()

	if a.Config.MetricsFile != "" {
		if err := collector.WriteTextfile(a.Config.MetricsFile); err != nil {
			logger.Error("failed to write metrics textfile", err, logging.String("path", a.Config.MetricsFile))
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}

	var presenter orchestration.ResultPresenter = cli.CLIResultPresenter{Trials: !a.Config.Quiet && !a.Config.TUI}
	if a.Config.JSONOutput {
		presenter = cli.JSONPresenter{}
	}
	code := orchestration.AnalyzeResults(report, presenter, out)
	if canceled {
		return apperrors.ExitErrorCanceled
	}
	return code
}

// newLogger builds the run logger: human-readable on the error writer, or
// JSON lines with --log-json. The dashboard owns the terminal, so TUI runs
// only log as JSON.
func (a *Application) newLogger(runID string) logging.Logger {
	level, err := zerolog.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	opts := []logging.Option{
		logging.WithLevel(level),
		logging.WithFields(logging.String("run_id", runID)),
	}
	var w io.Writer = a.ErrWriter
	switch {
	case a.Config.LogJSON:
	case a.Config.TUI:
		w = io.Discard
	default:
		opts = append(opts, logging.WithConsole(ui.GetCurrentTheme().Name == ui.NoColorTheme.Name))
	}
	return logging.NewLogger(w, "kerntune", opts...)
}

// loadWorkload reads the workload file, or builds the synthetic collection
// when none is configured.
func (a *Application) loadWorkload() (*workload.DB, error) {
	if a.Config.Workload == "" {
		return workload.Synthetic("test", a.Config.Salts, 1), nil
	}
	db, err := workload.Load(a.Config.Workload)
	if err != nil {
		return nil, apperrors.NewConfigError("cannot load workload %s: %v", a.Config.Workload, err)
	}
	return db, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
