// Package config provides the configuration management for kerntune.
// It defines the configuration structure, parses command-line arguments,
// applies KERNTUNE_ environment overrides and validates the result.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/kerntune/internal/autotune"
	apperrors "github.com/agbru/kerntune/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by kerntune.
	EnvPrefix = "KERNTUNE_"
)

// Default configuration values.
const (
	// DefaultKernel selects every registered kernel.
	DefaultKernel = "all"
	// DefaultSalts is the number of synthetic salts per collection.
	DefaultSalts = 8
	// DefaultLogLevel is the zerolog level name used when none is given.
	DefaultLogLevel = "info"
)

// AppConfig aggregates the parameters of a tuning run.
type AppConfig struct {
	// Kernel is "all" or a comma-separated list of kernel names.
	Kernel string
	// Threads overrides the worker thread count. 0 detects it.
	Threads int
	// CostCap caps the salt cost used for tuning. 0 means unlimited.
	CostCap int
	// Workload is a YAML workload file. Empty selects a synthetic collection.
	Workload string
	// Salts is the size of the synthetic collection.
	Salts int

	SampleTime    time.Duration
	MaxTrialTime  time.Duration
	Gain          float64
	MaxNoProgress int

	// JSONOutput prints the report as JSON on stdout.
	JSONOutput bool
	// TUI shows the live terminal view.
	TUI bool
	// MetricsFile, if set, receives a Prometheus textfile after the run.
	MetricsFile string

	LogLevel string
	LogJSON  bool

	// Quiet suppresses the spinner and the trial table.
	Quiet bool
	// NoColor disables colored output. NO_COLOR is also honored.
	NoColor bool
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// ToPolicy returns the search policy described by the configuration.
func (c AppConfig) ToPolicy() autotune.Policy {
	return autotune.Policy{
		SampleTime:    c.SampleTime,
		RequiredGain:  c.Gain,
		MaxTrialTime:  c.MaxTrialTime,
		MaxNoProgress: c.MaxNoProgress,
	}
}

// KernelNames resolves the Kernel selection against the available names.
func (c AppConfig) KernelNames(available []string) []string {
	if c.Kernel == "" || c.Kernel == DefaultKernel {
		return append([]string(nil), available...)
	}
	var names []string
	seen := make(map[string]bool)
	for _, name := range strings.Split(c.Kernel, ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Validate checks the semantic consistency of the configuration.
//
// Returns a ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableKernels []string) error {
	if err := c.ToPolicy().Validate(); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Threads < 0 {
		return apperrors.NewConfigError("threads cannot be negative: %d", c.Threads)
	}
	if c.CostCap < 0 {
		return apperrors.NewConfigError("cost cap cannot be negative: %d", c.CostCap)
	}
	if c.Salts < 1 {
		return apperrors.NewConfigError("salts must be at least 1: %d", c.Salts)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("unrecognized log level: '%s'", c.LogLevel)
	}

	names := c.KernelNames(availableKernels)
	if len(names) == 0 {
		return apperrors.NewConfigError("no kernel selected")
	}
	for _, name := range names {
		found := false
		for _, a := range availableKernels {
			if a == name {
				found = true
				break
			}
		}
		if !found {
			return apperrors.NewConfigError("unrecognized kernel: '%s'. Valid kernels are: 'all' or [%s]", name, strings.Join(availableKernels, ", "))
		}
	}
	return nil
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// for flags not given explicitly and validates the result.
//
// Parameters:
//   - programName: The name used in the usage message.
//   - args: The command-line arguments, typically os.Args[1:].
//   - errorWriter: Where parsing errors and usage are printed.
//   - availableKernels: The registered kernel names.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp, a parse error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableKernels []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	kernelHelp := fmt.Sprintf("Kernels to tune: 'all' (default) or a comma list of [%s].", strings.Join(availableKernels, ", "))

	config := AppConfig{}
	fs.StringVar(&config.Kernel, "kernel", DefaultKernel, kernelHelp)
	fs.IntVar(&config.Threads, "threads", 0, "Worker threads (0 detects from CPU affinity).")
	fs.IntVar(&config.CostCap, "cost-cap", 0, "Highest salt cost used for tuning (0 for unlimited).")
	fs.StringVar(&config.Workload, "workload", "", "YAML workload file (default: synthetic collection).")
	fs.IntVar(&config.Salts, "salts", DefaultSalts, "Number of salts in the synthetic collection.")
	fs.DurationVar(&config.SampleTime, "sample-time", autotune.DefaultSampleTime, "Minimum measurement window per trial.")
	fs.DurationVar(&config.MaxTrialTime, "max-trial-time", autotune.DefaultMaxTrialTime, "Stop once a trial runs longer than this.")
	fs.Float64Var(&config.Gain, "gain", autotune.DefaultRequiredGain, "Relative throughput gain a larger scale must reach.")
	fs.IntVar(&config.MaxNoProgress, "max-no-progress", autotune.DefaultMaxNoProgress, "Non-gaining probes tolerated before stopping.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output the report in JSON format.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the live terminal view while tuning.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (trace, debug, info, warn, error).")
	fs.BoolVar(&config.LogJSON, "log-json", false, "Emit log lines as JSON.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Kernel = strings.ToLower(strings.TrimSpace(config.Kernel))
	config.LogLevel = strings.ToLower(config.LogLevel)
	if err := config.Validate(availableKernels); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}
