// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the KERNTUNE_ prefix) to the flag
// name(s) it shadows and a function applying the value. Unparsable values
// are ignored.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intOverride(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func durationOverride(dst func(*AppConfig) *time.Duration) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolOverride(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"THREADS", []string{"threads"}, intOverride(func(c *AppConfig) *int { return &c.Threads })},
	{"COST_CAP", []string{"cost-cap"}, intOverride(func(c *AppConfig) *int { return &c.CostCap })},
	{"SALTS", []string{"salts"}, intOverride(func(c *AppConfig) *int { return &c.Salts })},
	{"MAX_NO_PROGRESS", []string{"max-no-progress"}, intOverride(func(c *AppConfig) *int { return &c.MaxNoProgress })},
	{"GAIN", []string{"gain"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Gain = parsed
		}
	}},

	// Duration overrides
	{"SAMPLE_TIME", []string{"sample-time"}, durationOverride(func(c *AppConfig) *time.Duration { return &c.SampleTime })},
	{"MAX_TRIAL_TIME", []string{"max-trial-time"}, durationOverride(func(c *AppConfig) *time.Duration { return &c.MaxTrialTime })},

	// String overrides
	{"KERNEL", []string{"kernel"}, func(c *AppConfig, v string) { c.Kernel = v }},
	{"WORKLOAD", []string{"workload"}, func(c *AppConfig, v string) { c.Workload = v }},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) { c.MetricsFile = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},

	// Boolean overrides
	{"JSON", []string{"json"}, boolOverride(func(c *AppConfig) *bool { return &c.JSONOutput })},
	{"TUI", []string{"tui"}, boolOverride(func(c *AppConfig) *bool { return &c.TUI })},
	{"LOG_JSON", []string{"log-json"}, boolOverride(func(c *AppConfig) *bool { return &c.LogJSON })},
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// Priority: CLI flags > environment variables > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
