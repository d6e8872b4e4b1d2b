package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/kerntune/internal/errors"
)

var availableKernels = []string{"blake3", "sha256"}

func TestParseConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("kerntune", []string{}, io.Discard, availableKernels)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Kernel != "all" {
			t.Errorf("Expected default Kernel 'all', got %s", cfg.Kernel)
		}
		if cfg.SampleTime != 10*time.Millisecond || cfg.MaxTrialTime != 100*time.Millisecond {
			t.Errorf("Unexpected default times: %v / %v", cfg.SampleTime, cfg.MaxTrialTime)
		}
		if cfg.Gain != 1.05 || cfg.MaxNoProgress != 3 {
			t.Errorf("Unexpected default gain/no-progress: %v / %d", cfg.Gain, cfg.MaxNoProgress)
		}
		if cfg.Salts != DefaultSalts || cfg.LogLevel != "info" {
			t.Errorf("Unexpected defaults: salts %d, log level %s", cfg.Salts, cfg.LogLevel)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		t.Parallel()
		args := []string{
			"-kernel", "SHA256",
			"-threads", "6",
			"-cost-cap", "4",
			"-sample-time", "5ms",
			"-max-trial-time", "50ms",
			"-gain", "1.1",
			"-max-no-progress", "2",
			"-json",
			"-q",
			"-log-level", "DEBUG",
		}
		cfg, err := ParseConfig("kerntune", args, io.Discard, availableKernels)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Kernel != "sha256" {
			t.Errorf("Expected Kernel 'sha256', got %s", cfg.Kernel)
		}
		if cfg.Threads != 6 || cfg.CostCap != 4 {
			t.Errorf("Expected threads 6 and cost cap 4, got %d and %d", cfg.Threads, cfg.CostCap)
		}
		p := cfg.ToPolicy()
		if p.SampleTime != 5*time.Millisecond || p.MaxTrialTime != 50*time.Millisecond ||
			p.RequiredGain != 1.1 || p.MaxNoProgress != 2 {
			t.Errorf("Unexpected policy: %+v", p)
		}
		if !cfg.JSONOutput || !cfg.Quiet {
			t.Error("Expected JSONOutput and Quiet")
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Expected log level 'debug', got %s", cfg.LogLevel)
		}
	})

	t.Run("Help", func(t *testing.T) {
		t.Parallel()
		var out strings.Builder
		_, err := ParseConfig("kerntune", []string{"-h"}, &out, availableKernels)
		if !errors.Is(err, flag.ErrHelp) {
			t.Fatalf("Expected flag.ErrHelp, got %v", err)
		}
		if !strings.Contains(out.String(), "-max-trial-time") {
			t.Error("Usage should list the flags")
		}
	})
}

func TestParseConfigInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"UnknownKernel", []string{"-kernel", "md5"}},
		{"PartlyUnknownKernel", []string{"-kernel", "sha256,md5"}},
		{"EmptyKernelList", []string{"-kernel", ","}},
		{"GainBelowOne", []string{"-gain", "0.99"}},
		{"ZeroSampleTime", []string{"-sample-time", "0s"}},
		{"TrialShorterThanSample", []string{"-sample-time", "20ms", "-max-trial-time", "10ms"}},
		{"NegativeNoProgress", []string{"-max-no-progress", "-1"}},
		{"NegativeThreads", []string{"-threads", "-2"}},
		{"NegativeCostCap", []string{"-cost-cap", "-2"}},
		{"NoSalts", []string{"-salts", "0"}},
		{"BadLogLevel", []string{"-log-level", "loud"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("kerntune", tt.args, io.Discard, availableKernels)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
			if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
				t.Errorf("Expected config exit code, got %d", apperrors.ExitCode(err))
			}
		})
	}
}

func TestParseConfigUnknownFlag(t *testing.T) {
	t.Parallel()
	if _, err := ParseConfig("kerntune", []string{"-bogus"}, io.Discard, availableKernels); err == nil {
		t.Error("Expected an error for an unknown flag")
	}
}

func TestKernelNames(t *testing.T) {
	t.Parallel()
	tests := []struct {
		kernel string
		want   []string
	}{
		{"all", []string{"blake3", "sha256"}},
		{"", []string{"blake3", "sha256"}},
		{"sha256", []string{"sha256"}},
		{"sha256, blake3,sha256", []string{"sha256", "blake3"}},
	}
	for _, tt := range tests {
		got := AppConfig{Kernel: tt.kernel}.KernelNames(availableKernels)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("KernelNames(%q) = %v, want %v", tt.kernel, got, tt.want)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KERNTUNE_KERNEL", "blake3")
	t.Setenv("KERNTUNE_THREADS", "3")
	t.Setenv("KERNTUNE_GAIN", "1.2")
	t.Setenv("KERNTUNE_SAMPLE_TIME", "2ms")
	t.Setenv("KERNTUNE_QUIET", "yes")
	t.Setenv("KERNTUNE_SALTS", "not-a-number")
	t.Setenv("KERNTUNE_COST_CAP", "9")

	cfg, err := ParseConfig("kerntune", []string{"-cost-cap", "5"}, io.Discard, availableKernels)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Kernel != "blake3" {
		t.Errorf("Expected Kernel from env, got %s", cfg.Kernel)
	}
	if cfg.Threads != 3 {
		t.Errorf("Expected Threads 3 from env, got %d", cfg.Threads)
	}
	if cfg.Gain != 1.2 {
		t.Errorf("Expected Gain 1.2 from env, got %v", cfg.Gain)
	}
	if cfg.SampleTime != 2*time.Millisecond {
		t.Errorf("Expected SampleTime 2ms from env, got %v", cfg.SampleTime)
	}
	if !cfg.Quiet {
		t.Error("Expected Quiet from env")
	}
	if cfg.Salts != DefaultSalts {
		t.Errorf("Invalid env value should be ignored, got Salts %d", cfg.Salts)
	}
	if cfg.CostCap != 5 {
		t.Errorf("Explicit flag must win over env, got CostCap %d", cfg.CostCap)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.def, got, tt.want)
		}
	}
}
