package autotune

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/agbru/kerntune/internal/errors"
	"github.com/agbru/kerntune/internal/workload"
)

func TestAppendTuneKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		i    int
		want string
	}{
		{0, "tune0000"},
		{7, "tune0007"},
		{42, "tune0042"},
		{100, "tune0100"},
		{999, "tune0999"},
		{1000, "tune1000"},
		{12345, "tune12345"},
	}
	for _, tt := range tests {
		if got := string(appendTuneKey(nil, tt.i)); got != tt.want {
			t.Errorf("appendTuneKey(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestMeasure(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	k := newScriptedKernel(clock, 1, 1000)
	salt := workload.Salt{ID: "s", Value: []byte{1, 2, 3}, Cost: 4}

	m, err := Measure(k, 4, salt, 10*time.Millisecond, 20, clock)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if k.MaxBatch() != 4 || len(k.buf) != 4 {
		t.Errorf("kernel provisioned for %d (buf %d), want 4", k.MaxBatch(), len(k.buf))
	}
	wantEvents := []string{"teardown", "setup", "clear", "bind"}
	if len(k.events) != len(wantEvents) {
		t.Fatalf("events = %v, want %v", k.events, wantEvents)
	}
	for i, ev := range wantEvents {
		if k.events[i] != ev {
			t.Errorf("event %d = %q, want %q", i, k.events[i], ev)
		}
	}
	for i, in := range k.inputs {
		if want := string(appendTuneKey(nil, i)); string(in) != want {
			t.Errorf("input %d = %q, want %q", i, in, want)
		}
	}
	if len(k.inputs) != 4 {
		t.Errorf("inputs = %d, want 4", len(k.inputs))
	}
	if k.salt.ID != "s" {
		t.Errorf("bound salt = %q", k.salt.ID)
	}
	// 4 items per 4ms call: the 20-op floor needs 5 calls.
	if m.Ops != 20 {
		t.Errorf("Ops = %d, want 20", m.Ops)
	}
	if m.Duration != 20*time.Millisecond {
		t.Errorf("Duration = %v, want 20ms", m.Duration)
	}
	if tp, ok := m.Throughput(); !ok || tp < 999 || tp > 1001 {
		t.Errorf("Throughput() = %v, %v; want ~1000", tp, ok)
	}
}

func TestMeasureHonorsSampleTime(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	k := newScriptedKernel(clock, 1, 1000)

	m, err := Measure(k, 2, workload.Salt{Cost: 1}, 10*time.Millisecond, 0, clock)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if m.Duration < 10*time.Millisecond {
		t.Errorf("Duration = %v, want >= 10ms", m.Duration)
	}
	if m.Ops%2 != 0 {
		t.Errorf("Ops = %d, want a whole number of batches", m.Ops)
	}
}

func TestMeasureSetupFailure(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	k := newScriptedKernel(clock, 1, 1000)
	k.failSetupAt = 1

	_, err := Measure(k, 8, workload.Salt{Cost: 1}, time.Millisecond, 0, clock)
	var kerr apperrors.KernelError
	if !errors.As(err, &kerr) || kerr.Op != "setup" {
		t.Fatalf("err = %v, want setup KernelError", err)
	}
	if k.teardowns != 2 {
		t.Errorf("teardowns = %d, want 2", k.teardowns)
	}
	if k.computes != 0 {
		t.Error("computed after failed setup")
	}
}

func TestMeasurementThroughput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		m      Measurement
		want   float64
		wantOK bool
	}{
		{"zero duration", Measurement{Ops: 10}, 0, false},
		{"negative duration", Measurement{Ops: 10, Duration: -time.Second}, 0, false},
		{"one second", Measurement{Ops: 500, Duration: time.Second}, 500, true},
		{"half second", Measurement{Ops: 500, Duration: 500 * time.Millisecond}, 1000, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tt.m.Throughput()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Throughput() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStopwatch(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	sw := startStopwatch(clock)
	clock.Advance(3 * time.Millisecond)
	if got := sw.Elapsed(); got != 3*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 3ms", got)
	}
	clock.Advance(2 * time.Millisecond)
	if got := sw.Stop(); got != 5*time.Millisecond {
		t.Errorf("Stop() = %v, want 5ms", got)
	}
	clock.Advance(time.Second)
	if got := sw.Elapsed(); got != 5*time.Millisecond {
		t.Errorf("Elapsed() after Stop = %v, want 5ms", got)
	}
}

func TestPolicyValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*Policy)
		wantErr bool
	}{
		{"default", func(*Policy) {}, false},
		{"zero sample", func(p *Policy) { p.SampleTime = 0 }, true},
		{"trial shorter than sample", func(p *Policy) { p.MaxTrialTime = time.Millisecond }, true},
		{"gain below one", func(p *Policy) { p.RequiredGain = 0.9 }, true},
		{"gain of one", func(p *Policy) { p.RequiredGain = 1 }, false},
		{"negative no-progress", func(p *Policy) { p.MaxNoProgress = -1 }, true},
		{"zero no-progress", func(p *Policy) { p.MaxNoProgress = 0 }, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := DefaultPolicy()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
