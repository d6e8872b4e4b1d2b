package sysmon

import (
	"context"
	"testing"
	"time"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_MemPercentNonZero(t *testing.T) {
	s := Sample()
	if s.MemPercent == 0 {
		t.Error("expected non-zero MemPercent on a running system")
	}
}

func TestMonitor_Record(t *testing.T) {
	t.Parallel()
	m := NewMonitor(0)
	if m.interval != DefaultInterval {
		t.Errorf("interval = %v, want default", m.interval)
	}
	m.record(Stats{CPUPercent: 20, MemPercent: 40})
	m.record(Stats{CPUPercent: 60, MemPercent: 35})

	s := m.Summary()
	if s.Samples != 2 || s.AvgCPU != 40 || s.PeakCPU != 60 || s.PeakMem != 40 {
		t.Errorf("Summary() = %+v", s)
	}
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	t.Parallel()
	m := NewMonitor(time.Millisecond)
	m.sample = func() Stats {
		return Stats{CPUPercent: 10, MemPercent: 5}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for m.Summary().Samples < 3 {
		select {
		case <-deadline:
			t.Fatal("monitor took no samples")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
	if s := m.Summary(); s.AvgCPU != 10 || s.PeakMem != 5 {
		t.Errorf("Summary() = %+v", s)
	}
}
