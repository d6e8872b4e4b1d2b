// Package sysmon samples system-wide CPU and memory usage while kernels are
// being tuned, so a noisy machine shows up next to the tuning result.
package sysmon

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// DefaultInterval is the sampling period of a Monitor.
const DefaultInterval = 250 * time.Millisecond

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Summary aggregates the samples taken by a Monitor.
type Summary struct {
	Samples int
	AvgCPU  float64
	PeakCPU float64
	PeakMem float64
}

// Monitor samples periodically until its context is canceled.
type Monitor struct {
	interval time.Duration
	sample   func() Stats

	mu     sync.Mutex
	sumCPU float64
	sum    Summary
}

// NewMonitor creates a monitor sampling every interval. A non-positive
// interval selects DefaultInterval.
func NewMonitor(interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{interval: interval, sample: Sample}
}

// Run samples until ctx is done. It primes the CPU counter first, so the
// first recorded sample covers one full interval. Run always returns nil;
// the error result lets it run under an errgroup.
func (m *Monitor) Run(ctx context.Context) error {
	m.sample()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.record(m.sample())
		}
	}
}

func (m *Monitor) record(s Stats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sum.Samples++
	m.sumCPU += s.CPUPercent
	m.sum.AvgCPU = m.sumCPU / float64(m.sum.Samples)
	if s.CPUPercent > m.sum.PeakCPU {
		m.sum.PeakCPU = s.CPUPercent
	}
	if s.MemPercent > m.sum.PeakMem {
		m.sum.PeakMem = s.MemPercent
	}
}

// Summary returns the aggregate of the samples so far.
func (m *Monitor) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sum
}
