package metrics

import "runtime"

// MemorySnapshot is the part of runtime.MemStats a tuning report uses.
type MemorySnapshot struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	Mallocs      uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct {
	read func(*runtime.MemStats)
}

// NewMemoryCollector returns a collector backed by runtime.ReadMemStats.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{read: runtime.ReadMemStats}
}

// Snapshot reads the current statistics. ReadMemStats stops the world, so
// callers take one before and one after a run rather than per trial.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	mc.read(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// GCActivity is the allocation and collector work between two snapshots.
// Kernel buffers are rebuilt on every trial, so for a search this is mostly
// the cost of re-provisioning.
type GCActivity struct {
	Cycles     uint32
	PauseNs    uint64
	AllocBytes uint64
	Allocs     uint64
}

// Since returns the work done between before and s. Counters that went
// backwards yield zero.
func (s MemorySnapshot) Since(before MemorySnapshot) GCActivity {
	return GCActivity{
		Cycles:     delta(s.NumGC, before.NumGC),
		PauseNs:    delta(s.PauseTotalNs, before.PauseTotalNs),
		AllocBytes: delta(s.TotalAlloc, before.TotalAlloc),
		Allocs:     delta(s.Mallocs, before.Mallocs),
	}
}

func delta[T uint32 | uint64](after, before T) T {
	if after < before {
		return 0
	}
	return after - before
}
