package metrics

import (
	"runtime"
	"testing"
)

func TestMemoryCollectorSnapshot(t *testing.T) {
	t.Parallel()
	mc := &MemoryCollector{read: func(m *runtime.MemStats) {
		m.HeapAlloc = 1 << 20
		m.TotalAlloc = 5 << 20
		m.Mallocs = 900
		m.NumGC = 7
		m.PauseTotalNs = 1500
	}}
	want := MemorySnapshot{HeapAlloc: 1 << 20, TotalAlloc: 5 << 20, Mallocs: 900, NumGC: 7, PauseTotalNs: 1500}
	if got := mc.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestMemorySnapshotSince(t *testing.T) {
	t.Parallel()
	before := MemorySnapshot{TotalAlloc: 100, Mallocs: 10, NumGC: 2, PauseTotalNs: 50}
	tests := []struct {
		name  string
		after MemorySnapshot
		want  GCActivity
	}{
		{
			name:  "growth",
			after: MemorySnapshot{TotalAlloc: 4196, Mallocs: 42, NumGC: 5, PauseTotalNs: 80},
			want:  GCActivity{Cycles: 3, PauseNs: 30, AllocBytes: 4096, Allocs: 32},
		},
		{
			name:  "unchanged",
			after: before,
		},
		{
			name:  "counters went backwards",
			after: MemorySnapshot{TotalAlloc: 1, NumGC: 1},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.after.Since(before); got != tt.want {
				t.Errorf("Since() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMemoryCollectorSeesAllocation(t *testing.T) {
	mc := NewMemoryCollector()
	before := mc.Snapshot()
	buf := make([][]byte, 64)
	for i := range buf {
		buf[i] = make([]byte, 4096)
	}
	runtime.GC()
	after := mc.Snapshot()
	runtime.KeepAlive(buf)

	got := after.Since(before)
	if got.Cycles < 1 {
		t.Errorf("Cycles = %d, want >= 1 after runtime.GC", got.Cycles)
	}
	if got.AllocBytes < 64*4096 {
		t.Errorf("AllocBytes = %d, want >= %d", got.AllocBytes, 64*4096)
	}
	if after.HeapAlloc == 0 {
		t.Error("HeapAlloc = 0")
	}
}
