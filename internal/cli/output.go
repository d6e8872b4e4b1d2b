package cli

import (
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/agbru/kerntune/internal/orchestration"
)

// jsonReport is the machine-readable form of a tuning run.
type jsonReport struct {
	RunID    string       `json:"run_id"`
	Version  string       `json:"version,omitempty"`
	Threads  int          `json:"threads"`
	Features []string     `json:"cpu_features,omitempty"`
	Workload string       `json:"workload"`
	Started  time.Time    `json:"started"`
	Elapsed  string       `json:"elapsed"`
	Kernels  []jsonKernel `json:"kernels"`
	System   jsonSystem   `json:"system"`
}

type jsonKernel struct {
	Name           string      `json:"name"`
	Error          string      `json:"error,omitempty"`
	Duration       string      `json:"duration"`
	BaseBatch      int         `json:"base_batch,omitempty"`
	SampleSalt     string      `json:"sample_salt,omitempty"`
	SampleCost     int         `json:"sample_cost,omitempty"`
	BestScale      int         `json:"best_scale,omitempty"`
	Multiplier     int         `json:"multiplier,omitempty"`
	MaxBatch       int         `json:"max_batch,omitempty"`
	BestThroughput float64     `json:"best_throughput,omitempty"`
	Trials         []jsonTrial `json:"trials,omitempty"`
}

type jsonTrial struct {
	Scale      int     `json:"scale"`
	BatchSize  int     `json:"batch_size"`
	Ops        int64   `json:"ops"`
	DurationNs int64   `json:"duration_ns"`
	Throughput float64 `json:"throughput"`
	Measurable bool    `json:"measurable"`
	Accepted   bool    `json:"accepted"`
}

type jsonSystem struct {
	HeapAlloc  uint64  `json:"heap_alloc"`
	GCCycles   uint32  `json:"gc_cycles"`
	GCPauseNs  uint64  `json:"gc_pause_ns"`
	AllocBytes uint64  `json:"alloc_bytes"`
	Samples    int     `json:"samples"`
	AvgCPU     float64 `json:"avg_cpu"`
	PeakCPU    float64 `json:"peak_cpu"`
	PeakMemPct float64 `json:"peak_mem"`
}

// JSONPresenter writes the report as a single indented JSON object.
type JSONPresenter struct{}

var _ orchestration.ResultPresenter = JSONPresenter{}

// PresentReport implements orchestration.ResultPresenter.
func (JSONPresenter) PresentReport(report orchestration.Report, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONReport(report))
}

func buildJSONReport(r orchestration.Report) jsonReport {
	kernels := make([]jsonKernel, len(r.Results))
	for i, res := range r.Results {
		k := jsonKernel{Name: res.Name, Duration: res.Duration.String()}
		if res.Err != nil {
			k.Error = res.Err.Error()
			kernels[i] = k
			continue
		}
		o := res.Outcome
		k.BaseBatch = o.BaseBatch
		k.SampleSalt = o.Sample.Salt.ID
		k.SampleCost = o.Sample.Ceiling
		k.BestScale = o.BestScale
		k.Multiplier = o.Multiplier
		k.MaxBatch = o.MaxBatch
		k.BestThroughput = o.BestThroughput
		for _, t := range o.Trials {
			k.Trials = append(k.Trials, jsonTrial{
				Scale:      t.Scale,
				BatchSize:  t.BatchSize,
				Ops:        t.Ops,
				DurationNs: t.Duration.Nanoseconds(),
				Throughput: t.Throughput,
				Measurable: t.Measurable,
				Accepted:   t.Accepted,
			})
		}
		kernels[i] = k
	}

	return jsonReport{
		RunID:    r.RunID,
		Version:  r.Version,
		Threads:  r.Threads,
		Features: r.CPUFeatures,
		Workload: r.Workload,
		Started:  r.Started,
		Elapsed:  r.Elapsed.String(),
		Kernels:  kernels,
		System: jsonSystem{
			HeapAlloc:  r.HeapAlloc,
			GCCycles:   r.GC.Cycles,
			GCPauseNs:  r.GC.PauseNs,
			AllocBytes: r.GC.AllocBytes,
			Samples:    r.System.Samples,
			AvgCPU:     r.System.AvgCPU,
			PeakCPU:    r.System.PeakCPU,
			PeakMemPct: r.System.PeakMem,
		},
	}
}
