// Package metrics exports tuning results as Prometheus metrics and reads Go
// runtime memory statistics for the tuning report.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/kerntune/internal/autotune"
)

// TuningCollector records trials and outcomes on its own registry. It
// implements autotune.Observer.
type TuningCollector struct {
	registry   *prometheus.Registry
	trials     *prometheus.CounterVec
	throughput *prometheus.GaugeVec
	duration   *prometheus.HistogramVec
	bestScale  *prometheus.GaugeVec
	multiplier *prometheus.GaugeVec
	maxBatch   *prometheus.GaugeVec
}

var _ autotune.Observer = (*TuningCollector)(nil)

// NewTuningCollector creates a collector with a private registry.
func NewTuningCollector() *TuningCollector {
	c := &TuningCollector{
		registry: prometheus.NewRegistry(),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kerntune_trials_total",
			Help: "Number of timed trials run by the autotuner.",
		}, []string{"kernel", "accepted"}),
		throughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kerntune_trial_throughput",
			Help: "Measured operations per second of a trial.",
		}, []string{"kernel", "scale"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kerntune_trial_duration_seconds",
			Help:    "Wall time of autotune trials.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"kernel"}),
		bestScale: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kerntune_best_scale",
			Help: "Per-thread batch scale chosen by the autotuner.",
		}, []string{"kernel"}),
		multiplier: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kerntune_multiplier",
			Help: "Batch multiplier (threads * scale) returned to the host.",
		}, []string{"kernel"}),
		maxBatch: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kerntune_max_batch",
			Help: "Final maximum batch size configured on the kernel.",
		}, []string{"kernel"}),
	}
	c.registry.MustRegister(c.trials, c.throughput, c.duration, c.bestScale, c.multiplier, c.maxBatch)
	return c
}

// ObserveTrial records one trial.
func (c *TuningCollector) ObserveTrial(kernel string, t autotune.Trial) {
	c.trials.WithLabelValues(kernel, strconv.FormatBool(t.Accepted)).Inc()
	c.throughput.WithLabelValues(kernel, strconv.Itoa(t.Scale)).Set(t.Throughput)
	c.duration.WithLabelValues(kernel).Observe(t.Duration.Seconds())
}

// ObserveOutcome records the result of a search.
func (c *TuningCollector) ObserveOutcome(o autotune.Outcome) {
	c.bestScale.WithLabelValues(o.Kernel).Set(float64(o.BestScale))
	c.multiplier.WithLabelValues(o.Kernel).Set(float64(o.Multiplier))
	c.maxBatch.WithLabelValues(o.Kernel).Set(float64(o.MaxBatch))
}

// Registry returns the registry holding the tuning metrics.
func (c *TuningCollector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes all tuning metrics to path in the text exposition
// format, for the node exporter textfile collector.
func (c *TuningCollector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
