package autotune

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/kerntune/internal/errors"
	"github.com/agbru/kerntune/internal/logging"
)

// Trial records one probe of the search.
type Trial struct {
	Scale     int
	BatchSize int
	// MinOps is the operation floor the trial had to reach.
	MinOps     int64
	Ops        int64
	Duration   time.Duration
	Throughput float64
	// Measurable is false when the duration was zero or the rate non-finite.
	Measurable bool
	// Accepted reports whether the trial became the new best.
	Accepted bool
}

// Outcome is the result of a finished search.
type Outcome struct {
	Kernel         string
	Threads        int
	BaseBatch      int
	Sample         Selection
	BestScale      int
	BestThroughput float64
	// Multiplier is threads*BestScale, the value returned to the host.
	Multiplier int
	// MaxBatch is the kernel's final maximum batch, BaseBatch*Multiplier.
	MaxBatch int
	Trials   []Trial
	Elapsed  time.Duration
}

// searchRun carries the inputs of one search.
type searchRun struct {
	kernel    Kernel
	threads   int
	baseBatch int
	sample    Selection
}

// search probes scales 1, 2, 4, ... and leaves the kernel provisioned for the
// best one.
func (t *Tuner) search(ctx context.Context, run searchRun) (Outcome, error) {
	k := run.kernel
	label := k.Label()
	started := t.clock.Now()

	ctx, span := t.tracer.Start(ctx, "autotune.search", trace.WithAttributes(
		attribute.String("kernel", label),
		attribute.Int("threads", run.threads),
		attribute.Int("base_batch", run.baseBatch),
		attribute.Int("salt_cost", run.sample.Salt.Cost),
	))
	defer span.End()

	t.logger.Debug("autotune using workload",
		logging.String("kernel", label),
		logging.String("source", run.sample.Source),
		logging.Bool("real", run.sample.Real),
		logging.String("salt", run.sample.Salt.ID),
		logging.Int("cost", run.sample.Salt.Cost),
		logging.Int("ceiling", run.sample.Ceiling),
	)

	var (
		scale          = 1
		bestScale      = 1
		bestThroughput float64
		noProgress     int
		minOps         int64
		trials         []Trial
	)
	for {
		batch := run.baseBatch * run.threads * scale
		tr, err := t.trial(ctx, k, scale, batch, run.sample, minOps)
		if err != nil {
			t.reprovision(k, run.baseBatch*run.threads*bestScale)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			t.logger.Error("autotune trial failed", err,
				logging.String("kernel", label),
				logging.Int("scale", scale),
			)
			return Outcome{}, err
		}

		if tr.Measurable && tr.Throughput >= bestThroughput*t.policy.RequiredGain {
			tr.Accepted = true
			bestScale = scale
			bestThroughput = tr.Throughput
			noProgress = 0
		} else {
			noProgress++
		}
		minOps = tr.Ops
		trials = append(trials, tr)

		t.logger.Debug("autotune trial",
			logging.String("kernel", label),
			logging.Int("scale", scale),
			logging.Int("batch", batch),
			logging.Int64("ops", tr.Ops),
			logging.Duration("duration", tr.Duration),
			logging.Float64("throughput", tr.Throughput),
			logging.Bool("accepted", tr.Accepted),
		)
		for _, o := range t.observers {
			o.ObserveTrial(label, tr)
		}

		if tr.Duration > t.policy.MaxTrialTime || noProgress > t.policy.MaxNoProgress {
			break
		}
		if batch > t.batchLimit/2 {
			break
		}
		scale *= 2
	}

	out := Outcome{
		Kernel:         label,
		Threads:        run.threads,
		BaseBatch:      run.baseBatch,
		Sample:         run.sample,
		BestScale:      bestScale,
		BestThroughput: bestThroughput,
		Multiplier:     run.threads * bestScale,
		MaxBatch:       run.baseBatch * run.threads * bestScale,
		Trials:         trials,
	}

	k.SetBatchBounds(k.MinBatch(), out.MaxBatch)
	if bestScale != scale {
		k.Teardown()
		if err := k.Setup(); err != nil {
			k.Teardown()
			kerr := apperrors.KernelError{Kernel: label, Op: "setup", Cause: err}
			span.RecordError(kerr)
			span.SetStatus(codes.Error, kerr.Error())
			return Outcome{}, kerr
		}
	}
	out.Elapsed = t.clock.Now().Sub(started)

	span.SetAttributes(
		attribute.Int("best_scale", bestScale),
		attribute.Int("multiplier", out.Multiplier),
		attribute.Float64("best_throughput", bestThroughput),
		attribute.Int("trials", len(trials)),
	)
	t.logger.Info("autotune found best speed",
		logging.String("kernel", label),
		logging.Float64("throughput", bestThroughput),
		logging.Int("scale", bestScale),
		logging.Int("max_batch", out.MaxBatch),
		logging.Int("threads", run.threads),
	)
	for _, o := range t.observers {
		o.ObserveOutcome(out)
	}
	return out, nil
}

// reprovision sizes k for maxBatch after a failed trial. When that Setup
// fails too, k is left torn down.
func (t *Tuner) reprovision(k Kernel, maxBatch int) {
	k.SetBatchBounds(k.MinBatch(), maxBatch)
	k.Teardown()
	if err := k.Setup(); err != nil {
		k.Teardown()
		t.logger.Error("autotune could not restore kernel", err,
			logging.String("kernel", k.Label()),
			logging.Int("max_batch", maxBatch),
		)
	}
}

// trial runs one measured probe under its own span.
func (t *Tuner) trial(ctx context.Context, k Kernel, scale, batch int, sample Selection, minOps int64) (Trial, error) {
	_, span := t.tracer.Start(ctx, "autotune.trial", trace.WithAttributes(
		attribute.Int("scale", scale),
		attribute.Int("batch", batch),
		attribute.Int64("min_ops", minOps),
	))
	defer span.End()

	m, err := Measure(k, batch, sample.Salt, t.policy.SampleTime, minOps, t.clock)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Trial{}, err
	}
	tp, ok := m.Throughput()
	span.SetAttributes(
		attribute.Int64("ops", m.Ops),
		attribute.Int64("duration_ns", m.Duration.Nanoseconds()),
		attribute.Float64("throughput", tp),
	)
	return Trial{
		Scale:      scale,
		BatchSize:  batch,
		MinOps:     minOps,
		Ops:        m.Ops,
		Duration:   m.Duration,
		Throughput: tp,
		Measurable: ok,
	}, nil
}
