package autotune

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/kerntune/internal/errors"
	"github.com/agbru/kerntune/internal/logging"
	"github.com/agbru/kerntune/internal/workload"
)

const tracerName = "github.com/agbru/kerntune/internal/autotune"

// Phase is the tuning state of one kernel.
type Phase int

const (
	// PhaseNew means the kernel has not been initialized.
	PhaseNew Phase = iota
	// PhaseInitialized means the base batch was captured and scaled by the
	// thread count.
	PhaseInitialized
	// PhaseRunning means a search is in flight.
	PhaseRunning
	// PhaseTuned means a search finished and its outcome is recorded.
	PhaseTuned
)

func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseInitialized:
		return "initialized"
	case PhaseRunning:
		return "running"
	case PhaseTuned:
		return "tuned"
	default:
		return "unknown"
	}
}

type kernelState struct {
	phase     Phase
	threads   int
	baseBatch int
	outcome   Outcome
}

// Tuner owns the tuning state of every kernel it has seen.
type Tuner struct {
	rt        ThreadCounter
	policy    Policy
	costCap   int
	clock     Clock
	logger    logging.Logger
	tracer    trace.Tracer
	observers []Observer
	// batchLimit is the largest batch the search will probe.
	batchLimit int

	mu     sync.Mutex
	states map[Kernel]*kernelState
}

// Option configures a Tuner.
type Option func(*Tuner)

// WithPolicy replaces the default search policy.
func WithPolicy(p Policy) Option {
	return func(t *Tuner) { t.policy = p }
}

// WithCostCap caps the salt cost used for tuning. n <= 0 means no cap.
func WithCostCap(n int) Option {
	return func(t *Tuner) { t.costCap = n }
}

// WithClock replaces the wall clock used to time trials.
func WithClock(c Clock) Option {
	return func(t *Tuner) { t.clock = c }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return func(t *Tuner) { t.logger = l }
}

// WithTracer replaces the global tracer.
func WithTracer(tr trace.Tracer) Option {
	return func(t *Tuner) { t.tracer = tr }
}

// WithObserver registers observers for trials and outcomes.
func WithObserver(obs ...Observer) Option {
	return func(t *Tuner) { t.observers = append(t.observers, obs...) }
}

// New creates a Tuner drawing the worker thread count from rt.
func New(rt ThreadCounter, opts ...Option) *Tuner {
	t := &Tuner{
		rt:     rt,
		policy: DefaultPolicy(),
		clock:  SystemClock(),
		logger: logging.NewNopLogger(),
		tracer: otel.Tracer(tracerName),
		states: make(map[Kernel]*kernelState),

		batchLimit: maxBatchSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Policy returns the search policy in effect.
func (t *Tuner) Policy() Policy { return t.policy }

// Autotune is the single entry point of the tuner.
//
// With a nil db it initializes k: the current MaxBatch is recorded as the
// per-thread base batch, both batch bounds are multiplied by the thread
// count, and the thread count is returned. The host must then call k.Setup.
//
// With a workload it searches for the best scale, leaves k provisioned for
// base*threads*scale items and returns threads*scale. Calls made while the
// search for k is in flight return MaxBatch/base without searching. Calls
// after tuning return the recorded multiplier.
//
// With a single worker thread every call returns 1 and k is left untouched.
//
// If a trial fails, k is set up again for the best scale measured so far and
// the error is returned. The state goes back to initialized, so a later call
// searches again.
func (t *Tuner) Autotune(ctx context.Context, k Kernel, db *workload.DB) (int, error) {
	t.mu.Lock()
	st := t.stateFor(k)

	switch st.phase {
	case PhaseRunning:
		mult := k.MaxBatch() / st.baseBatch
		t.mu.Unlock()
		return mult, nil
	case PhaseTuned:
		if db != nil {
			mult := st.outcome.Multiplier
			t.mu.Unlock()
			return mult, nil
		}
	}

	threads := st.threads
	if st.phase == PhaseNew {
		threads = t.rt.ThreadCount()
	}
	if threads <= 1 {
		t.mu.Unlock()
		return 1, nil
	}

	if db == nil {
		defer t.mu.Unlock()
		return t.initialize(k, st, threads)
	}

	if st.phase != PhaseInitialized {
		t.mu.Unlock()
		return 0, apperrors.ContractError{Kernel: k.Label(), Message: "search requested before initialization"}
	}
	sample, err := SelectSample(db, t.costCap)
	if err != nil {
		t.mu.Unlock()
		if errors.Is(err, ErrEmptyWorkload) {
			return 0, apperrors.ContractError{Kernel: k.Label(), Message: err.Error()}
		}
		return 0, err
	}
	st.phase = PhaseRunning
	run := searchRun{kernel: k, threads: st.threads, baseBatch: st.baseBatch, sample: sample}
	t.mu.Unlock()

	out, err := t.search(ctx, run)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		st.phase = PhaseInitialized
		return 0, err
	}
	st.outcome = out
	st.phase = PhaseTuned
	return out.Multiplier, nil
}

// initialize captures the base batch and scales the bounds. Caller holds mu.
func (t *Tuner) initialize(k Kernel, st *kernelState, threads int) (int, error) {
	if st.phase != PhaseNew {
		return 0, apperrors.ContractError{Kernel: k.Label(), Message: "initialized twice"}
	}
	base := k.MaxBatch()
	if base < 1 {
		return 0, apperrors.ContractError{Kernel: k.Label(), Message: "base batch must be at least 1"}
	}
	st.baseBatch = base
	st.threads = threads
	st.phase = PhaseInitialized
	k.SetBatchBounds(k.MinBatch()*threads, base*threads)

	t.logger.Debug("autotune initialized",
		logging.String("kernel", k.Label()),
		logging.Int("threads", threads),
		logging.Int("base_batch", base),
		logging.Int("max_batch", base*threads),
	)
	return threads, nil
}

func (t *Tuner) stateFor(k Kernel) *kernelState {
	st, ok := t.states[k]
	if !ok {
		st = &kernelState{}
		t.states[k] = st
	}
	return st
}

// Phase returns the tuning state of k.
func (t *Tuner) Phase(k Kernel) Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.states[k]; ok {
		return st.phase
	}
	return PhaseNew
}

// Tuned reports whether a search for k has finished.
func (t *Tuner) Tuned(k Kernel) bool {
	return t.Phase(k) == PhaseTuned
}

// Outcome returns the recorded search result for k.
func (t *Tuner) Outcome(k Kernel) (Outcome, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.states[k]
	if !ok || st.phase != PhaseTuned {
		return Outcome{}, false
	}
	return st.outcome, true
}
