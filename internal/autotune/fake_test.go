package autotune

import (
	"errors"
	"sync"
	"time"

	"github.com/agbru/kerntune/internal/workload"
)

// fixedThreads is a ThreadCounter with a constant answer.
type fixedThreads int

func (n fixedThreads) ThreadCount() int { return int(n) }

// fakeClock only moves when advanced.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var errSetupFailed = errors.New("out of buffers")

// scriptedKernel completes every bulk call and advances the fake clock by the
// time the scripted rate implies. rates[i] applies to the i-th Setup; the last
// entry repeats.
type scriptedKernel struct {
	label    string
	minBatch int
	maxBatch int
	clock    *fakeClock

	rates   []float64
	rateFor func(batch int) float64

	failSetupAt   int
	failSetupFrom int
	computeErr    error
	stall         bool
	frozen        bool
	onSetup       func()

	setups    int
	teardowns int
	computes  int
	ready     bool
	buf       []uint64
	inputs    [][]byte
	salt      workload.Salt
	events    []string
}

func newScriptedKernel(clock *fakeClock, base int, rates ...float64) *scriptedKernel {
	return &scriptedKernel{
		label:    "scripted",
		minBatch: 1,
		maxBatch: base,
		clock:    clock,
		rates:    rates,
	}
}

func (k *scriptedKernel) Label() string { return k.label }
func (k *scriptedKernel) MinBatch() int { return k.minBatch }
func (k *scriptedKernel) MaxBatch() int { return k.maxBatch }

func (k *scriptedKernel) SetBatchBounds(minBatch, maxBatch int) {
	k.minBatch, k.maxBatch = minBatch, maxBatch
}

func (k *scriptedKernel) Setup() error {
	k.setups++
	k.events = append(k.events, "setup")
	if k.onSetup != nil {
		k.onSetup()
	}
	if k.failSetupAt == k.setups || (k.failSetupFrom > 0 && k.setups >= k.failSetupFrom) {
		return errSetupFailed
	}
	k.buf = make([]uint64, k.maxBatch)
	k.ready = true
	return nil
}

func (k *scriptedKernel) Teardown() {
	k.teardowns++
	k.events = append(k.events, "teardown")
	k.buf = nil
	k.ready = false
}

func (k *scriptedKernel) ClearInputs() {
	k.events = append(k.events, "clear")
	k.inputs = k.inputs[:0]
}

func (k *scriptedKernel) AddInput(item []byte, index int) {
	if index != len(k.inputs) {
		panic("inputs added out of order")
	}
	k.inputs = append(k.inputs, append([]byte(nil), item...))
}

func (k *scriptedKernel) BindContext(salt workload.Salt) {
	k.events = append(k.events, "bind")
	k.salt = salt
}

func (k *scriptedKernel) ComputeBulk(count int) (int, error) {
	if k.computeErr != nil {
		return 0, k.computeErr
	}
	if k.stall {
		return 0, nil
	}
	k.computes++
	if !k.frozen {
		rate := k.rate(count)
		k.clock.Advance(time.Duration(float64(count) / rate * float64(time.Second)))
	}
	return count, nil
}

func (k *scriptedKernel) rate(batch int) float64 {
	if k.rateFor != nil {
		return k.rateFor(batch)
	}
	i := k.setups - 1
	if i >= len(k.rates) {
		i = len(k.rates) - 1
	}
	return k.rates[i]
}

// recordingObserver keeps everything it is told.
type recordingObserver struct {
	trials   []Trial
	outcomes []Outcome
}

func (r *recordingObserver) ObserveTrial(_ string, t Trial) { r.trials = append(r.trials, t) }
func (r *recordingObserver) ObserveOutcome(o Outcome)       { r.outcomes = append(r.outcomes, o) }

func testDB() *workload.DB {
	return workload.New("test", []workload.Salt{
		{ID: "cheap", Value: []byte("aaaa"), Cost: 1},
		{ID: "dear", Value: []byte("bbbb"), Cost: 8},
	})
}
