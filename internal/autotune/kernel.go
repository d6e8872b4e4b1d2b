//go:generate mockgen -destination=mocks/mock_kernel.go -package=mocks github.com/agbru/kerntune/internal/autotune Kernel

package autotune

import (
	"time"

	"github.com/agbru/kerntune/internal/workload"
)

// Kernel is the capability contract a computation kernel offers the tuner.
// The Tuner keys its state by kernel identity, so implementations must be
// comparable; pointer receivers are the norm.
type Kernel interface {
	// Label names the kernel in diagnostics.
	Label() string
	// MinBatch returns the configured minimum number of work items per call.
	MinBatch() int
	// MaxBatch returns the configured maximum number of work items per call.
	MaxBatch() int
	// SetBatchBounds sets the minimum and maximum work items per call.
	SetBatchBounds(minBatch, maxBatch int)
	// Setup allocates working buffers sized to MaxBatch.
	Setup() error
	// Teardown releases working buffers. Safe to call when nothing is allocated.
	Teardown()
	// ClearInputs forgets all loaded inputs.
	ClearInputs()
	// AddInput loads item into slot index. The kernel copies item.
	AddInput(item []byte, index int)
	// BindContext binds the salt used by subsequent computes.
	BindContext(salt workload.Salt)
	// ComputeBulk processes up to count loaded items and reports how many
	// were completed.
	ComputeBulk(count int) (int, error)
}

// ThreadCounter reports the number of parallel worker threads available.
type ThreadCounter interface {
	ThreadCount() int
}

// Clock is the time source behind the harness stopwatch. Readings must be
// monotonic; time.Now satisfies this through its monotonic component.
type Clock interface {
	Now() time.Time
}

// Observer receives every trial as it completes and the final outcome of
// each search. Observers run on the tuning goroutine and must not block.
type Observer interface {
	ObserveTrial(kernel string, t Trial)
	ObserveOutcome(o Outcome)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }
