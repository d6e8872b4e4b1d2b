package autotune

import (
	"errors"
	"math"
	"strconv"
	"time"

	apperrors "github.com/agbru/kerntune/internal/errors"
	"github.com/agbru/kerntune/internal/workload"
)

// errNoProgress is the cause reported when a bulk compute completes nothing.
var errNoProgress = errors.New("bulk compute completed no items")

// Measurement is the raw result of one timed trial.
type Measurement struct {
	Ops      int64
	Duration time.Duration
}

// Throughput returns operations per second and whether the measurement is
// usable. Zero or non-finite timings are unusable.
func (m Measurement) Throughput() (float64, bool) {
	if m.Duration <= 0 {
		return 0, false
	}
	tp := float64(m.Ops) / m.Duration.Seconds()
	if math.IsNaN(tp) || math.IsInf(tp, 0) {
		return 0, false
	}
	return tp, true
}

// Measure reconfigures k for batch items and times bulk computes against
// salt. Items are the synthetic keys "tune0000", "tune0001", ... The loop
// runs until at least minOps operations have completed and at least
// minDuration has elapsed; every call processes the full batch.
//
// A Setup failure is followed by Teardown so no partial buffers remain. A
// compute failure, or a compute that completes nothing, aborts the trial
// with the kernel still provisioned for batch.
func Measure(k Kernel, batch int, salt workload.Salt, minDuration time.Duration, minOps int64, clock Clock) (Measurement, error) {
	k.SetBatchBounds(k.MinBatch(), batch)
	k.Teardown()
	if err := k.Setup(); err != nil {
		k.Teardown()
		return Measurement{}, apperrors.KernelError{Kernel: k.Label(), Op: "setup", Cause: err}
	}

	k.ClearInputs()
	key := make([]byte, 0, 16)
	for i := 0; i < batch; i++ {
		key = appendTuneKey(key[:0], i)
		k.AddInput(key, i)
	}
	k.BindContext(salt)

	sw := startStopwatch(clock)
	var ops int64
	for {
		done, err := k.ComputeBulk(batch)
		if err != nil {
			return Measurement{Ops: ops, Duration: sw.Stop()},
				apperrors.KernelError{Kernel: k.Label(), Op: "compute", Cause: err}
		}
		if done <= 0 {
			return Measurement{Ops: ops, Duration: sw.Stop()},
				apperrors.KernelError{Kernel: k.Label(), Op: "compute", Cause: errNoProgress}
		}
		ops += int64(done)
		if ops >= minOps && sw.Elapsed() >= minDuration {
			break
		}
	}
	return Measurement{Ops: ops, Duration: sw.Stop()}, nil
}

// appendTuneKey appends "tune" and i zero-padded to at least four digits.
func appendTuneKey(dst []byte, i int) []byte {
	dst = append(dst, "tune"...)
	for p := 1000; p > 1 && i < p; p /= 10 {
		dst = append(dst, '0')
	}
	return strconv.AppendInt(dst, int64(i), 10)
}
