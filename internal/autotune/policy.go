package autotune

import (
	"time"

	apperrors "github.com/agbru/kerntune/internal/errors"
)

// Default search policy.
const (
	// DefaultSampleTime is the minimum measurement window per trial.
	DefaultSampleTime = 10 * time.Millisecond

	// DefaultRequiredGain is the factor by which a trial must beat the best
	// throughput so far to be accepted.
	DefaultRequiredGain = 1.05

	// DefaultMaxTrialTime stops the search once a single trial runs longer.
	DefaultMaxTrialTime = 100 * time.Millisecond

	// DefaultMaxNoProgress is the number of consecutive non-winning probes
	// tolerated; the search stops on the next one.
	DefaultMaxNoProgress = 3
)

// maxBatchSize bounds the probed batch so scale doubling cannot overflow int
// for kernels whose trials never slow down.
const maxBatchSize = 1 << 30

// Policy holds the knobs of the scale search.
type Policy struct {
	SampleTime    time.Duration
	RequiredGain  float64
	MaxTrialTime  time.Duration
	MaxNoProgress int
}

// DefaultPolicy returns the standard search policy.
func DefaultPolicy() Policy {
	return Policy{
		SampleTime:    DefaultSampleTime,
		RequiredGain:  DefaultRequiredGain,
		MaxTrialTime:  DefaultMaxTrialTime,
		MaxNoProgress: DefaultMaxNoProgress,
	}
}

// Validate reports whether the policy is usable for real measurements.
func (p Policy) Validate() error {
	switch {
	case p.SampleTime <= 0:
		return apperrors.ValidationError{Field: "sample-time", Message: "must be positive"}
	case p.MaxTrialTime < p.SampleTime:
		return apperrors.ValidationError{Field: "max-trial-time", Message: "must not be shorter than sample-time"}
	case p.RequiredGain < 1:
		return apperrors.ValidationError{Field: "gain", Message: "must be at least 1.0"}
	case p.MaxNoProgress < 0:
		return apperrors.ValidationError{Field: "max-no-progress", Message: "must not be negative"}
	}
	return nil
}
