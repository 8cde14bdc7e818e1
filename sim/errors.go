package sim

import "errors"

// Error kinds surfaced by the simulation and calibration pipeline.
// Callers discriminate with errors.Is; every failure is deterministic
// given the same inputs, so no error here is ever transient.
var (
	// ErrInvalidParameter reports a caller contract violation: a probability
	// outside [0,1], a non-positive population or horizon, inverted prior
	// bounds, or colliding patient identity ranges.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptySample reports a summary statistic requested on a cohort in
	// which no patient died within the horizon.
	ErrEmptySample = errors.New("empty sample")

	// ErrDegenerateLikelihood reports that every importance weight is zero:
	// no prior sample is compatible with the observed outcome.
	ErrDegenerateLikelihood = errors.New("degenerate likelihood")

	// ErrNotReady reports a query issued before the pipeline stage that
	// produces its result has completed.
	ErrNotReady = errors.New("not ready")

	// ErrIndexOutOfRange reports an ensemble query with an invalid cohort
	// index, or mismatched parallel-sequence lengths at construction.
	ErrIndexOutOfRange = errors.New("index out of range")
)
