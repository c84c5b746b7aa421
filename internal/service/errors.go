package service

import "errors"

// Cross-cutting error taxonomy. Gateway failures are not wrapped; they
// propagate verbatim so callers see exactly what the store reported.
var (
	// ErrValidation marks missing or non-numeric required input. It is
	// returned before any gateway call is made.
	ErrValidation = errors.New("validation failed")

	// ErrResolution marks an exhausted template-promotion chain: no valid
	// template exercise id could be determined or created for logging.
	ErrResolution = errors.New("unable to resolve template exercise")

	// ErrOverlap marks a run schedule that would overlap another active run.
	// Nothing is persisted when it is returned.
	ErrOverlap = errors.New("schedule overlaps an active run")
)
