package dst

import "errors"

var (
	// ErrCapacityExceeded is returned when registering would take a universe past MaxHypotheses.
	ErrCapacityExceeded = errors.New("dst: hypothesis capacity exceeded")
	// ErrOutOfRange is returned for a position that has no registered hypothesis.
	ErrOutOfRange = errors.New("dst: position out of range")
	// ErrUniverseMismatch is returned when combining evidence bound to different universes.
	ErrUniverseMismatch = errors.New("dst: evidence belongs to a different universe")
	// ErrTotalConflict is returned when two bodies of evidence contradict each other completely.
	ErrTotalConflict = errors.New("dst: total conflict between evidence")
	// ErrEmptyUniverse is returned by decision queries when no hypotheses are registered.
	ErrEmptyUniverse = errors.New("dst: universe has no hypotheses")
	// ErrInvalidMass is returned for a mass or reliability outside [0, 1].
	ErrInvalidMass = errors.New("dst: invalid mass")
)
