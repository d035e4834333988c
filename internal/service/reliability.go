package service

import (
	"math"

	"github.com/Harshitk-cp/dempster/internal/domain"
)

const (
	DefaultMaxReliability = 1.0
	DefaultMinReliability = 0.0
	// massTolerance absorbs rounding when callers split mass like 0.1+0.2+0.7.
	massTolerance = 1e-9
)

func clampReliability(r float64) float64 {
	if math.IsNaN(r) || r < DefaultMinReliability {
		return DefaultMinReliability
	}
	if r > DefaultMaxReliability {
		return DefaultMaxReliability
	}
	return r
}

// ResolveReliability returns the explicit reliability if given, otherwise
// the default for the evidence kind.
func ResolveReliability(kind domain.EvidenceKind, explicit *float64) float64 {
	if explicit != nil {
		return clampReliability(*explicit)
	}
	return kind.DefaultReliability()
}
