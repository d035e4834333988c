package domain

import (
	"time"

	"github.com/google/uuid"
)

type EvidenceKind string

const (
	EvidenceExplicit   EvidenceKind = "explicit_statement"
	EvidenceImplicit   EvidenceKind = "implicit_inference"
	EvidenceBehavioral EvidenceKind = "behavioral_signal"
	EvidenceSensor     EvidenceKind = "sensor_reading"
)

// ReliabilityRange is the plausible reliability band of a source of this kind.
func (k EvidenceKind) ReliabilityRange() (min, max float64) {
	switch k {
	case EvidenceSensor:
		return 0.95, 1.0
	case EvidenceExplicit:
		return 0.85, 0.95
	case EvidenceImplicit:
		return 0.50, 0.75
	case EvidenceBehavioral:
		return 0.30, 0.55
	default:
		return 0.40, 0.60
	}
}

// DefaultReliability is the midpoint of the kind's reliability range.
func (k EvidenceKind) DefaultReliability() float64 {
	min, max := k.ReliabilityRange()
	return (min + max) / 2
}

func ValidEvidenceKind(k string) bool {
	switch EvidenceKind(k) {
	case EvidenceExplicit, EvidenceImplicit, EvidenceBehavioral, EvidenceSensor:
		return true
	}
	return false
}

// Assignment is mass committed to exactly one set of hypotheses.
type Assignment struct {
	Mass       float64  `json:"mass"`
	Hypotheses []string `json:"hypotheses"`
}

// EvidenceRecord is one stored body of evidence about a frame.
// When Complete is set, the mass the assignments leave over is attributed
// to the whole frame at fusion time.
type EvidenceRecord struct {
	ID          uuid.UUID    `json:"id"`
	FrameID     uuid.UUID    `json:"frame_id"`
	Source      string       `json:"source"`
	Kind        EvidenceKind `json:"kind"`
	Reliability float64      `json:"reliability"`
	Assignments []Assignment `json:"assignments"`
	Complete    bool         `json:"complete"`
	Profile     []float32    `json:"-"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type EvidenceWithScore struct {
	EvidenceRecord
	Score float32 `json:"score"`
}
