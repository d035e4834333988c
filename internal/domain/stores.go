package domain

import (
	"context"

	"github.com/google/uuid"
)

type FrameStore interface {
	Create(ctx context.Context, f *Frame) error
	GetByID(ctx context.Context, id uuid.UUID) (*Frame, error)
	List(ctx context.Context, limit int) ([]Frame, error)
	// UpdateHypotheses replaces the hypothesis list if the frame still has expectedCount hypotheses.
	UpdateHypotheses(ctx context.Context, id uuid.UUID, expectedCount int, hypotheses []string) error
}

type EvidenceStore interface {
	Create(ctx context.Context, e *EvidenceRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*EvidenceRecord, error)
	ListByFrame(ctx context.Context, frameID uuid.UUID) ([]EvidenceRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
	// FindSimilar ranks other live evidence of the frame by cosine similarity of profiles.
	FindSimilar(ctx context.Context, frameID uuid.UUID, exclude uuid.UUID, profile []float32, limit int) ([]EvidenceWithScore, error)
}
