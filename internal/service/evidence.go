package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Harshitk-cp/dempster/dst"
	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/Harshitk-cp/dempster/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSimilarLimit = 5

type EvidenceService struct {
	store  domain.EvidenceStore
	frames domain.FrameStore
	logger *zap.Logger
	now    func() time.Time
}

func NewEvidenceService(s domain.EvidenceStore, frames domain.FrameStore, logger *zap.Logger) *EvidenceService {
	return &EvidenceService{store: s, frames: frames, logger: logger, now: time.Now}
}

// BuildEvidence turns a stored record into evidence over u: assignments are
// added in order, the remainder goes to the whole frame if the record is
// complete, and the result is discounted by the record's reliability.
// Hypotheses missing from u are rejected rather than dropped.
func BuildEvidence(u *dst.Universe[string], rec *domain.EvidenceRecord) (*dst.Evidence[string], error) {
	e := u.NewEvidence()
	for i, a := range rec.Assignments {
		if len(a.Hypotheses) == 0 {
			return nil, fmt.Errorf("%w: assignment %d has no hypotheses", ErrInvalidEvidence, i)
		}
		for _, h := range a.Hypotheses {
			if _, ok := u.Position(h); !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownHypothesis, h)
			}
		}
		if err := e.AddFocalSet(a.Mass, a.Hypotheses); err != nil {
			return nil, fmt.Errorf("assignment %d: %w", i, err)
		}
	}

	if total := e.TotalMass(); total > 1+massTolerance {
		return nil, fmt.Errorf("%w: masses sum to %.6f", ErrInvalidEvidence, total)
	}
	if rec.Complete {
		e.AddOmegaSet()
	}
	if rec.Reliability >= 1 {
		return e, nil
	}
	return e.Discount(rec.Reliability)
}

// Profile is the singleton plausibility of every hypothesis, by position.
func Profile(e *dst.Evidence[string]) []float32 {
	scores := e.Scores()
	out := make([]float32, len(scores))
	for i, s := range scores {
		out[i] = float32(s.Plausibility)
	}
	return out
}

func (s *EvidenceService) frame(ctx context.Context, id uuid.UUID) (*domain.Frame, error) {
	f, err := s.frames.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFrameNotFound
		}
		return nil, err
	}
	return f, nil
}

// Create validates the record against its frame and stores it.
func (s *EvidenceService) Create(ctx context.Context, rec *domain.EvidenceRecord) error {
	f, err := s.frame(ctx, rec.FrameID)
	if err != nil {
		return err
	}
	if len(rec.Assignments) == 0 && !rec.Complete {
		return fmt.Errorf("%w: no assignments", ErrInvalidEvidence)
	}
	if rec.Kind == "" {
		rec.Kind = domain.EvidenceExplicit
	}
	rec.Reliability = clampReliability(rec.Reliability)
	if rec.ExpiresAt != nil && !rec.ExpiresAt.After(s.now()) {
		return fmt.Errorf("%w: expires_at is in the past", ErrInvalidEvidence)
	}

	u, err := UniverseOf(f)
	if err != nil {
		return err
	}
	e, err := BuildEvidence(u, rec)
	if err != nil {
		return err
	}
	rec.Profile = Profile(e)

	if err := s.store.Create(ctx, rec); err != nil {
		return err
	}

	s.logger.Debug("evidence stored",
		zap.String("evidence_id", rec.ID.String()),
		zap.String("frame_id", rec.FrameID.String()),
		zap.String("source", rec.Source),
		zap.Float64("reliability", rec.Reliability),
		zap.Int("assignments", len(rec.Assignments)))
	return nil
}

func (s *EvidenceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.EvidenceRecord, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEvidenceNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *EvidenceService) ListByFrame(ctx context.Context, frameID uuid.UUID) ([]domain.EvidenceRecord, error) {
	if _, err := s.frame(ctx, frameID); err != nil {
		return nil, err
	}
	return s.store.ListByFrame(ctx, frameID)
}

func (s *EvidenceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEvidenceNotFound
		}
		return err
	}
	return nil
}

// Similar returns other evidence of the same frame whose plausibility
// profile is closest to the given record's.
func (s *EvidenceService) Similar(ctx context.Context, id uuid.UUID, limit int) ([]domain.EvidenceWithScore, error) {
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f, err := s.frame(ctx, rec.FrameID)
	if err != nil {
		return nil, err
	}
	u, err := UniverseOf(f)
	if err != nil {
		return nil, err
	}
	e, err := BuildEvidence(u, rec)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	return s.store.FindSimilar(ctx, rec.FrameID, rec.ID, Profile(e), limit)
}
