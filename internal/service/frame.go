package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/dempster/dst"
	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/Harshitk-cp/dempster/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FrameService struct {
	store  domain.FrameStore
	logger *zap.Logger
}

func NewFrameService(s domain.FrameStore, logger *zap.Logger) *FrameService {
	return &FrameService{store: s, logger: logger}
}

// UniverseOf registers the frame's hypotheses, in stored order, into a new universe.
func UniverseOf(f *domain.Frame) (*dst.Universe[string], error) {
	u := dst.NewUniverse[string]()
	if err := u.Register(f.Hypotheses); err != nil {
		return nil, err
	}
	return u, nil
}

// Create stores a new frame. Duplicate hypotheses are dropped, keeping the
// first occurrence.
func (s *FrameService) Create(ctx context.Context, f *domain.Frame) error {
	u, err := UniverseOf(f)
	if err != nil {
		return err
	}
	f.Hypotheses = u.Hypotheses()

	if err := s.store.Create(ctx, f); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrFrameConflict
		}
		return err
	}

	s.logger.Info("frame created",
		zap.String("frame_id", f.ID.String()),
		zap.String("name", f.Name),
		zap.Int("hypotheses", len(f.Hypotheses)))
	return nil
}

func (s *FrameService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Frame, error) {
	f, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFrameNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FrameService) List(ctx context.Context, limit int) ([]domain.Frame, error) {
	return s.store.List(ctx, limit)
}

// AddHypotheses appends hypotheses the frame does not have yet. Existing
// hypotheses keep their positions.
func (s *FrameService) AddHypotheses(ctx context.Context, id uuid.UUID, hypotheses []string) (*domain.Frame, error) {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u, err := UniverseOf(f)
	if err != nil {
		return nil, err
	}
	before := u.Len()
	if err := u.Register(hypotheses); err != nil {
		return nil, fmt.Errorf("frame %s: %w", f.Name, err)
	}
	if u.Len() == before {
		return f, nil
	}

	if err := s.store.UpdateHypotheses(ctx, id, before, u.Hypotheses()); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return nil, ErrFrameChanged
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrFrameNotFound
		}
		return nil, err
	}

	s.logger.Info("hypotheses registered",
		zap.String("frame_id", id.String()),
		zap.Int("added", u.Len()-before),
		zap.Int("total", u.Len()))

	return s.GetByID(ctx, id)
}
