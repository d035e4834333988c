package store

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FrameStore struct {
	db *pgxpool.Pool
}

func NewFrameStore(db *pgxpool.Pool) *FrameStore {
	return &FrameStore{db: db}
}

func (s *FrameStore) Create(ctx context.Context, f *domain.Frame) error {
	if f.Hypotheses == nil {
		f.Hypotheses = []string{}
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO frames (name, description, hypotheses)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		f.Name, f.Description, f.Hypotheses,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *FrameStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Frame, error) {
	f := &domain.Frame{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, hypotheses, created_at, updated_at
		 FROM frames WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.Name, &f.Description, &f.Hypotheses, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FrameStore) List(ctx context.Context, limit int) ([]domain.Frame, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, hypotheses, created_at, updated_at
		 FROM frames ORDER BY created_at ASC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []domain.Frame
	for rows.Next() {
		var f domain.Frame
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Hypotheses, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

func (s *FrameStore) UpdateHypotheses(ctx context.Context, id uuid.UUID, expectedCount int, hypotheses []string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE frames SET hypotheses = $3, updated_at = NOW()
		 WHERE id = $1 AND cardinality(hypotheses) = $2`,
		id, expectedCount, hypotheses,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}
