package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

type EvidenceStore struct {
	db *pgxpool.Pool
}

func NewEvidenceStore(db *pgxpool.Pool) *EvidenceStore {
	return &EvidenceStore{db: db}
}

const evidenceColumns = `id, frame_id, source, kind, reliability, assignments, complete, expires_at, created_at`

func scanEvidence(row pgx.Row, e *domain.EvidenceRecord) error {
	return row.Scan(&e.ID, &e.FrameID, &e.Source, &e.Kind, &e.Reliability, &e.Assignments, &e.Complete, &e.ExpiresAt, &e.CreatedAt)
}

func (s *EvidenceStore) Create(ctx context.Context, e *domain.EvidenceRecord) error {
	var profile *pgvector.Vector
	if len(e.Profile) > 0 {
		v := pgvector.NewVector(padProfile(e.Profile))
		profile = &v
	}

	return s.db.QueryRow(ctx,
		`INSERT INTO evidence (frame_id, source, kind, reliability, assignments, complete, profile, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		e.FrameID, e.Source, e.Kind, e.Reliability, e.Assignments, e.Complete, profile, e.ExpiresAt,
	).Scan(&e.ID, &e.CreatedAt)
}

func (s *EvidenceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.EvidenceRecord, error) {
	e := &domain.EvidenceRecord{}
	err := scanEvidence(s.db.QueryRow(ctx,
		`SELECT `+evidenceColumns+` FROM evidence WHERE id = $1`,
		id,
	), e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *EvidenceStore) ListByFrame(ctx context.Context, frameID uuid.UUID) ([]domain.EvidenceRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+evidenceColumns+`
		 FROM evidence
		 WHERE frame_id = $1 AND (expires_at IS NULL OR expires_at > NOW())
		 ORDER BY created_at ASC, id ASC`,
		frameID,
	)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	var records []domain.EvidenceRecord
	for rows.Next() {
		var e domain.EvidenceRecord
		if err := scanEvidence(rows, &e); err != nil {
			return nil, fmt.Errorf("scan evidence row: %w", err)
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

func (s *EvidenceStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM evidence WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *EvidenceStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM evidence WHERE expires_at IS NOT NULL AND expires_at < NOW()`,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *EvidenceStore) FindSimilar(ctx context.Context, frameID uuid.UUID, exclude uuid.UUID, profile []float32, limit int) ([]domain.EvidenceWithScore, error) {
	if limit <= 0 {
		limit = 10
	}
	vec := pgvector.NewVector(padProfile(profile))

	rows, err := s.db.Query(ctx,
		`SELECT `+evidenceColumns+`, 1 - (profile <=> $3) AS score
		 FROM evidence
		 WHERE frame_id = $1 AND id <> $2 AND profile IS NOT NULL
		   AND (expires_at IS NULL OR expires_at > NOW())
		 ORDER BY profile <=> $3
		 LIMIT $4`,
		frameID, exclude, vec, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("similar evidence query: %w", err)
	}
	defer rows.Close()

	var results []domain.EvidenceWithScore
	for rows.Next() {
		var es domain.EvidenceWithScore
		var score float64
		err := rows.Scan(&es.ID, &es.FrameID, &es.Source, &es.Kind, &es.Reliability, &es.Assignments, &es.Complete, &es.ExpiresAt, &es.CreatedAt, &score)
		if err != nil {
			return nil, fmt.Errorf("scan similar row: %w", err)
		}
		es.Score = float32(score)
		results = append(results, es)
	}
	return results, rows.Err()
}

// padProfile widens p to ProfileDimensions so it fits the vector column.
func padProfile(p []float32) []float32 {
	if len(p) >= ProfileDimensions {
		return p[:ProfileDimensions]
	}
	out := make([]float32, ProfileDimensions)
	copy(out, p)
	return out
}
