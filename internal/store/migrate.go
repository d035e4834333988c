package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileDimensions is the width of the stored plausibility profile, one
// slot per possible hypothesis position.
const ProfileDimensions = 64

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS frames (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		hypotheses  TEXT[] NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS evidence (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		frame_id    UUID NOT NULL REFERENCES frames(id) ON DELETE CASCADE,
		source      TEXT NOT NULL,
		kind        TEXT NOT NULL,
		reliability DOUBLE PRECISION NOT NULL DEFAULT 1,
		assignments JSONB NOT NULL,
		complete    BOOLEAN NOT NULL DEFAULT TRUE,
		profile     vector(%d),
		expires_at  TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, ProfileDimensions),
	`CREATE INDEX IF NOT EXISTS evidence_frame_id_idx ON evidence (frame_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS evidence_expires_at_idx ON evidence (expires_at) WHERE expires_at IS NOT NULL`,
}

// Migrate creates the tables the Postgres stores need. Every statement is idempotent.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
