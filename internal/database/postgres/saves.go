// Package postgres stores save documents in PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/IdleTracker_Go/internal/database"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/repository"
)

const (
	queryLoadSave = `SELECT document FROM saves WHERE profile_id = $1`

	queryUpsertSave = `
INSERT INTO saves (profile_id, schema_version, document)
VALUES ($1, $2, $3)
ON CONFLICT (profile_id) DO UPDATE SET
    schema_version = EXCLUDED.schema_version,
    document = EXCLUDED.document,
    updated_at = NOW()`

	queryDeleteSave = `DELETE FROM saves WHERE profile_id = $1`
)

// SaveRepository implements repository.Saves on PostgreSQL
type SaveRepository struct {
	pool *pgxpool.Pool
}

var _ repository.Saves = (*SaveRepository)(nil)

// NewSaveRepository creates a new SaveRepository
func NewSaveRepository(pool *pgxpool.Pool) *SaveRepository {
	return &SaveRepository{pool: pool}
}

// Load returns the stored document
func (r *SaveRepository) Load(ctx context.Context, profileID string) ([]byte, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, queryLoadSave, profileID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load save: %v", domain.ErrDatabaseError, err)
	}
	return doc, nil
}

// Save upserts the document
func (r *SaveRepository) Save(ctx context.Context, profileID string, data []byte) error {
	if _, err := r.pool.Exec(ctx, queryUpsertSave, profileID, database.SchemaVersionOf(data), data); err != nil {
		return fmt.Errorf("%w: failed to write save: %v", domain.ErrDatabaseError, err)
	}
	return nil
}

// Delete removes the profile's save, if any
func (r *SaveRepository) Delete(ctx context.Context, profileID string) error {
	if _, err := r.pool.Exec(ctx, queryDeleteSave, profileID); err != nil {
		return fmt.Errorf("%w: failed to delete save: %v", domain.ErrDatabaseError, err)
	}
	return nil
}

// Ping checks the pool
func (r *SaveRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
