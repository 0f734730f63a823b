// Package sqlite stores save documents in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/IdleTracker_Go/internal/database"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/repository"
)

const (
	queryLoadSave = `SELECT document FROM saves WHERE profile_id = ?`

	queryUpsertSave = `
INSERT INTO saves (profile_id, schema_version, document)
VALUES (?, ?, ?)
ON CONFLICT (profile_id) DO UPDATE SET
    schema_version = excluded.schema_version,
    document = excluded.document,
    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`

	queryDeleteSave = `DELETE FROM saves WHERE profile_id = ?`
)

// SaveRepository implements repository.Saves on SQLite
type SaveRepository struct {
	db *sql.DB
}

var _ repository.Saves = (*SaveRepository)(nil)

// NewSaveRepository creates a SaveRepository. The schema must already be migrated.
func NewSaveRepository(db *sql.DB) *SaveRepository {
	return &SaveRepository{db: db}
}

// Open opens the file at path, applies migrations and returns the repository
// together with the underlying handle for closing.
func Open(ctx context.Context, path string) (*SaveRepository, *sql.DB, error) {
	db, err := database.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, database.DriverSQLite, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return NewSaveRepository(db), db, nil
}

// Load returns the stored document
func (r *SaveRepository) Load(ctx context.Context, profileID string) ([]byte, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, queryLoadSave, profileID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load save: %v", domain.ErrDatabaseError, err)
	}
	return []byte(doc), nil
}

// Save upserts the document
func (r *SaveRepository) Save(ctx context.Context, profileID string, data []byte) error {
	if _, err := r.db.ExecContext(ctx, queryUpsertSave, profileID, database.SchemaVersionOf(data), string(data)); err != nil {
		return fmt.Errorf("%w: failed to write save: %v", domain.ErrDatabaseError, err)
	}
	return nil
}

// Delete removes the profile's save, if any
func (r *SaveRepository) Delete(ctx context.Context, profileID string) error {
	if _, err := r.db.ExecContext(ctx, queryDeleteSave, profileID); err != nil {
		return fmt.Errorf("%w: failed to delete save: %v", domain.ErrDatabaseError, err)
	}
	return nil
}

// Ping checks the database handle
func (r *SaveRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
