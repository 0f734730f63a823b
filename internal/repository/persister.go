package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
	"github.com/osse101/IdleTracker_Go/internal/logger"
	"github.com/osse101/IdleTracker_Go/internal/state"
)

// Persister writes committed state snapshots to a Saves backend
type Persister struct {
	saves     Saves
	profileID string
}

// NewPersister binds a Saves backend to one profile
func NewPersister(saves Saves, profileID string) *Persister {
	return &Persister{saves: saves, profileID: profileID}
}

// Persist implements state.Persister
func (p *Persister) Persist(ctx context.Context, st *domain.PlayerState) error {
	data, err := state.Encode(st)
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}
	if err := p.saves.Save(ctx, p.profileID, data); err != nil {
		return fmt.Errorf("failed to write save for %s: %w", p.profileID, err)
	}
	return nil
}

// LoadState reads and migrates the profile's save. A missing save yields the
// default state. An unreadable save also yields the default state, together
// with the decode error so the caller can report it.
func LoadState(ctx context.Context, saves Saves, profileID string, cat *catalog.Catalog, curve *leveling.Curve) (*domain.PlayerState, error) {
	log := logger.FromContext(ctx)

	data, err := saves.Load(ctx, profileID)
	if errors.Is(err, domain.ErrSaveNotFound) {
		log.Info("No save found, starting fresh", "profile", profileID)
		return state.NewDefault(cat), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save for %s: %w", profileID, err)
	}

	st, err := state.Decode(data, cat, curve)
	if err != nil {
		log.Error("Save rejected, starting fresh", "profile", profileID, "error", err)
		return state.NewDefault(cat), err
	}

	log.Info("Save loaded", "profile", profileID, "schema_version", st.SchemaVersion)
	return st, nil
}
