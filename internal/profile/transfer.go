package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/logger"
	"github.com/osse101/IdleTracker_Go/internal/state"
)

var errNoChange = state.ErrNoChange

// Export returns the current save document after flushing pending progress
func (s *service) Export(ctx context.Context) ([]byte, error) {
	if err := s.flush(ctx); err != nil {
		return nil, fmt.Errorf("failed to flush accrual: %w", err)
	}
	data, err := state.EncodeIndent(s.store.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to encode save: %w", err)
	}
	return data, nil
}

// Import validates, migrates and installs a save document. A rejected
// document leaves the current state untouched.
func (s *service) Import(ctx context.Context, data []byte) (*domain.PlayerState, error) {
	log := logger.FromContext(ctx)

	if err := s.schemas.ValidateSave(data); err != nil {
		log.Warn("Rejected import", "error", err)
		return nil, err
	}

	st, err := state.Decode(data, s.catalog, s.curve)
	if err != nil {
		log.Warn("Rejected import", "error", err)
		if errors.Is(err, domain.ErrInvalidSave) || errors.Is(err, domain.ErrUnknownSchema) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSave, err)
	}

	s.store.Replace(ctx, st)
	log.Info("Save imported", "coins", st.Coins, "unlocked", len(st.UnlockedSkills))
	s.publish(ctx, event.NewSimpleEvent(event.StateImported, map[string]interface{}{"reset": false}))
	return st.Clone(), nil
}

// Reset replaces the save with a fresh default profile
func (s *service) Reset(ctx context.Context) error {
	s.store.Replace(ctx, state.NewDefault(s.catalog))
	logger.FromContext(ctx).Info("Save reset to defaults")
	s.publish(ctx, event.NewSimpleEvent(event.StateImported, map[string]interface{}{"reset": true}))
	return nil
}
