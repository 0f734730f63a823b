// Package profile manages player preferences, unlocked skills, skill groups
// and whole-save operations.
package profile

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
	"github.com/osse101/IdleTracker_Go/internal/logger"
	"github.com/osse101/IdleTracker_Go/internal/state"
	"github.com/osse101/IdleTracker_Go/internal/validation"
)

// Accruer flushes pending progress before state-wide changes
type Accruer interface {
	Accrue(ctx context.Context) (*domain.RewardReport, error)
}

// Service defines profile operations
type Service interface {
	// Settings
	Settings(ctx context.Context) domain.Settings
	UpdateSettings(ctx context.Context, patch SettingsPatch) (*domain.Settings, error)

	// Unlocked skills
	UnlockSkill(ctx context.Context, skill string) ([]string, error)
	LockSkill(ctx context.Context, skill string) ([]string, error)

	// Skill groups
	CreateGroup(ctx context.Context, name string) error
	DeleteGroup(ctx context.Context, name string) error
	AssignSkill(ctx context.Context, skill, group string) error
	ToggleGroupCollapsed(ctx context.Context, name string) (bool, error)

	// Whole save
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) (*domain.PlayerState, error)
	Reset(ctx context.Context) error
}

type service struct {
	store    *state.Store
	catalog  *catalog.Catalog
	curve    *leveling.Curve
	accruer  Accruer
	bus      event.Bus
	schemas  validation.SchemaValidator
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates the profile service. accruer and bus may be nil.
func NewService(store *state.Store, cat *catalog.Catalog, curve *leveling.Curve, accruer Accruer, bus event.Bus, schemas validation.SchemaValidator) Service {
	if curve == nil {
		curve = leveling.Default()
	}
	if schemas == nil {
		schemas = validation.MustSchemaValidator()
	}
	return &service{
		store:    store,
		catalog:  cat,
		curve:    curve,
		accruer:  accruer,
		bus:      bus,
		schemas:  schemas,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *service) flush(ctx context.Context) error {
	if s.accruer == nil {
		return nil
	}
	_, err := s.accruer.Accrue(ctx)
	return err
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "type", evt.Type, "error", err)
	}
}
