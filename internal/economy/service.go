// Package economy implements the title shop.
package economy

import (
	"context"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/logger"
	"github.com/osse101/IdleTracker_Go/internal/state"
)

// Accruer flushes pending progress so balances are current before a purchase
type Accruer interface {
	Accrue(ctx context.Context) (*domain.RewardReport, error)
}

// TitleListing is a shop entry annotated with the player's standing
type TitleListing struct {
	domain.TitleDefinition
	Owned          bool `json:"owned"`
	Equipped       bool `json:"equipped"`
	Affordable     bool `json:"affordable"`
	RequirementMet bool `json:"requirement_met"`
}

// Service defines the shop operations
type Service interface {
	ListTitles(ctx context.Context) ([]TitleListing, error)
	BuyTitle(ctx context.Context, titleID string) (*domain.TitleDefinition, error)
	EquipTitle(ctx context.Context, titleID string) (*domain.TitleDefinition, error)
	Balance(ctx context.Context) (int64, error)
}

type service struct {
	store   *state.Store
	catalog *catalog.Catalog
	accruer Accruer
	bus     event.Bus
	now     func() time.Time
}

// NewService creates the shop. accruer and bus may be nil.
func NewService(store *state.Store, cat *catalog.Catalog, accruer Accruer, bus event.Bus) Service {
	return &service{
		store:   store,
		catalog: cat,
		accruer: accruer,
		bus:     bus,
		now:     time.Now,
	}
}

func (s *service) flush(ctx context.Context) error {
	if s.accruer == nil {
		return nil
	}
	if _, err := s.accruer.Accrue(ctx); err != nil {
		return err
	}
	return nil
}

// Balance returns the current coin balance after accrual
func (s *service) Balance(ctx context.Context) (int64, error) {
	if err := s.flush(ctx); err != nil {
		return 0, err
	}
	var coins int64
	s.store.View(func(st *domain.PlayerState) { coins = st.Coins })
	return coins, nil
}

// ListTitles returns every catalog title in catalog order
func (s *service) ListTitles(ctx context.Context) ([]TitleListing, error) {
	if err := s.flush(ctx); err != nil {
		return nil, err
	}

	listings := make([]TitleListing, 0, len(s.catalog.Titles))
	s.store.View(func(st *domain.PlayerState) {
		for _, t := range s.catalog.Titles {
			owned := t.IsFree() || st.OwnsTitle(t.ID)
			listings = append(listings, TitleListing{
				TitleDefinition: t,
				Owned:           owned,
				Equipped:        st.EquippedTitle == t.ID,
				Affordable:      st.Coins >= t.Cost,
				RequirementMet:  requirementMet(st, &t),
			})
		}
	})
	return listings, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "type", evt.Type, "error", err)
	}
}

func requirementMet(st *domain.PlayerState, t *domain.TitleDefinition) bool {
	return requiredGap(st, t) == 0
}

// requiredGap returns the player's level in the required skill when it falls short, 0 otherwise
func requiredGap(st *domain.PlayerState, t *domain.TitleDefinition) int {
	req := t.Requirement
	if req == nil {
		return 0
	}
	level := 1
	if p := st.Skills[req.Skill]; p != nil {
		level = p.Level
	}
	if level >= req.Level {
		return 0
	}
	return level
}
