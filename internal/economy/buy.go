package economy

import (
	"context"
	"fmt"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// BuyTitle debits the title cost and records ownership. The balance, ownership
// and requirement checks run in the same store transaction as the debit.
func (s *service) BuyTitle(ctx context.Context, titleID string) (*domain.TitleDefinition, error) {
	title, err := s.catalog.Title(titleID)
	if err != nil {
		return nil, err
	}
	if err := s.flush(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgFlushFailedFmt, err)
	}

	err = s.store.Update(ctx, func(st *domain.PlayerState) error {
		if title.IsFree() || st.OwnsTitle(title.ID) {
			return fmt.Errorf("%w: %s", domain.ErrTitleAlreadyOwned, title.ID)
		}
		if level := requiredGap(st, title); level > 0 {
			return fmt.Errorf(ErrMsgTitleRequirementFmt, domain.ErrRequirementNotMet, title.ID, title.Requirement.Skill, title.Requirement.Level, level)
		}
		if st.Coins < title.Cost {
			return fmt.Errorf(ErrMsgInsufficientFundsFmt, domain.ErrInsufficientFunds, title.ID, title.Cost, st.Coins)
		}

		st.Coins -= title.Cost
		st.PurchasedTitles = append(st.PurchasedTitles, title.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgTitlePurchased, "title", title.ID, "cost", title.Cost)
	s.publish(ctx, event.NewTitleEvent(event.TitlePurchased, *title, s.now()))
	return title, nil
}

// EquipTitle sets the displayed title. Free titles are always available.
func (s *service) EquipTitle(ctx context.Context, titleID string) (*domain.TitleDefinition, error) {
	title, err := s.catalog.Title(titleID)
	if err != nil {
		return nil, err
	}

	err = s.store.Update(ctx, func(st *domain.PlayerState) error {
		if !title.IsFree() && !st.OwnsTitle(title.ID) {
			return fmt.Errorf("%w: %s", domain.ErrTitleNotOwned, title.ID)
		}
		st.EquippedTitle = title.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgTitleEquipped, "title", title.ID)
	s.publish(ctx, event.NewTitleEvent(event.TitleEquipped, *title, s.now()))
	return title, nil
}
