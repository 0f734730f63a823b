package profile

import (
	"context"
	"fmt"
	"slices"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// UnlockSkill adds a skill to the active list, kept in catalog order
func (s *service) UnlockSkill(ctx context.Context, skill string) ([]string, error) {
	if !s.catalog.HasSkill(skill) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSkillNotFound, skill)
	}

	var unlocked []string
	err := s.store.Update(ctx, func(st *domain.PlayerState) error {
		if st.IsUnlocked(skill) {
			unlocked = slices.Clone(st.UnlockedSkills)
			return errNoChange
		}
		if len(st.UnlockedSkills) >= domain.MaxUnlockedSkills {
			return fmt.Errorf("%w: at most %d skills can be active", domain.ErrTooManySkills, domain.MaxUnlockedSkills)
		}
		st.UnlockedSkills = s.catalogOrder(append(st.UnlockedSkills, skill))
		unlocked = slices.Clone(st.UnlockedSkills)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Skill unlocked", "skill", skill)
	return unlocked, nil
}

// LockSkill removes a skill from the active list. The trained skill cannot be locked.
func (s *service) LockSkill(ctx context.Context, skill string) ([]string, error) {
	if !s.catalog.HasSkill(skill) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSkillNotFound, skill)
	}

	var unlocked []string
	err := s.store.Update(ctx, func(st *domain.PlayerState) error {
		if !st.IsUnlocked(skill) {
			return fmt.Errorf("%w: %s", domain.ErrSkillNotUnlocked, skill)
		}
		if st.ActiveAction != nil && st.ActiveAction.SkillName == skill {
			return fmt.Errorf("%w: %s", domain.ErrSkillTraining, skill)
		}
		st.UnlockedSkills = slices.DeleteFunc(st.UnlockedSkills, func(id string) bool { return id == skill })
		unlocked = slices.Clone(st.UnlockedSkills)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Skill locked", "skill", skill)
	return unlocked, nil
}

func (s *service) catalogOrder(ids []string) []string {
	order := make(map[string]int, len(s.catalog.Skills))
	for i, id := range s.catalog.SkillIDs() {
		order[id] = i
	}
	slices.SortStableFunc(ids, func(a, b string) int { return order[a] - order[b] })
	return ids
}
