package profile

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/osse101/IdleTracker_Go/internal/domain"
)

// MaxGroupNameLength bounds user-created group names
const MaxGroupNameLength = 32

// GeneralNavGroup is the collapsible non-skill section of the sidebar
const GeneralNavGroup = "general"

func normalizeGroupName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxGroupNameLength || strings.EqualFold(name, domain.UngroupedLabel) {
		return "", fmt.Errorf("%w: group name must be 1-%d characters and not %q", domain.ErrInvalidInput, MaxGroupNameLength, domain.UngroupedLabel)
	}
	return name, nil
}

// CreateGroup adds an empty skill group
func (s *service) CreateGroup(ctx context.Context, name string) error {
	name, err := normalizeGroupName(name)
	if err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *domain.PlayerState) error {
		if _, ok := st.SkillGroups[name]; ok {
			return fmt.Errorf("%w: %s", domain.ErrGroupExists, name)
		}
		if st.SkillGroups == nil {
			st.SkillGroups = make(map[string][]string)
		}
		st.SkillGroups[name] = []string{}
		return nil
	})
}

// DeleteGroup removes a group. Its skills become ungrouped.
func (s *service) DeleteGroup(ctx context.Context, name string) error {
	return s.store.Update(ctx, func(st *domain.PlayerState) error {
		if _, ok := st.SkillGroups[name]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrGroupNotFound, name)
		}
		delete(st.SkillGroups, name)
		st.CollapsedSkillGroups = slices.DeleteFunc(st.CollapsedSkillGroups, func(g string) bool { return g == name })
		return nil
	})
}

// AssignSkill moves a skill into group. An empty group or the ungrouped label
// removes the skill from every group.
func (s *service) AssignSkill(ctx context.Context, skill, group string) error {
	if !s.catalog.HasSkill(skill) {
		return fmt.Errorf("%w: %s", domain.ErrSkillNotFound, skill)
	}
	ungroup := group == "" || group == domain.UngroupedLabel

	return s.store.Update(ctx, func(st *domain.PlayerState) error {
		if !ungroup {
			if _, ok := st.SkillGroups[group]; !ok {
				return fmt.Errorf("%w: %s", domain.ErrGroupNotFound, group)
			}
		}
		for name, members := range st.SkillGroups {
			st.SkillGroups[name] = slices.DeleteFunc(members, func(id string) bool { return id == skill })
		}
		if !ungroup {
			st.SkillGroups[group] = append(st.SkillGroups[group], skill)
		}
		return nil
	})
}

// ToggleGroupCollapsed flips the sidebar collapse state of a group and
// returns the new state
func (s *service) ToggleGroupCollapsed(ctx context.Context, name string) (bool, error) {
	var collapsed bool
	err := s.store.Update(ctx, func(st *domain.PlayerState) error {
		_, exists := st.SkillGroups[name]
		if !exists && name != domain.UngroupedLabel && name != GeneralNavGroup {
			return fmt.Errorf("%w: %s", domain.ErrGroupNotFound, name)
		}
		if slices.Contains(st.CollapsedSkillGroups, name) {
			st.CollapsedSkillGroups = slices.DeleteFunc(st.CollapsedSkillGroups, func(g string) bool { return g == name })
			collapsed = false
			return nil
		}
		st.CollapsedSkillGroups = append(st.CollapsedSkillGroups, name)
		collapsed = true
		return nil
	})
	return collapsed, err
}
