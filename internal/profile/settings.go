package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	PlayerName           *string `json:"playerName,omitempty"`
	HardMode             *bool   `json:"hardMode,omitempty"`
	UseDarkMode          *bool   `json:"useDarkMode,omitempty"`
	BackgroundImage      *string `json:"backgroundImage,omitempty"`
	ShowHoursInsteadOfXP *bool   `json:"showHoursInsteadOfXP,omitempty"`
	SkillSortByLevel     *bool   `json:"skillSortByLevel,omitempty"`
	GroupSkillsInSidebar *bool   `json:"groupSkillsInSidebar,omitempty"`
	NotificationPosition *string `json:"notificationPosition,omitempty"`
	NotificationDuration *int    `json:"notificationDuration,omitempty"`
	NotificationShowName *bool   `json:"notificationShowName,omitempty"`
	SkillsCollapsed      *bool   `json:"skillsCollapsed,omitempty"`
}

// Empty reports whether the patch changes nothing
func (p SettingsPatch) Empty() bool {
	return p == SettingsPatch{}
}

func (p SettingsPatch) apply(dst *domain.Settings) {
	setIf(&dst.PlayerName, p.PlayerName)
	setIf(&dst.HardMode, p.HardMode)
	setIf(&dst.UseDarkMode, p.UseDarkMode)
	setIf(&dst.BackgroundImage, p.BackgroundImage)
	setIf(&dst.ShowHoursInsteadOfXP, p.ShowHoursInsteadOfXP)
	setIf(&dst.SkillSortByLevel, p.SkillSortByLevel)
	setIf(&dst.GroupSkillsInSidebar, p.GroupSkillsInSidebar)
	setIf(&dst.NotificationPosition, p.NotificationPosition)
	setIf(&dst.NotificationDuration, p.NotificationDuration)
	setIf(&dst.NotificationShowName, p.NotificationShowName)
	setIf(&dst.SkillsCollapsed, p.SkillsCollapsed)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Settings returns the current settings
func (s *service) Settings(_ context.Context) domain.Settings {
	var out domain.Settings
	s.store.View(func(st *domain.PlayerState) { out = st.Settings })
	return out
}

// UpdateSettings merges the patch and validates the result. Pending progress is
// flushed first so a difficulty change only affects time after the change.
func (s *service) UpdateSettings(ctx context.Context, patch SettingsPatch) (*domain.Settings, error) {
	if patch.Empty() {
		settings := s.Settings(ctx)
		return &settings, nil
	}
	if err := s.flush(ctx); err != nil {
		return nil, fmt.Errorf("failed to flush accrual: %w", err)
	}

	var updated domain.Settings
	err := s.store.Update(ctx, func(st *domain.PlayerState) error {
		next := st.Settings
		patch.apply(&next)

		next.PlayerName = strings.TrimSpace(next.PlayerName)
		if key, ok := s.catalog.BackgroundKey(next.BackgroundImage); ok {
			next.BackgroundImage = key
		}

		if err := s.validate.Struct(next); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, describe(err))
		}

		st.Settings = next
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Settings updated", "hard_mode", updated.HardMode, "player_name", updated.PlayerName)
	s.publish(ctx, event.NewSimpleEvent(event.SettingsUpdated, updated))
	return &updated, nil
}

// describe lists the failing fields of a validation error
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(fields, ", ")
}
