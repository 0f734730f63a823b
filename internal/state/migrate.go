package state

import (
	"fmt"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/domain"
)

// migration upgrades a document from one schema version to the next
type migration struct {
	from  int
	apply func(d *document, cat *catalog.Catalog) error
}

// migrations is ordered by from-version; each step produces from+1
var migrations = []migration{
	{from: 0, apply: migrateV0ToV1},
	{from: 1, apply: migrateV1ToV2},
	{from: 2, apply: migrateV2ToV3},
}

// migrate runs every step needed to bring d to the current schema version
func migrate(d *document, cat *catalog.Catalog) error {
	for _, m := range migrations {
		if d.version() != m.from {
			continue
		}
		if err := m.apply(d, cat); err != nil {
			return fmt.Errorf("migrating schema v%d: %w", m.from, err)
		}
		d.setVersion(m.from + 1)
	}
	if d.version() != domain.SchemaVersion {
		return fmt.Errorf("%w: %d", domain.ErrUnknownSchema, d.version())
	}
	return nil
}

// v0 saves held only skills, settings and the threshold table.
func migrateV0ToV1(d *document, cat *catalog.Catalog) error {
	if d.Stats == nil {
		d.Stats = make(map[string]map[string]int64)
	}
	if d.UnlockedSkills == nil {
		d.UnlockedSkills = DefaultUnlockedSkills(cat)
	}
	if d.Coins == nil {
		var zero int64
		d.Coins = &zero
	}
	return nil
}

// v2 introduced skill groups and sidebar grouping.
func migrateV1ToV2(d *document, cat *catalog.Catalog) error {
	if d.SkillGroups == nil {
		d.SkillGroups = DefaultSkillGroups(cat)
	}
	if d.CollapsedSkillGroups == nil {
		d.CollapsedSkillGroups = []string{}
	}
	if d.Settings == nil {
		d.Settings = &settingsDocument{}
	}
	if d.Settings.GroupSkillsInSidebar == nil {
		v := true
		d.Settings.GroupSkillsInSidebar = &v
	}
	return nil
}

// v3 introduced titles and notification preferences, replaced the theme
// string with useDarkMode, stored completed tasks per skill and stopped
// persisting the threshold table.
func migrateV2ToV3(d *document, _ *catalog.Catalog) error {
	if d.PurchasedTitles == nil {
		d.PurchasedTitles = []string{domain.TitleNone, domain.TitleNovice}
	}
	if d.EquippedTitle == nil {
		none := domain.TitleNone
		d.EquippedTitle = &none
	}

	s := d.Settings
	if s.UseDarkMode == nil && s.Theme != nil {
		dark := *s.Theme != "light"
		s.UseDarkMode = &dark
	}
	s.Theme = nil
	if s.NotificationPosition == nil {
		pos := domain.NotificationBottomRight
		s.NotificationPosition = &pos
	}
	if s.NotificationDuration == nil {
		dur := domain.DefaultNotificationDuration
		s.NotificationDuration = &dur
	}
	if s.NotificationShowName == nil {
		show := true
		s.NotificationShowName = &show
	}

	completed, err := decodeCompletedTasks(d.CompletedTasks)
	if err != nil {
		return err
	}
	d.completed = completed
	d.XPThresholds = nil
	return nil
}
