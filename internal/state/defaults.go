package state

import (
	"slices"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/domain"
)

// DefaultSettings returns the settings of a fresh save
func DefaultSettings() domain.Settings {
	return domain.Settings{
		PlayerName:           domain.DefaultPlayerName,
		UseDarkMode:          true,
		BackgroundImage:      domain.DefaultBackground,
		GroupSkillsInSidebar: true,
		NotificationPosition: domain.NotificationBottomRight,
		NotificationDuration: domain.DefaultNotificationDuration,
		NotificationShowName: true,
	}
}

// DefaultSkillGroups returns the default groups populated from catalog assignments
func DefaultSkillGroups(cat *catalog.Catalog) map[string][]string {
	groups := make(map[string][]string, len(domain.DefaultSkillGroups))
	for _, g := range domain.DefaultSkillGroups {
		groups[g] = []string{}
	}
	assignments := cat.DefaultAssignments()
	for _, id := range cat.SkillIDs() {
		g := assignments[id]
		if g == "" {
			continue
		}
		groups[g] = append(groups[g], id)
	}
	return groups
}

// DefaultUnlockedSkills returns the first MaxUnlockedSkills catalog skills
func DefaultUnlockedSkills(cat *catalog.Catalog) []string {
	ids := cat.SkillIDs()
	if len(ids) > domain.MaxUnlockedSkills {
		ids = ids[:domain.MaxUnlockedSkills]
	}
	return slices.Clone(ids)
}

// NewDefault builds a fresh save for the catalog
func NewDefault(cat *catalog.Catalog) *domain.PlayerState {
	st := &domain.PlayerState{
		SchemaVersion:        domain.SchemaVersion,
		Skills:               make(map[string]*domain.SkillProgress),
		Stats:                make(map[string]map[string]int64),
		UnlockedSkills:       DefaultUnlockedSkills(cat),
		Settings:             DefaultSettings(),
		CompletedTasks:       make(map[string][]string),
		SkillGroups:          DefaultSkillGroups(cat),
		CollapsedSkillGroups: []string{},
		PurchasedTitles:      []string{domain.TitleNone, domain.TitleNovice},
		EquippedTitle:        domain.TitleNone,
	}
	ensureCatalogEntries(st, cat)
	return st
}

// ensureCatalogEntries adds progress and stat counters for every catalog skill
func ensureCatalogEntries(st *domain.PlayerState, cat *catalog.Catalog) {
	for _, id := range cat.SkillIDs() {
		if st.Skills[id] == nil {
			st.Skills[id] = &domain.SkillProgress{Level: 1}
		}
		counters := st.Stats[id]
		if counters == nil {
			counters = make(map[string]int64)
			st.Stats[id] = counters
		}
		for _, key := range cat.StatKeys(id) {
			if _, ok := counters[key]; !ok {
				counters[key] = 0
			}
		}
	}
}
