package state

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
)

// Decode parses a save document of any known schema version, migrates it and
// fills every missing field from defaults. A dangling active action is dropped.
func Decode(data []byte, cat *catalog.Catalog, curve *leveling.Curve) (*domain.PlayerState, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if err := migrate(doc, cat); err != nil {
		return nil, err
	}
	return materialize(doc, cat, curve)
}

// Encode serialises the state with the current schema version stamp
func Encode(st *domain.PlayerState) ([]byte, error) {
	out := *st
	out.SchemaVersion = domain.SchemaVersion
	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return data, nil
}

// EncodeIndent is Encode with indentation, used for exports
func EncodeIndent(st *domain.PlayerState) ([]byte, error) {
	out := *st
	out.SchemaVersion = domain.SchemaVersion
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return data, nil
}

func materialize(d *document, cat *catalog.Catalog, curve *leveling.Curve) (*domain.PlayerState, error) {
	st := NewDefault(cat)

	for id, p := range d.Skills {
		if p == nil {
			continue
		}
		st.Skills[id] = normalizeProgress(id, *p, curve)
	}

	for skill, counters := range d.Stats {
		dst := st.Stats[skill]
		if dst == nil {
			dst = make(map[string]int64, len(counters))
			st.Stats[skill] = dst
		}
		for key, v := range counters {
			dst[key] = max(v, 0)
		}
	}

	if d.Coins != nil {
		st.Coins = max(*d.Coins, 0)
	}

	if d.UnlockedSkills != nil {
		st.UnlockedSkills = normalizeUnlocked(d.UnlockedSkills, cat)
	}

	if a := d.ActiveAction; a != nil && a.StartTime > 0 {
		if _, err := cat.Action(a.SkillName, a.ActionName); err == nil {
			active := *a
			active.LastAccrued = active.XPCursor()
			st.ActiveAction = &active
		}
	}

	if d.Settings != nil {
		applySettings(&st.Settings, d.Settings, cat)
	}

	completed := d.completed
	if completed == nil {
		var err error
		if completed, err = decodeCompletedTasks(d.CompletedTasks); err != nil {
			return nil, err
		}
	}
	for skill, tasks := range completed {
		st.CompletedTasks[skill] = dedupe(tasks)
	}

	if d.SkillGroups != nil {
		st.SkillGroups = normalizeGroups(d.SkillGroups)
	}
	if d.CollapsedSkillGroups != nil {
		st.CollapsedSkillGroups = dedupe(d.CollapsedSkillGroups)
	}

	if d.PurchasedTitles != nil {
		owned := append([]string{domain.TitleNone, domain.TitleNovice}, d.PurchasedTitles...)
		st.PurchasedTitles = dedupe(owned)
	}
	if d.EquippedTitle != nil && slices.Contains(st.PurchasedTitles, *d.EquippedTitle) {
		st.EquippedTitle = *d.EquippedTitle
	}

	return st, nil
}

// normalizeProgress restores the level/experience invariant. Saves written by
// the rolling model kept only the remainder above the current level's
// threshold; that remainder is rebased onto the cumulative table.
func normalizeProgress(skill string, p domain.SkillProgress, curve *leveling.Curve) *domain.SkillProgress {
	if math.IsNaN(p.XP) || math.IsInf(p.XP, 0) || p.XP < 0 {
		p.XP = 0
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Level > domain.MaxLevel {
		p.Level = domain.MaxLevel
	}
	if floor := curve.Threshold(p.Level); p.XP < floor {
		p.XP += floor
	}
	curve.Evaluate(skill, &p)
	return &p
}

func normalizeUnlocked(in []string, cat *catalog.Catalog) []string {
	out := make([]string, 0, len(in))
	for _, id := range dedupe(in) {
		if !cat.HasSkill(id) {
			continue
		}
		if len(out) == domain.MaxUnlockedSkills {
			break
		}
		out = append(out, id)
	}
	return out
}

// normalizeGroups keeps each skill in at most one group
func normalizeGroups(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	seen := make(map[string]bool)

	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		members := []string{}
		for _, skill := range in[name] {
			if seen[skill] {
				continue
			}
			seen[skill] = true
			members = append(members, skill)
		}
		out[name] = members
	}
	return out
}

func applySettings(dst *domain.Settings, src *settingsDocument, cat *catalog.Catalog) {
	if src.PlayerName != nil && *src.PlayerName != "" {
		dst.PlayerName = *src.PlayerName
	}
	if src.HardMode != nil {
		dst.HardMode = *src.HardMode
	}
	if src.UseDarkMode != nil {
		dst.UseDarkMode = *src.UseDarkMode
	}
	if src.BackgroundImage != nil {
		if key, ok := cat.BackgroundKey(*src.BackgroundImage); ok {
			dst.BackgroundImage = key
		}
	}
	if src.ShowHoursInsteadOfXP != nil {
		dst.ShowHoursInsteadOfXP = *src.ShowHoursInsteadOfXP
	}
	if src.SkillSortByLevel != nil {
		dst.SkillSortByLevel = *src.SkillSortByLevel
	}
	if src.GroupSkillsInSidebar != nil {
		dst.GroupSkillsInSidebar = *src.GroupSkillsInSidebar
	}
	if src.NotificationPosition != nil {
		switch *src.NotificationPosition {
		case domain.NotificationBottomLeft, domain.NotificationBottomCenter, domain.NotificationBottomRight:
			dst.NotificationPosition = *src.NotificationPosition
		}
	}
	if src.NotificationDuration != nil {
		switch *src.NotificationDuration {
		case 2000, 3000, 5000:
			dst.NotificationDuration = *src.NotificationDuration
		}
	}
	if src.NotificationShowName != nil {
		dst.NotificationShowName = *src.NotificationShowName
	}
	if src.SkillsCollapsed != nil {
		dst.SkillsCollapsed = *src.SkillsCollapsed
	}
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
