// Package stats builds read-only views over the player state: stat counters,
// per-skill progress and account totals.
package stats

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
)

// Snapshotter returns an up-to-date copy of the player state
type Snapshotter interface {
	Snapshot(ctx context.Context) (*domain.PlayerState, error)
}

// StatEntry is one stat counter with its display name
type StatEntry struct {
	Skill     string `json:"skill"`
	SkillName string `json:"skill_name"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	Value     int64  `json:"value"`
}

// StatsView is the stats page for one skill or all skills
type StatsView struct {
	Selection string      `json:"selection"`
	Header    string      `json:"header"`
	Entries   []StatEntry `json:"entries"`
}

// SkillView is one skill with its progress formatted for display
type SkillView struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Icon         string            `json:"icon"`
	Group        string            `json:"group"`
	Unlocked     bool              `json:"unlocked"`
	Training     bool              `json:"training"`
	Progress     leveling.Progress `json:"progress"`
	HoursTrained float64           `json:"hours_trained"`
	Display      string            `json:"display"`
}

// Summary aggregates the whole account
type Summary struct {
	PlayerName     string  `json:"player_name"`
	EquippedTitle  string  `json:"equipped_title"`
	Coins          int64   `json:"coins"`
	TotalLevel     int     `json:"total_level"`
	TotalXP        float64 `json:"total_xp"`
	HoursTrained   float64 `json:"hours_trained"`
	MaxedSkills    int     `json:"maxed_skills"`
	UnlockedSkills int     `json:"unlocked_skills"`
	Completions    int64   `json:"completions"`
	CompletedTasks int     `json:"completed_tasks"`
	Mode           string  `json:"mode"`
}

// Service defines the read views
type Service interface {
	Stats(ctx context.Context, skill string) (*StatsView, error)
	Skills(ctx context.Context) ([]SkillView, error)
	Skill(ctx context.Context, skill string) (*SkillView, error)
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	source  Snapshotter
	catalog *catalog.Catalog
	curve   *leveling.Curve
}

// NewService creates the stats views
func NewService(source Snapshotter, cat *catalog.Catalog, curve *leveling.Curve) Service {
	if curve == nil {
		curve = leveling.Default()
	}
	return &service{source: source, catalog: cat, curve: curve}
}

// Stats lists stat counters for one skill, or for every skill when skill is
// empty or "all". Entries are sorted by catalog skill order then key.
func (s *service) Stats(ctx context.Context, skill string) (*StatsView, error) {
	all := skill == "" || skill == SkillAll
	view := &StatsView{Selection: SkillAll, Header: "All Skills", Entries: []StatEntry{}}
	if !all {
		def, err := s.catalog.Skill(skill)
		if err != nil {
			return nil, err
		}
		view.Selection = def.ID
		view.Header = def.DisplayName
	}

	st, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for _, def := range s.catalog.Skills {
		if !all && def.ID != skill {
			continue
		}
		counters := st.Stats[def.ID]
		keys := make([]string, 0, len(counters))
		for k := range counters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			view.Entries = append(view.Entries, StatEntry{
				Skill:     def.ID,
				SkillName: def.DisplayName,
				Key:       k,
				Name:      s.catalog.StatName(k),
				Value:     counters[k],
			})
		}
	}
	return view, nil
}

// Skills returns every catalog skill. With skillSortByLevel set the list is
// ordered by level, highest first; otherwise catalog order is kept.
func (s *service) Skills(ctx context.Context) ([]SkillView, error) {
	st, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]SkillView, 0, len(s.catalog.Skills))
	for i := range s.catalog.Skills {
		views = append(views, s.skillView(st, &s.catalog.Skills[i]))
	}
	if st.Settings.SkillSortByLevel {
		slices.SortStableFunc(views, func(a, b SkillView) int { return b.Progress.Level - a.Progress.Level })
	}
	return views, nil
}

// Skill returns a single skill view
func (s *service) Skill(ctx context.Context, skill string) (*SkillView, error) {
	def, err := s.catalog.Skill(skill)
	if err != nil {
		return nil, err
	}
	st, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view := s.skillView(st, def)
	return &view, nil
}

// Summary totals levels, experience and counters across all skills
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	st, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	mode := st.Settings.Mode()
	sum := &Summary{
		PlayerName:     st.Settings.PlayerName,
		EquippedTitle:  st.EquippedTitle,
		Coins:          st.Coins,
		UnlockedSkills: len(st.UnlockedSkills),
		Mode:           mode,
	}
	for _, def := range s.catalog.Skills {
		p := progressOf(st, def.ID)
		sum.TotalLevel += p.Level
		sum.TotalXP += p.XP
		if p.Level >= domain.MaxLevel {
			sum.MaxedSkills++
		}
		for _, v := range st.Stats[def.ID] {
			sum.Completions += v
		}
		sum.CompletedTasks += len(st.CompletedTasks[def.ID])
	}
	sum.HoursTrained = sum.TotalXP / s.curve.XPPerHour(mode)
	return sum, nil
}

func (s *service) skillView(st *domain.PlayerState, def *domain.SkillDefinition) SkillView {
	p := progressOf(st, def.ID)
	mode := st.Settings.Mode()
	progress := s.curve.ProgressOf(p, mode)

	group := st.GroupOf(def.ID)
	if group == "" {
		group = domain.UngroupedLabel
	}

	return SkillView{
		ID:           def.ID,
		Name:         def.DisplayName,
		Icon:         def.Icon,
		Group:        group,
		Unlocked:     st.IsUnlocked(def.ID),
		Training:     st.ActiveAction != nil && st.ActiveAction.SkillName == def.ID,
		Progress:     progress,
		HoursTrained: p.XP / s.curve.XPPerHour(mode),
		Display:      FormatProgress(progress, st.Settings.ShowHoursInsteadOfXP, s.curve.XPPerHour(mode)),
	}
}

func progressOf(st *domain.PlayerState, skill string) domain.SkillProgress {
	if p := st.Skills[skill]; p != nil {
		return *p
	}
	return domain.SkillProgress{Level: 1}
}

// FormatProgress renders the skill header: hours with two decimals, or whole
// experience with thousands separators
func FormatProgress(p leveling.Progress, hours bool, xpPerHour float64) string {
	if hours {
		return fmt.Sprintf(ProgressHoursFmt, p.XP/xpPerHour, p.NextLevelXP/xpPerHour)
	}
	printer := message.NewPrinter(language.English)
	return printer.Sprintf(ProgressXPFmt, int64(math.Floor(p.XP)), int64(p.NextLevelXP))
}
