package domain

import (
	"slices"
	"time"
)

// SkillProgress is the level and cumulative experience of one skill
type SkillProgress struct {
	Level int     `json:"level"`
	XP    float64 `json:"xp"`
}

// ActiveAction is the single running timed action.
// StartTime is the cycle cursor and only moves by whole completions.
// LastAccrued is the experience cursor and moves on every accrual.
type ActiveAction struct {
	SkillName   string `json:"skillName"`
	ActionName  string `json:"actionName"`
	StartTime   int64  `json:"startTime"`             // unix milliseconds
	LastAccrued int64  `json:"lastAccrued,omitempty"` // unix milliseconds
}

// StartedAt returns the start timestamp as a time.Time
func (a *ActiveAction) StartedAt() time.Time {
	return time.UnixMilli(a.StartTime)
}

// XPCursor returns the instant experience was last credited up to
func (a *ActiveAction) XPCursor() int64 {
	if a.LastAccrued < a.StartTime {
		return a.StartTime
	}
	return a.LastAccrued
}

// Settings holds player preferences. Validation tags are enforced on update.
type Settings struct {
	PlayerName           string `json:"playerName" validate:"required,max=32"`
	HardMode             bool   `json:"hardMode"`
	UseDarkMode          bool   `json:"useDarkMode"`
	BackgroundImage      string `json:"backgroundImage" validate:"required,oneof=none forest mountains"`
	ShowHoursInsteadOfXP bool   `json:"showHoursInsteadOfXP"`
	SkillSortByLevel     bool   `json:"skillSortByLevel"`
	GroupSkillsInSidebar bool   `json:"groupSkillsInSidebar"`
	NotificationPosition string `json:"notificationPosition" validate:"required,oneof=bottom-left bottom-center bottom-right"`
	NotificationDuration int    `json:"notificationDuration" validate:"oneof=2000 3000 5000"`
	NotificationShowName bool   `json:"notificationShowName"`
	SkillsCollapsed      bool   `json:"skillsCollapsed"`
}

// Mode returns the difficulty mode selected by the settings
func (s Settings) Mode() string {
	if s.HardMode {
		return ModeHard
	}
	return ModeNormal
}

// PlayerState is the persisted save document
type PlayerState struct {
	SchemaVersion        int                         `json:"schemaVersion"`
	Skills               map[string]*SkillProgress   `json:"skills"`
	Stats                map[string]map[string]int64 `json:"stats"`
	Coins                int64                       `json:"coins"`
	UnlockedSkills       []string                    `json:"unlockedSkills"`
	ActiveAction         *ActiveAction               `json:"activeAction"`
	Settings             Settings                    `json:"settings"`
	CompletedTasks       map[string][]string         `json:"completedTasks"`
	SkillGroups          map[string][]string         `json:"skillGroups"`
	CollapsedSkillGroups []string                    `json:"collapsedSkillGroups"`
	PurchasedTitles      []string                    `json:"purchasedTitles"`
	EquippedTitle        string                      `json:"equippedTitle"`
}

// IsUnlocked reports whether the skill is in the unlocked list
func (p *PlayerState) IsUnlocked(skill string) bool {
	return slices.Contains(p.UnlockedSkills, skill)
}

// HasCompletedTask reports whether the task was already claimed
func (p *PlayerState) HasCompletedTask(skill, task string) bool {
	return slices.Contains(p.CompletedTasks[skill], task)
}

// OwnsTitle reports whether the title was purchased
func (p *PlayerState) OwnsTitle(title string) bool {
	return slices.Contains(p.PurchasedTitles, title)
}

// GroupOf returns the group a skill is assigned to, or empty
func (p *PlayerState) GroupOf(skill string) string {
	for group, members := range p.SkillGroups {
		if slices.Contains(members, skill) {
			return group
		}
	}
	return ""
}

// Clone returns a deep copy safe to hand outside the store lock
func (p *PlayerState) Clone() *PlayerState {
	if p == nil {
		return nil
	}
	out := *p
	out.Skills = make(map[string]*SkillProgress, len(p.Skills))
	for k, v := range p.Skills {
		sp := *v
		out.Skills[k] = &sp
	}
	out.Stats = make(map[string]map[string]int64, len(p.Stats))
	for skill, counters := range p.Stats {
		cp := make(map[string]int64, len(counters))
		for k, v := range counters {
			cp[k] = v
		}
		out.Stats[skill] = cp
	}
	out.UnlockedSkills = slices.Clone(p.UnlockedSkills)
	if p.ActiveAction != nil {
		a := *p.ActiveAction
		out.ActiveAction = &a
	}
	out.CompletedTasks = cloneStringSliceMap(p.CompletedTasks)
	out.SkillGroups = cloneStringSliceMap(p.SkillGroups)
	out.CollapsedSkillGroups = slices.Clone(p.CollapsedSkillGroups)
	out.PurchasedTitles = slices.Clone(p.PurchasedTitles)
	return &out
}

func cloneStringSliceMap(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = slices.Clone(v)
	}
	return out
}
