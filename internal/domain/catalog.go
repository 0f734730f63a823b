package domain

// SkillDefinition is the static catalog entry for a trainable skill
type SkillDefinition struct {
	ID          string             `json:"id" yaml:"id"`
	DisplayName string             `json:"display_name" yaml:"display_name"`
	Icon        string             `json:"icon,omitempty" yaml:"icon"`
	Description string             `json:"description,omitempty" yaml:"description"`
	Group       string             `json:"group,omitempty" yaml:"group"`
	Actions     []ActionDefinition `json:"actions" yaml:"actions"`
	Tasks       []TaskDefinition   `json:"tasks,omitempty" yaml:"tasks"`
}

// ActionDefinition is a repeatable timed action within a skill
type ActionDefinition struct {
	ID            string `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	DurationMS    int64  `json:"duration_ms" yaml:"duration_ms"`
	Coins         int64  `json:"coins" yaml:"coins"`
	StatKey       string `json:"stat_key" yaml:"stat_key"`
	RequiredLevel int    `json:"required_level,omitempty" yaml:"required_level"`
}

// TaskDefinition is a one-time reward within a skill
type TaskDefinition struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description,omitempty" yaml:"description"`
	XP            int64  `json:"xp" yaml:"xp"`
	Coins         int64  `json:"coins" yaml:"coins"`
	RequiredLevel int    `json:"required_level,omitempty" yaml:"required_level"`
}

// TitleRequirement gates a shop title behind a skill level
type TitleRequirement struct {
	Skill string `json:"skill" yaml:"skill"`
	Level int    `json:"level" yaml:"level"`
}

// TitleDefinition is a cosmetic title sold in the shop
type TitleDefinition struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description"`
	Cost        int64             `json:"cost" yaml:"cost"`
	Requirement *TitleRequirement `json:"requirement,omitempty" yaml:"requirement"`
}

// BackgroundOption is a selectable background image
type BackgroundOption struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url"`
}

// Action returns the named action, or nil
func (s *SkillDefinition) Action(actionID string) *ActionDefinition {
	for i := range s.Actions {
		if s.Actions[i].ID == actionID {
			return &s.Actions[i]
		}
	}
	return nil
}

// Task returns the named task, or nil
func (s *SkillDefinition) Task(taskID string) *TaskDefinition {
	for i := range s.Tasks {
		if s.Tasks[i].ID == taskID {
			return &s.Tasks[i]
		}
	}
	return nil
}

// IsFree reports whether the title is available without purchase
func (t *TitleDefinition) IsFree() bool {
	return t.ID == TitleNone || t.ID == TitleNovice
}
