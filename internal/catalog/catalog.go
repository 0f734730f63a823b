package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/IdleTracker_Go/internal/domain"
)

// Catalog is the read-only table of skills, titles and display metadata.
// It is safe for concurrent use once built.
type Catalog struct {
	Skills      []domain.SkillDefinition  `yaml:"skills" json:"skills"`
	Titles      []domain.TitleDefinition  `yaml:"titles" json:"titles"`
	Backgrounds []domain.BackgroundOption `yaml:"backgrounds" json:"backgrounds"`
	StatNames   map[string]string         `yaml:"stat_names" json:"stat_names"`

	skillIndex map[string]int
	titleIndex map[string]int
}

// New builds and validates a catalog from definitions
func New(skills []domain.SkillDefinition, titles []domain.TitleDefinition) (*Catalog, error) {
	c := &Catalog{Skills: skills, Titles: titles, StatNames: map[string]string{}}
	if err := c.build(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) build() error {
	c.skillIndex = make(map[string]int, len(c.Skills))
	c.titleIndex = make(map[string]int, len(c.Titles))
	if c.StatNames == nil {
		c.StatNames = map[string]string{}
	}

	if len(c.Skills) == 0 {
		return fmt.Errorf("%w: no skills defined", domain.ErrInvalidCatalog)
	}

	for i, s := range c.Skills {
		if s.ID == "" {
			return fmt.Errorf("%w: skill %d has no id", domain.ErrInvalidCatalog, i)
		}
		if _, dup := c.skillIndex[s.ID]; dup {
			return fmt.Errorf("%w: duplicate skill %q", domain.ErrInvalidCatalog, s.ID)
		}
		if len(s.Actions) == 0 {
			return fmt.Errorf("%w: skill %q has no actions", domain.ErrInvalidCatalog, s.ID)
		}
		if err := validateSkill(s); err != nil {
			return err
		}
		c.skillIndex[s.ID] = i
	}

	for i, t := range c.Titles {
		if t.ID == "" {
			return fmt.Errorf("%w: title %d has no id", domain.ErrInvalidCatalog, i)
		}
		if _, dup := c.titleIndex[t.ID]; dup {
			return fmt.Errorf("%w: duplicate title %q", domain.ErrInvalidCatalog, t.ID)
		}
		if t.Cost < 0 {
			return fmt.Errorf("%w: title %q has negative cost", domain.ErrInvalidCatalog, t.ID)
		}
		if t.Requirement != nil {
			if _, ok := c.skillIndex[t.Requirement.Skill]; !ok {
				return fmt.Errorf("%w: title %q requires unknown skill %q", domain.ErrInvalidCatalog, t.ID, t.Requirement.Skill)
			}
		}
		c.titleIndex[t.ID] = i
	}
	return nil
}

func validateSkill(s domain.SkillDefinition) error {
	seen := make(map[string]bool, len(s.Actions))
	for _, a := range s.Actions {
		switch {
		case a.ID == "":
			return fmt.Errorf("%w: skill %q has an action with no id", domain.ErrInvalidCatalog, s.ID)
		case seen[a.ID]:
			return fmt.Errorf("%w: duplicate action %s/%s", domain.ErrInvalidCatalog, s.ID, a.ID)
		case a.DurationMS <= 0:
			return fmt.Errorf("%w: action %s/%s must have a positive duration", domain.ErrInvalidCatalog, s.ID, a.ID)
		case a.Coins < 0:
			return fmt.Errorf("%w: action %s/%s has negative coins", domain.ErrInvalidCatalog, s.ID, a.ID)
		case a.StatKey == "":
			return fmt.Errorf("%w: action %s/%s has no stat key", domain.ErrInvalidCatalog, s.ID, a.ID)
		case a.RequiredLevel < 0:
			return fmt.Errorf("%w: action %s/%s has negative required level", domain.ErrInvalidCatalog, s.ID, a.ID)
		}
		seen[a.ID] = true
	}

	seen = make(map[string]bool, len(s.Tasks))
	for _, t := range s.Tasks {
		switch {
		case t.ID == "":
			return fmt.Errorf("%w: skill %q has a task with no id", domain.ErrInvalidCatalog, s.ID)
		case seen[t.ID]:
			return fmt.Errorf("%w: duplicate task %s/%s", domain.ErrInvalidCatalog, s.ID, t.ID)
		case t.XP < 0 || t.Coins < 0:
			return fmt.Errorf("%w: task %s/%s has negative rewards", domain.ErrInvalidCatalog, s.ID, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// SkillIDs returns skill identifiers in catalog order
func (c *Catalog) SkillIDs() []string {
	ids := make([]string, len(c.Skills))
	for i, s := range c.Skills {
		ids[i] = s.ID
	}
	return ids
}

// HasSkill reports whether the catalog defines the skill
func (c *Catalog) HasSkill(skillID string) bool {
	_, ok := c.skillIndex[skillID]
	return ok
}

// Skill looks up a skill definition
func (c *Catalog) Skill(skillID string) (*domain.SkillDefinition, error) {
	i, ok := c.skillIndex[skillID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSkillNotFound, skillID)
	}
	return &c.Skills[i], nil
}

// Action looks up an action within a skill
func (c *Catalog) Action(skillID, actionID string) (*domain.ActionDefinition, error) {
	s, err := c.Skill(skillID)
	if err != nil {
		return nil, err
	}
	a := s.Action(actionID)
	if a == nil {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrActionNotFound, skillID, actionID)
	}
	return a, nil
}

// Task looks up a task within a skill
func (c *Catalog) Task(skillID, taskID string) (*domain.TaskDefinition, error) {
	s, err := c.Skill(skillID)
	if err != nil {
		return nil, err
	}
	t := s.Task(taskID)
	if t == nil {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrTaskNotFound, skillID, taskID)
	}
	return t, nil
}

// Title looks up a shop title
func (c *Catalog) Title(titleID string) (*domain.TitleDefinition, error) {
	i, ok := c.titleIndex[titleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTitleNotFound, titleID)
	}
	return &c.Titles[i], nil
}

// HasBackground reports whether key names a known background
func (c *Catalog) HasBackground(key string) bool {
	for _, b := range c.Backgrounds {
		if b.Key == key {
			return true
		}
	}
	return false
}

// BackgroundKey resolves a background key or image URL to its key
func (c *Catalog) BackgroundKey(v string) (string, bool) {
	for _, b := range c.Backgrounds {
		if b.Key == v || (b.URL != "" && b.URL == v) {
			return b.Key, true
		}
	}
	return "", false
}

// StatKeys returns the stat counter keys of a skill in action order
func (c *Catalog) StatKeys(skillID string) []string {
	s, err := c.Skill(skillID)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(s.Actions))
	for _, a := range s.Actions {
		keys = append(keys, a.StatKey)
	}
	return keys
}

// DefaultAssignments maps each skill to its catalog group
func (c *Catalog) DefaultAssignments() map[string]string {
	out := make(map[string]string, len(c.Skills))
	for _, s := range c.Skills {
		if s.Group != "" {
			out[s.ID] = s.Group
		}
	}
	return out
}

// StatName returns the display name of a stat counter.
// Keys missing from stat_names are split on case changes and title cased.
func (c *Catalog) StatName(key string) string {
	if name, ok := c.StatNames[key]; ok {
		return name
	}
	return cases.Title(language.English).String(splitCamel(key))
}

func splitCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
