package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/osse101/IdleTracker_Go/internal/domain"
)

// document is the wire shape of any save version. Every field is optional so
// that absence can be told apart from a zero value and defaulted explicitly.
type document struct {
	SchemaVersion        *int                             `json:"schemaVersion"`
	Skills               map[string]*domain.SkillProgress `json:"skills"`
	Stats                map[string]map[string]int64      `json:"stats"`
	Coins                *int64                           `json:"coins"`
	UnlockedSkills       []string                         `json:"unlockedSkills"`
	ActiveAction         *domain.ActiveAction             `json:"activeAction"`
	Settings             *settingsDocument                `json:"settings"`
	CompletedTasks       json.RawMessage                  `json:"completedTasks"`
	SkillGroups          map[string][]string              `json:"skillGroups"`
	CollapsedSkillGroups []string                         `json:"collapsedSkillGroups"`
	PurchasedTitles      []string                         `json:"purchasedTitles"`
	EquippedTitle        *string                          `json:"equippedTitle"`
	XPThresholds         []float64                        `json:"xpThresholds,omitempty"`

	// completedTasks after normalisation to skill -> task ids
	completed map[string][]string
}

type settingsDocument struct {
	Theme                *string `json:"theme,omitempty"`
	PlayerName           *string `json:"playerName"`
	HardMode             *bool   `json:"hardMode"`
	UseDarkMode          *bool   `json:"useDarkMode"`
	BackgroundImage      *string `json:"backgroundImage"`
	ShowHoursInsteadOfXP *bool   `json:"showHoursInsteadOfXP"`
	SkillSortByLevel     *bool   `json:"skillSortByLevel"`
	GroupSkillsInSidebar *bool   `json:"groupSkillsInSidebar"`
	NotificationPosition *string `json:"notificationPosition"`
	NotificationDuration *int    `json:"notificationDuration"`
	NotificationShowName *bool   `json:"notificationShowName"`
	SkillsCollapsed      *bool   `json:"skillsCollapsed"`
}

func (d *document) version() int {
	if d.SchemaVersion == nil {
		return 0
	}
	return *d.SchemaVersion
}

func (d *document) setVersion(v int) {
	d.SchemaVersion = &v
}

// parseDocument decodes raw JSON. Both skills and settings must be JSON objects.
func parseDocument(data []byte) (*document, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSave, err)
	}
	for _, required := range []string{"skills", "settings"} {
		raw, ok := keys[required]
		if !ok || !isJSONObject(raw) {
			return nil, fmt.Errorf("%w: missing %q", domain.ErrInvalidSave, required)
		}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSave, err)
	}
	if doc.version() < 0 {
		return nil, fmt.Errorf("%w: negative schema version", domain.ErrInvalidSave)
	}
	if doc.version() > domain.SchemaVersion {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownSchema, doc.version())
	}
	return &doc, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// decodeCompletedTasks accepts both the flat ["skill_task"] list of older saves
// and the skill -> [task] map of current saves.
func decodeCompletedTasks(raw json.RawMessage) (map[string][]string, error) {
	out := make(map[string][]string)
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return out, nil
	}

	if trimmed[0] == '[' {
		var flat []string
		if err := json.Unmarshal(trimmed, &flat); err != nil {
			return nil, fmt.Errorf("%w: completedTasks: %v", domain.ErrInvalidSave, err)
		}
		for _, key := range flat {
			skill, task, ok := strings.Cut(key, "_")
			if !ok || skill == "" || task == "" {
				continue
			}
			out[skill] = append(out[skill], task)
		}
		return out, nil
	}

	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("%w: completedTasks: %v", domain.ErrInvalidSave, err)
	}
	return out, nil
}
