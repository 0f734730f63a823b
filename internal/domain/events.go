package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "reward.accrued")
const (
	// EventTypeRewardAccrued is published when accrual produced experience or completions
	EventTypeRewardAccrued = "reward.accrued"

	// EventTypeSkillLeveledUp is published once per level gained
	EventTypeSkillLeveledUp = "skill.leveled_up"

	// EventTypeTaskCompleted is published when a one-time task is claimed
	EventTypeTaskCompleted = "task.completed"

	// EventTypeManualEntry is published when time is entered manually
	EventTypeManualEntry = "manual.entry"

	// EventTypeActionStarted is published when an action begins running
	EventTypeActionStarted = "action.started"

	// EventTypeActionStopped is published after the final flush of a stopped action
	EventTypeActionStopped = "action.stopped"

	// EventTypeTitlePurchased is published when a title is bought
	EventTypeTitlePurchased = "title.purchased"

	// EventTypeTitleEquipped is published when the equipped title changes
	EventTypeTitleEquipped = "title.equipped"

	// EventTypeStateImported is published after an import replaced the save
	EventTypeStateImported = "state.imported"

	// EventTypeSettingsUpdated is published after settings change
	EventTypeSettingsUpdated = "settings.updated"

	// EventTypeNotificationRaised is published when a user-facing notice is created
	EventTypeNotificationRaised = "notification.raised"
)

// LevelUpEvent records one level gained
type LevelUpEvent struct {
	Skill    string `json:"skill"`
	NewLevel int    `json:"new_level"`
}

// RewardReport summarises the effects of one accrual, manual entry or task claim
type RewardReport struct {
	Skill       string         `json:"skill"`
	Action      string         `json:"action,omitempty"`
	XPGained    float64        `json:"xp_gained"`
	CoinsGained int64          `json:"coins_gained"`
	Completions int64          `json:"completions"`
	LevelUps    []LevelUpEvent `json:"level_ups"`
}

// LeveledUp reports whether the report contains any level-up
func (r *RewardReport) LeveledUp() bool {
	return r != nil && len(r.LevelUps) > 0
}
