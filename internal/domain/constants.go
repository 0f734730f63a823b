package domain

import "time"

// Leveling constants
const (
	MaxLevel        = 99
	MillisPerHour   = 3_600_000
	CurveBaseXP     = 300.0
	CurveGrowthRate = 1.13
)

// Difficulty modes
const (
	ModeNormal = "normal"
	ModeHard   = "hard"
)

// HoursToMax is the real time needed to take one skill from level 1 to MaxLevel
var HoursToMax = map[string]float64{
	ModeNormal: 1000,
	ModeHard:   10000,
}

// Persisted state
const (
	SchemaVersion     = 3
	MaxUnlockedSkills = 10
	DefaultProfileID  = "default"
)

// Title keys that never need to be purchased
const (
	TitleNone   = "none"
	TitleNovice = "novice"
)

// Settings values
const (
	DefaultPlayerName           = "Player"
	DefaultBackground           = "none"
	NotificationBottomLeft      = "bottom-left"
	NotificationBottomCenter    = "bottom-center"
	NotificationBottomRight     = "bottom-right"
	DefaultNotificationDuration = 3000
)

// DefaultSkillGroups is the ordered list of groups a fresh save starts with
var DefaultSkillGroups = []string{
	"Work",
	"Home",
	"Financial",
	"Health",
	"Hobbies",
	"Relationships",
	"Personal Growth",
	"Education",
}

// UngroupedLabel names the bucket for skills with no group assignment
const UngroupedLabel = "Ungrouped"

// Engine timing
const (
	DefaultTickInterval = 250 * time.Millisecond
	DefaultSaveInterval = 30 * time.Second
)
