// Package fixtures provides small deterministic inputs for tests.
package fixtures

import (
	"sync"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/domain"
)

// Skill and action identifiers used by Catalog
const (
	SkillChopping = "chopping"
	SkillReading  = "reading"

	ActionChop     = "chop"     // 3000ms, 5 coins
	ActionChopOak  = "chopOak"  // 5000ms, 12 coins, level 5
	ActionReadPage = "readPage" // 1000ms, 1 coin

	TaskPickStick  = "pickStick"  // 1300 xp, 2 coins
	TaskSharpenAxe = "sharpenAxe" // 2600 xp, 5 coins, level 2

	TitleBadge = "badge" // 100 coins, chopping 2
)

// Catalog returns a two-skill catalog with small durations
func Catalog() *catalog.Catalog {
	c, err := catalog.New(
		[]domain.SkillDefinition{
			{
				ID:          SkillChopping,
				DisplayName: "Chopping",
				Group:       "Hobbies",
				Actions: []domain.ActionDefinition{
					{ID: ActionChop, Title: "Chop", DurationMS: 3000, Coins: 5, StatKey: "logsChopped"},
					{ID: ActionChopOak, Title: "Chop Oak", DurationMS: 5000, Coins: 12, StatKey: "oaksChopped", RequiredLevel: 5},
				},
				Tasks: []domain.TaskDefinition{
					{ID: TaskPickStick, Name: "Pick a stick", XP: 1300, Coins: 2},
					{ID: TaskSharpenAxe, Name: "Sharpen axe", XP: 2600, Coins: 5, RequiredLevel: 2},
				},
			},
			{
				ID:          SkillReading,
				DisplayName: "Reading",
				Group:       "Personal Growth",
				Actions: []domain.ActionDefinition{
					{ID: ActionReadPage, Title: "Read a Page", DurationMS: 1000, Coins: 1, StatKey: "pagesRead"},
				},
			},
		},
		[]domain.TitleDefinition{
			{ID: domain.TitleNone, Name: "None"},
			{ID: domain.TitleNovice, Name: "The Novice"},
			{ID: TitleBadge, Name: "The Badge", Cost: 100, Requirement: &domain.TitleRequirement{Skill: SkillChopping, Level: 2}},
		},
	)
	if err != nil {
		panic(err)
	}
	c.Backgrounds = []domain.BackgroundOption{{Key: "none", Name: "None"}, {Key: "forest", Name: "Forest"}, {Key: "mountains", Name: "Mountains"}}
	return c
}

// Epoch is a fixed wall-clock instant for deterministic tests
var Epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// Clock is a manually advanced time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at Epoch
func NewClock() *Clock {
	return &Clock{now: Epoch}
}

// Now returns the current fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
