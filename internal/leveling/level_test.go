package leveling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleTracker_Go/internal/domain"
)

func TestCurve_Thresholds(t *testing.T) {
	c := NewCurve()

	assert.Equal(t, 0.0, c.Threshold(0))
	assert.Equal(t, 0.0, c.Threshold(1))
	assert.Equal(t, math.Floor(300*math.Pow(1.13, 2)), c.Threshold(2))
	assert.Equal(t, c.Threshold(2)+math.Floor(300*math.Pow(1.13, 3)), c.Threshold(3))

	for level := 1; level < domain.MaxLevel; level++ {
		assert.Less(t, c.Threshold(level), c.Threshold(level+1), "level %d", level)
	}
}

func TestCurve_ThresholdClamps(t *testing.T) {
	c := NewCurve()
	assert.Equal(t, 0.0, c.Threshold(-3))
	assert.Equal(t, c.MaxXP(), c.Threshold(domain.MaxLevel+5))
}

func TestCurve_ThresholdsReturnsCopy(t *testing.T) {
	c := NewCurve()
	table := c.Thresholds()
	require.Len(t, table, domain.MaxLevel+1)
	table[2] = -1
	assert.NotEqual(t, -1.0, c.Threshold(2))
}

func TestCurve_XPPerHour(t *testing.T) {
	c := NewCurve()

	normal := c.XPPerHour(domain.ModeNormal)
	hard := c.XPPerHour(domain.ModeHard)

	assert.InDelta(t, c.MaxXP()/1000, normal, 1e-9)
	assert.InDelta(t, normal/10, hard, 1e-9)
	assert.Equal(t, normal, c.XPPerHour("bogus"))
}

func TestCurve_XPForDurationMatchesHours(t *testing.T) {
	c := NewCurve()
	assert.InDelta(t, c.XPForHours(1, domain.ModeNormal), c.XPForDuration(3_600_000, domain.ModeNormal), 1e-9)
	assert.InDelta(t, c.XPForHours(0.5, domain.ModeHard), c.XPForDuration(1_800_000, domain.ModeHard), 1e-9)
}

func TestCurve_LevelFor(t *testing.T) {
	c := NewCurve()

	tests := []struct {
		name string
		xp   float64
		want int
	}{
		{"zero", 0, 1},
		{"just below 2", c.Threshold(2) - 1, 1},
		{"exactly 2", c.Threshold(2), 2},
		{"mid 10", c.Threshold(10) + 1, 10},
		{"max", c.MaxXP(), domain.MaxLevel},
		{"beyond max", c.MaxXP() * 3, domain.MaxLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.LevelFor(tt.xp))
		})
	}
}

func TestCurve_ProgressOf(t *testing.T) {
	c := NewCurve()

	mid := (c.Threshold(3) + c.Threshold(4)) / 2
	p := c.ProgressOf(domain.SkillProgress{Level: 3, XP: mid}, domain.ModeNormal)
	assert.InDelta(t, 50, p.Percent, 1e-9)
	assert.InDelta(t, c.Threshold(4)-mid, p.XPToNext, 1e-9)
	assert.InDelta(t, p.XPToNext/c.XPPerHour(domain.ModeNormal), p.HoursToNext, 1e-9)
	assert.False(t, p.Maxed)

	maxed := c.ProgressOf(domain.SkillProgress{Level: domain.MaxLevel, XP: c.MaxXP() + 10}, domain.ModeNormal)
	assert.True(t, maxed.Maxed)
	assert.Equal(t, 100.0, maxed.Percent)
}
