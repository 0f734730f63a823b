package leveling

import (
	"math"

	"github.com/osse101/IdleTracker_Go/internal/domain"
)

// Curve is the precomputed cumulative experience table.
// Index i holds the total experience needed to reach level i.
type Curve struct {
	thresholds [domain.MaxLevel + 1]float64
}

// NewCurve builds the table once:
// increment(L) = floor(CurveBaseXP * CurveGrowthRate^L), summed from level 2.
func NewCurve() *Curve {
	c := &Curve{}
	total := 0.0
	for level := 2; level <= domain.MaxLevel; level++ {
		total += math.Floor(domain.CurveBaseXP * math.Pow(domain.CurveGrowthRate, float64(level)))
		c.thresholds[level] = total
	}
	return c
}

var defaultCurve = NewCurve()

// Default returns the shared process-wide curve
func Default() *Curve {
	return defaultCurve
}

// Threshold returns the cumulative experience required to reach level.
// Levels outside [0, MaxLevel] are clamped.
func (c *Curve) Threshold(level int) float64 {
	if level <= 0 {
		return 0
	}
	if level > domain.MaxLevel {
		level = domain.MaxLevel
	}
	return c.thresholds[level]
}

// MaxXP is the experience needed to reach MaxLevel
func (c *Curve) MaxXP() float64 {
	return c.thresholds[domain.MaxLevel]
}

// Thresholds returns a copy of the table
func (c *Curve) Thresholds() []float64 {
	out := make([]float64, len(c.thresholds))
	copy(out, c.thresholds[:])
	return out
}

// XPPerHour converts real time into experience for the given mode.
// Unknown modes fall back to normal.
func (c *Curve) XPPerHour(mode string) float64 {
	hours, ok := domain.HoursToMax[mode]
	if !ok {
		hours = domain.HoursToMax[domain.ModeNormal]
	}
	return c.MaxXP() / hours
}

// XPForDuration returns the experience earned over elapsedMS milliseconds
func (c *Curve) XPForDuration(elapsedMS int64, mode string) float64 {
	return float64(elapsedMS) / domain.MillisPerHour * c.XPPerHour(mode)
}

// XPForHours returns the experience earned over a number of hours
func (c *Curve) XPForHours(hours float64, mode string) float64 {
	return hours * c.XPPerHour(mode)
}

// LevelFor returns the highest level whose threshold is covered by xp
func (c *Curve) LevelFor(xp float64) int {
	level := 1
	for level < domain.MaxLevel && xp >= c.thresholds[level+1] {
		level++
	}
	return level
}

// Progress describes where a skill sits between two levels
type Progress struct {
	Level          int     `json:"level"`
	XP             float64 `json:"xp"`
	CurrentLevelXP float64 `json:"current_level_xp"`
	NextLevelXP    float64 `json:"next_level_xp"`
	Percent        float64 `json:"percent"`
	XPToNext       float64 `json:"xp_to_next"`
	HoursToNext    float64 `json:"hours_to_next"`
	Maxed          bool    `json:"maxed"`
}

// ProgressOf computes display progress for a skill
func (c *Curve) ProgressOf(p domain.SkillProgress, mode string) Progress {
	out := Progress{Level: p.Level, XP: p.XP}
	if p.Level >= domain.MaxLevel {
		out.CurrentLevelXP = c.MaxXP()
		out.NextLevelXP = c.MaxXP()
		out.Percent = 100
		out.Maxed = true
		return out
	}
	out.CurrentLevelXP = c.Threshold(p.Level)
	out.NextLevelXP = c.Threshold(p.Level + 1)
	span := out.NextLevelXP - out.CurrentLevelXP
	if span > 0 {
		out.Percent = math.Min(100, math.Max(0, (p.XP-out.CurrentLevelXP)/span*100))
	}
	out.XPToNext = math.Max(0, out.NextLevelXP-p.XP)
	out.HoursToNext = out.XPToNext / c.XPPerHour(mode)
	return out
}
