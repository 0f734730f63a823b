package engine

import (
	"time"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
)

// Apply credits the active action of st up to now and reports what it earned.
//
// Experience is proportional to the time since the last accrual. Coins and stat
// counters are credited per whole cycle since StartTime, and StartTime moves by
// exactly the consumed cycles so a partial cycle carries over to the next call.
// Calling Apply twice with the same now changes nothing the second time.
//
// changed is true whenever st was modified, including when a dangling active
// action is dropped (report is nil in that case).
func Apply(st *domain.PlayerState, now time.Time, cat *catalog.Catalog, curve *leveling.Curve) (report *domain.RewardReport, changed bool) {
	active := st.ActiveAction
	if active == nil {
		return nil, false
	}

	action, err := cat.Action(active.SkillName, active.ActionName)
	if err != nil {
		st.ActiveAction = nil
		return nil, true
	}

	nowMS := now.UnixMilli()
	xpElapsed := nowMS - active.XPCursor()
	if xpElapsed <= 0 {
		return nil, false
	}

	skill := active.SkillName
	progress := st.Skills[skill]
	if progress == nil {
		progress = &domain.SkillProgress{Level: 1}
		if st.Skills == nil {
			st.Skills = make(map[string]*domain.SkillProgress)
		}
		st.Skills[skill] = progress
	}

	report = &domain.RewardReport{
		Skill:    skill,
		Action:   action.ID,
		XPGained: curve.XPForDuration(xpElapsed, st.Settings.Mode()),
	}

	if completions := (nowMS - active.StartTime) / action.DurationMS; completions > 0 {
		report.Completions = completions
		report.CoinsGained = completions * action.Coins
		st.Coins += report.CoinsGained
		incrementStat(st, skill, action.StatKey, completions)
		active.StartTime += completions * action.DurationMS
	}

	active.LastAccrued = nowMS
	progress.XP += report.XPGained
	report.LevelUps = curve.Evaluate(skill, progress)
	return report, true
}

// grantExperience adds a fixed amount of experience and evaluates the skill
func grantExperience(st *domain.PlayerState, skill string, xp float64, curve *leveling.Curve) []domain.LevelUpEvent {
	progress := st.Skills[skill]
	if progress == nil {
		progress = &domain.SkillProgress{Level: 1}
		if st.Skills == nil {
			st.Skills = make(map[string]*domain.SkillProgress)
		}
		st.Skills[skill] = progress
	}
	progress.XP += xp
	return curve.Evaluate(skill, progress)
}

func incrementStat(st *domain.PlayerState, skill, key string, by int64) {
	if st.Stats == nil {
		st.Stats = make(map[string]map[string]int64)
	}
	counters := st.Stats[skill]
	if counters == nil {
		counters = make(map[string]int64)
		st.Stats[skill] = counters
	}
	counters[key] += by
}
