package leveling

import "github.com/osse101/IdleTracker_Go/internal/domain"

// Evaluate promotes the skill while its experience covers the next threshold
// and returns one event per level gained. Experience is never consumed and the
// level never decreases.
func (c *Curve) Evaluate(skill string, p *domain.SkillProgress) []domain.LevelUpEvent {
	if p == nil {
		return nil
	}
	if p.Level < 1 {
		p.Level = 1
	}

	var events []domain.LevelUpEvent
	for p.Level < domain.MaxLevel && p.XP >= c.thresholds[p.Level+1] {
		p.Level++
		events = append(events, domain.LevelUpEvent{Skill: skill, NewLevel: p.Level})
	}
	return events
}
