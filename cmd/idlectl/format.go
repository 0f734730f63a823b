package main

import (
	"fmt"
	"io"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/domain"
)

func printReport(out io.Writer, r *domain.RewardReport) {
	if r == nil || (r.XPGained == 0 && r.CoinsGained == 0 && r.Completions == 0) {
		return
	}
	fmt.Fprintf(out, "  +%.0f xp in %s", r.XPGained, r.Skill)
	if r.Completions > 0 {
		fmt.Fprintf(out, ", %d completions", r.Completions)
	}
	if r.CoinsGained > 0 {
		fmt.Fprintf(out, ", +%d coins", r.CoinsGained)
	}
	fmt.Fprintln(out)
	for _, lu := range r.LevelUps {
		fmt.Fprintf(out, "  Level up! %s is now level %d\n", lu.Skill, lu.NewLevel)
	}
}

func printActive(out io.Writer, a *domain.ActiveAction, now time.Time) {
	if a == nil {
		fmt.Fprintln(out, "Active: nothing")
		return
	}
	running := now.Sub(time.UnixMilli(a.StartTime)).Truncate(time.Second)
	fmt.Fprintf(out, "Active: %s / %s (current cycle %s)\n", a.SkillName, a.ActionName, running)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
