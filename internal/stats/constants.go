package stats

// ============================================================================
// Selections
// ============================================================================

// SkillAll selects every skill in the stats view
const SkillAll = "all"

// ============================================================================
// Display
// ============================================================================

// Progress label formats, matching the skill page header
const (
	ProgressHoursFmt = "Total Hours: %.2f / %.2f"
	ProgressXPFmt    = "Total XP: %d / %d"
)
