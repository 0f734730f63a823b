package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/testing/fixtures"
)

func TestMigrateV0ToV1(t *testing.T) {
	d := &document{}
	require.NoError(t, migrateV0ToV1(d, fixtures.Catalog()))

	assert.NotNil(t, d.Stats)
	require.NotNil(t, d.Coins)
	assert.Equal(t, int64(0), *d.Coins)
	assert.Equal(t, []string{fixtures.SkillChopping, fixtures.SkillReading}, d.UnlockedSkills)
}

func TestMigrateV0ToV1_KeepsExisting(t *testing.T) {
	coins := int64(12)
	d := &document{Coins: &coins, UnlockedSkills: []string{fixtures.SkillReading}}
	require.NoError(t, migrateV0ToV1(d, fixtures.Catalog()))

	assert.Equal(t, int64(12), *d.Coins)
	assert.Equal(t, []string{fixtures.SkillReading}, d.UnlockedSkills)
}

func TestMigrateV1ToV2(t *testing.T) {
	d := &document{Settings: &settingsDocument{}}
	require.NoError(t, migrateV1ToV2(d, fixtures.Catalog()))

	assert.Equal(t, []string{fixtures.SkillChopping}, d.SkillGroups["Hobbies"])
	assert.NotNil(t, d.CollapsedSkillGroups)
	require.NotNil(t, d.Settings.GroupSkillsInSidebar)
	assert.True(t, *d.Settings.GroupSkillsInSidebar)
}

func TestMigrateV2ToV3(t *testing.T) {
	dark := "dark"
	d := &document{
		Settings:       &settingsDocument{Theme: &dark},
		CompletedTasks: json.RawMessage(`["chopping_pickStick"]`),
		XPThresholds:   []float64{0, 1, 2},
	}
	require.NoError(t, migrateV2ToV3(d, fixtures.Catalog()))

	assert.Nil(t, d.Settings.Theme)
	require.NotNil(t, d.Settings.UseDarkMode)
	assert.True(t, *d.Settings.UseDarkMode)
	assert.Equal(t, domain.DefaultNotificationDuration, *d.Settings.NotificationDuration)
	assert.Equal(t, domain.TitleNone, *d.EquippedTitle)
	assert.Nil(t, d.XPThresholds)
	assert.Equal(t, map[string][]string{fixtures.SkillChopping: {fixtures.TaskPickStick}}, d.completed)
}

func TestMigrateV2ToV3_BadCompletedTasks(t *testing.T) {
	d := &document{Settings: &settingsDocument{}, CompletedTasks: json.RawMessage(`[1, 2]`)}
	assert.ErrorIs(t, migrateV2ToV3(d, fixtures.Catalog()), domain.ErrInvalidSave)
}

func TestMigrate_Chain(t *testing.T) {
	d := &document{Settings: &settingsDocument{}}
	require.NoError(t, migrate(d, fixtures.Catalog()))
	assert.Equal(t, domain.SchemaVersion, d.version())

	current := domain.SchemaVersion
	d = &document{SchemaVersion: &current, Settings: &settingsDocument{}}
	require.NoError(t, migrate(d, fixtures.Catalog()))
	assert.Nil(t, d.SkillGroups, "current documents are not migrated")
}
