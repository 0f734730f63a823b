package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleTracker_Go/internal/config"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/repository"
	"github.com/osse101/IdleTracker_Go/internal/state"
	"github.com/osse101/IdleTracker_Go/internal/testing/fixtures"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Environment:         config.EnvDev,
		ServiceName:         config.DefaultServiceName,
		StorageDriver:       config.StorageSQLite,
		SQLitePath:          filepath.Join(dir, "saves.db"),
		ProfileID:           config.DefaultProfileID,
		EventDeadLetterPath: filepath.Join(dir, "events", "deadletter.jsonl"),
		EventMaxRetries:     1,
		EventRetryDelay:     time.Millisecond,
	}
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-0%d_00-00-00", i))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"session_2026-01-04_00-00-00.log",
		"session_2026-01-05_00-00-00.log",
		"notes.txt",
	}, names)
}

func TestSetupLogger_WritesSessionFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")

	closer, err := SetupLogger(cfg)
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	entries, err := os.ReadDir(cfg.LogDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(cfg.LogDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgStartingTracker)
}

func TestInitializeEventSystem_CreatesDeadLetterDir(t *testing.T) {
	cfg := testConfig(t)

	publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	defer publisher.Shutdown(context.Background())

	_, err = os.Stat(cfg.EventDeadLetterPath)
	assert.NoError(t, err)
}

func TestInitializeEventSystem_ReportsPendingDeadLetters(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.EventDeadLetterPath), 0o755))

	dl, err := event.NewDeadLetterWriter(cfg.EventDeadLetterPath)
	require.NoError(t, err)
	require.NoError(t, dl.Write(event.NewSimpleEvent(event.TaskCompleted, nil), 3, errors.New("bus down")))
	require.NoError(t, dl.Close())

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	defer publisher.Shutdown(context.Background())

	assert.Contains(t, buf.String(), LogMsgDeadLettersPending)
	assert.Contains(t, buf.String(), "count=1")
}

func TestOpenStorage_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	storage, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	defer storage.Close()

	require.NoError(t, storage.Saves.Ping(ctx))
	_, err = storage.Saves.Load(ctx, cfg.ProfileID)
	assert.ErrorIs(t, err, domain.ErrSaveNotFound)

	require.NoError(t, storage.Saves.Save(ctx, cfg.ProfileID, []byte(`{"schemaVersion":1}`)))
	data, err := storage.Saves.Load(ctx, cfg.ProfileID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"schemaVersion":1}`, string(data))
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageDriver = "mongo"

	_, err := OpenStorage(context.Background(), cfg)
	assert.ErrorContains(t, err, ErrMsgUnknownStorage)
}

func TestLoadCatalog(t *testing.T) {
	cfg := testConfig(t)

	cat, err := LoadCatalog(cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Skills)

	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = LoadCatalog(cfg)
	assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)
}

func TestGracefulShutdown_FlushesStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	storage, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)

	cat := fixtures.Catalog()
	store := state.NewStore(state.NewDefault(cat), repository.NewPersister(storage.Saves, cfg.ProfileID))
	publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)

	GracefulShutdown(ctx, ShutdownComponents{
		Store:              store,
		ResilientPublisher: publisher,
	})

	data, err := storage.Saves.Load(ctx, cfg.ProfileID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	require.NoError(t, storage.Close())
}
