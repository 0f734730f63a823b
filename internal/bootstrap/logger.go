package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/config"
	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// SetupLogger installs the default logger. Output always goes to stdout; when
// cfg.LogDir is set it is also appended to a timestamped session file there.
// The returned closer must be closed on exit.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	addSource := cfg.Environment == config.EnvDev
	loggerConfig := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource)

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if cfg.LogDir != "" {
		logFile, err := openSessionLog(cfg.LogDir, time.Now())
		if err != nil {
			return nil, err
		}
		out = io.MultiWriter(os.Stdout, logFile)
		closer = logFile
	}

	logger.InitLoggerWithWriter(loggerConfig, out)

	slog.Info(LogMsgLoggingInitialized, "level", loggerConfig.LogLevel(), "log_dir", cfg.LogDir)
	slog.Info(LogMsgStartingTracker,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"storage", cfg.StorageDriver)
	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"profile", cfg.ProfileID,
		"tick_interval", cfg.TickInterval,
		"save_interval", cfg.SaveInterval,
		"auth_enabled", cfg.APIKey != "")

	return closer, nil
}

func openSessionLog(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(dir, LogFileRetentionCount)

	name := filepath.Join(dir, fmt.Sprintf(LogFileNamePattern, now.Format(LogFileTimestampFormat)))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
	}
	return f, nil
}

// cleanupLogs deletes the oldest session logs until at most keep remain.
// Session file names sort chronologically.
func cleanupLogs(dir string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
