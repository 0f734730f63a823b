package logger

import (
	"log/slog"
	"strings"
)

// Config selects the slog handler and the attributes every record carries
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config, filling blank identity fields and the format
// with their defaults.
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	c := Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
	if c.Format == "" {
		c.Format = LogFormatText
	}
	if c.ServiceName == "" {
		c.ServiceName = DefaultServiceName
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	return c
}

// LogLevel parses Level. Unknown values fall back to info.
func (c Config) LogLevel() slog.Level {
	text := strings.TrimSpace(c.Level)
	if strings.EqualFold(text, LogLevelWarning) {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(text)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// IsJSON reports whether records are written as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

func (c Config) identity() []any {
	return []any{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
