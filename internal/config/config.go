package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string `validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat   string `validate:"oneof=text json"`
	LogDir      string // when set, logs are also written to rotating session files here
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string
	APIKey      string // API key for mutating routes; empty disables the check

	TrustedProxies []string // peers whose X-Forwarded-For is believed

	StorageDriver string `validate:"oneof=sqlite postgres"`
	SQLitePath    string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int           `validate:"min=1"`
	DBMaxConnIdleTime time.Duration `validate:"min=1s"`
	DBMaxConnLifetime time.Duration `validate:"min=1s"`

	TickInterval          time.Duration `validate:"min=10ms,max=1m"`
	SaveInterval          time.Duration `validate:"min=100ms"`
	CatalogPath           string
	ProfileID             string `validate:"required,max=64"`
	NotificationCacheSize int    `validate:"min=1,max=10000"`

	EventDeadLetterPath string
	EventMaxRetries     int           `validate:"min=0,max=20"`
	EventRetryDelay     time.Duration `validate:"min=0"`
	WorkerCount         int           `validate:"min=1,max=64"`
	ShutdownTimeout     time.Duration `validate:"min=1s"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", ""),
		Environment: getEnv("ENVIRONMENT", EnvDev),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		StorageDriver: getEnv("STORAGE_DRIVER", DefaultStorageDriver),
		SQLitePath:    getEnv("SQLITE_PATH", DefaultSQLitePath),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "idletracker"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		TickInterval:          getEnvAsDuration("TICK_INTERVAL", DefaultTickInterval),
		SaveInterval:          getEnvAsDuration("SAVE_INTERVAL", DefaultSaveInterval),
		CatalogPath:           getEnv("CATALOG_PATH", ""),
		ProfileID:             getEnv("PROFILE_ID", DefaultProfileID),
		NotificationCacheSize: getEnvAsInt("NOTIFICATION_CACHE_SIZE", DefaultNotificationCacheSize),

		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),
		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		WorkerCount:         getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		ShutdownTimeout:     getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsInt parses an integer variable, falling back on absence or error
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a Go duration string, falling back on absence or error
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
