package config

import "time"

// Defaults applied when an environment variable is unset
const (
	DefaultPort                  = 8080
	DefaultServiceName           = "idletracker"
	DefaultStorageDriver         = "sqlite"
	DefaultSQLitePath            = "idletracker.db"
	DefaultProfileID             = "default"
	DefaultTickInterval          = 250 * time.Millisecond
	DefaultSaveInterval          = 5 * time.Second
	DefaultNotificationCacheSize = 50
	DefaultDBMaxConns            = 20
	DefaultDBMaxConnIdleTime     = 5 * time.Minute
	DefaultDBMaxConnLifetime     = 30 * time.Minute
	DefaultEventMaxRetries       = 5
	DefaultEventRetryDelay       = 2 * time.Second
	DefaultDeadLetterPath        = "logs/event_deadletter.jsonl"
	DefaultShutdownTimeout       = 10 * time.Second
	DefaultWorkerCount           = 2
)

// Storage drivers
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Environments
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)
