package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
	// DefaultSQLiteBusyTimeoutMS bounds how long a writer waits on a locked file
	DefaultSQLiteBusyTimeoutMS = 5000
)

// Supported storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToOpenSQLite      = "failed to open sqlite database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgUnknownDriver           = "unknown storage driver"
)

// Log Messages
const (
	LogMsgConnectedToPostgres = "Connected to postgres"
	LogMsgOpenedSQLite        = "Opened sqlite database"
	LogMsgMigrationApplied    = "Applied migration"
)
