package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for session log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older session logs kept beside the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingTracker     = "Starting IdleTracker"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgEventHandlersRegistered        = "Event handlers registered"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgDeadLettersPending             = "Undelivered events are waiting in the dead-letter file"
	LogMsgDeadLettersUnreadable          = "Dead-letter file could not be read"
)

// =============================================================================
// Catalog and Storage
// =============================================================================

const (
	LogMsgCatalogLoaded     = "Catalog loaded"
	LogMsgStorageOpened     = "Save storage opened"
	LogMsgSaveRejected      = "Stored save was unreadable, starting from a fresh save"
	ErrMsgFailedLoadCatalog = "failed to load catalog"
	ErrMsgFailedOpenStorage = "failed to open save storage"
	ErrMsgUnknownStorage    = "unknown storage driver"
)

// Player-facing notices
const (
	NoticeSaveFailed   = "Failed to save progress"
	NoticeSaveRejected = "Your save could not be read, a new game was started"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDown             = "Shutting down..."
	LogMsgServerStopped            = "Server stopped"
	LogMsgServerForcedShutdown     = "Server forced to shutdown"
	LogMsgFinalSaveFailed          = "Final save failed"
	LogMsgStorageCloseFailed       = "Closing save storage failed"
	LogMsgResilientPublisherFailed = "Resilient publisher shutdown failed"
)
