package logger

// Accepted LOG_LEVEL values. "warning" is read as warn.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Accepted LOG_FORMAT values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Fallbacks for blank Config fields
const (
	DefaultServiceName = "idle-tracker"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
)

// Keys of the attributes stamped on records
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
