package middleware

// Log messages
const (
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgPanicRecovered   = "Recovered from handler panic"
)

// HeaderRequestID echoes the request id back to the caller
const HeaderRequestID = "X-Request-ID"

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"

// quietPrefixes are probe and scrape paths that are not logged
var quietPrefixes = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// secretHeaders are never logged verbatim
var secretHeaders = []string{
	"X-API-Key",
	"Authorization",
}
