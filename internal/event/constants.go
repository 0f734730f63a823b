package event

import "time"

// EventSchemaVersion is stamped on every published event
const EventSchemaVersion = "1.0"

// Reward sources carried in payloads and metadata
const (
	SourceAccrual = "accrual"
	SourceManual  = "manual"
	SourceTask    = "task"
)

const (
	// RetryQueueBufferSize caps events awaiting retry; overflow is dead-lettered
	RetryQueueBufferSize = 1000

	DeadLetterFilePermissions = 0644
)

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgEventDeadLettered     = "Event dead-lettered"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay doubles baseDelay for every attempt after the first.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
