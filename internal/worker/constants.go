package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerJobPanic  = "Worker job panicked"
	LogMsgQueueFull       = "Worker queue full, dropping job"
)

// ============================================================================
// Log Messages - Tracker Jobs
// ============================================================================

// Log messages for the tick and save jobs
const (
	LogMsgTickFailed  = "Accrual tick failed"
	LogMsgSaveFlushed = "Flushed pending save"
)

// ============================================================================
// Job Names
// ============================================================================

// Names reported by the tracker jobs
const (
	JobNameTick = "accrual_tick"
	JobNameSave = "save_flush"
)
