package economy

// Formatted error messages
const (
	ErrMsgTitleRequirementFmt  = "%w: %s requires %s level %d, have %d"
	ErrMsgInsufficientFundsFmt = "%w: %s costs %d, balance %d"
	ErrMsgFlushFailedFmt       = "failed to flush accrual: %w"
)

// Log messages
const (
	LogMsgTitlePurchased = "Title purchased"
	LogMsgTitleEquipped  = "Title equipped"
)
