package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgDurationRequired      = "Provide either minutes or hours"
	ErrMsgEmptySettingsPatch    = "No settings to update"
	ErrMsgNotificationNotFound  = "Notification not found"
	ErrMsgReadBodyFailed        = "Failed to read request body"
)

// Success messages returned in JSON responses
const (
	MsgActionStopped      = "Action stopped"
	MsgTitleEquipped      = "Title equipped"
	MsgGroupCreated       = "Group created"
	MsgGroupDeleted       = "Group deleted"
	MsgSkillAssigned      = "Skill assigned"
	MsgSaveImported       = "Game Loaded Successfully!"
	MsgSaveReset          = "Game reset"
	MsgNotificationsClear = "Notifications cleared"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgSkillNotFoundError    = "Unknown skill"
	ErrMsgActionNotFoundError   = "Unknown action"
	ErrMsgTaskNotFoundError     = "Unknown task"
	ErrMsgTitleNotFoundError    = "Unknown title"
	ErrMsgGroupNotFoundError    = "Unknown skill group"
	ErrMsgRequirementError      = "Your level is too low for that"
	ErrMsgTaskDoneError         = "That task is already complete"
	ErrMsgActionLockedError     = "That action is locked. Level up the skill first"
	ErrMsgNotEnoughCoinsError   = "Not enough coins"
	ErrMsgTitleNotOwnedError    = "You don't own that title"
	ErrMsgTitleOwnedError       = "You already own that title"
	ErrMsgSkillLockedError      = "That skill is locked. Unlock it first"
	ErrMsgSkillTrainingError    = "Stop training that skill before locking it"
	ErrMsgTooManySkillsError    = "Too many unlocked skills"
	ErrMsgGroupExistsError      = "A group with that name already exists"
	ErrMsgNoActiveActionError   = "Nothing is being trained"
	ErrMsgSkillNotUnlockedError = "That skill is not unlocked"
	ErrMsgInvalidSaveError      = "Invalid save file. Please check the file and try again."
	ErrMsgUnknownSchemaError    = "That save was made by a newer version"
	ErrMsgInvalidInputError     = "Invalid input. Please check your values."
)
