package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgSkillNotFound  = "skill not found"
	ErrMsgActionNotFound = "action not found"
	ErrMsgTaskNotFound   = "task not found"
	ErrMsgTitleNotFound  = "title not found"
	ErrMsgGroupNotFound  = "skill group not found"
	ErrMsgInvalidCatalog = "invalid catalog"

	// Progression errors
	ErrMsgRequirementNotMet    = "level requirement not met"
	ErrMsgTaskAlreadyCompleted = "task already completed"
	ErrMsgActionLocked         = "action is locked"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgTitleNotOwned     = "title not owned"
	ErrMsgTitleAlreadyOwned = "title already owned"

	// Skill unlock errors
	ErrMsgSkillLocked      = "skill is locked"
	ErrMsgSkillTraining    = "skill is currently being trained"
	ErrMsgTooManySkills    = "too many unlocked skills"
	ErrMsgGroupExists      = "skill group already exists"
	ErrMsgNoActiveAction   = "no active action"
	ErrMsgSkillNotUnlocked = "skill is not unlocked"

	// Save errors
	ErrMsgInvalidSave   = "invalid save data"
	ErrMsgSaveNotFound  = "save not found"
	ErrMsgUnknownSchema = "unsupported schema version"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrSkillNotFound  = errors.New(ErrMsgSkillNotFound)
	ErrActionNotFound = errors.New(ErrMsgActionNotFound)
	ErrTaskNotFound   = errors.New(ErrMsgTaskNotFound)
	ErrTitleNotFound  = errors.New(ErrMsgTitleNotFound)
	ErrGroupNotFound  = errors.New(ErrMsgGroupNotFound)
	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)

	ErrRequirementNotMet    = errors.New(ErrMsgRequirementNotMet)
	ErrTaskAlreadyCompleted = errors.New(ErrMsgTaskAlreadyCompleted)
	ErrActionLocked         = errors.New(ErrMsgActionLocked)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrTitleNotOwned     = errors.New(ErrMsgTitleNotOwned)
	ErrTitleAlreadyOwned = errors.New(ErrMsgTitleAlreadyOwned)

	ErrSkillLocked      = errors.New(ErrMsgSkillLocked)
	ErrSkillTraining    = errors.New(ErrMsgSkillTraining)
	ErrTooManySkills    = errors.New(ErrMsgTooManySkills)
	ErrGroupExists      = errors.New(ErrMsgGroupExists)
	ErrNoActiveAction   = errors.New(ErrMsgNoActiveAction)
	ErrSkillNotUnlocked = errors.New(ErrMsgSkillNotUnlocked)

	ErrInvalidSave   = errors.New(ErrMsgInvalidSave)
	ErrSaveNotFound  = errors.New(ErrMsgSaveNotFound)
	ErrUnknownSchema = errors.New(ErrMsgUnknownSchema)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
