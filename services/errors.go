package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmailRequired      = errors.New("email is required")
	ErrNameRequired       = errors.New("name is required")
	ErrUserEmailConflict  = errors.New("email address is already in use")

	ErrRallyNameRequired     = errors.New("rally name is required")
	ErrRallyDatesRequired    = errors.New("rally start and end dates are required")
	ErrRallyInvalidDateRange = errors.New("rally end date must not be before start date")
	ErrRallyInvalidStatus    = errors.New("invalid rally status")
	ErrRallyNotFound         = errors.New("rally not found")

	ErrMemberNameRequired = errors.New("team member name is required")
	ErrTeamMemberNotFound = errors.New("team member not found")

	ErrAssignmentConflict = errors.New("team member is already assigned to this rally")
	ErrAssignmentNotFound = errors.New("team assignment not found")

	ErrScheduleTitleRequired = errors.New("schedule item title is required")
	ErrScheduleDateRequired  = errors.New("schedule item date is required")
	ErrScheduleInvalidType   = errors.New("invalid schedule item type")
	ErrScheduleItemNotFound  = errors.New("schedule item not found")

	ErrDocumentEmpty      = errors.New("document is empty")
	ErrDocumentInvalidKey = errors.New("document key does not belong to this rally")
	ErrStorageUnavailable = errors.New("document storage is not configured")
)
