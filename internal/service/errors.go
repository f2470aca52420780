package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields or carries values that fail basic validation.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrTokenCreationFailed is returned when signing a new JWT fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is the normalised failure for any token
	// that does not pass validation, so callers do not need to inspect
	// low-level JWT errors.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrRegistrationContention is returned when a document registration
	// keeps losing the index race against concurrent registrations by the
	// same owner.
	ErrRegistrationContention = errors.New("document registration lost index race repeatedly")
)
