package store

import "errors"

// Sentinel errors of the client-local state store.
var (
	// ErrLocalSaltNotFound is returned when the client has not generated a
	// sealing-key salt yet.
	ErrLocalSaltNotFound = errors.New("local sealing salt not found")

	// ErrLocalTokenNotFound is returned when no bearer token is cached for
	// the identity.
	ErrLocalTokenNotFound = errors.New("local token not found")
)
