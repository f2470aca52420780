package vault

import "errors"

var (
	// ErrUnavailable is returned when the vault cannot be reached or
	// answers with a server-side failure.
	ErrUnavailable = errors.New("vault unavailable")

	// ErrDenied is returned when the vault rejects the operation: unknown
	// handle, missing grant or failed proof verification.
	ErrDenied = errors.New("vault denied operation")
)
