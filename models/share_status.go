package models

// ShareStatus is the evaluated state of a share session at a point in time.
type ShareStatus string

const (
	// ShareStatusValid means the session exists, is not revoked, and has
	// not yet expired. Disclosure requests are accepted.
	ShareStatusValid ShareStatus = "valid"

	// ShareStatusRevoked means the owner explicitly revoked the session.
	// Terminal: the session never returns to valid.
	ShareStatusRevoked ShareStatus = "revoked"

	// ShareStatusExpired means the clock has passed the session's
	// expires_at. Computed at read time, never stored.
	ShareStatusExpired ShareStatus = "expired"

	// ShareStatusNotFound means no session record exists at the queried
	// address.
	ShareStatusNotFound ShareStatus = "not_found"
)

// Terminal reports whether the status rejects disclosure requests.
func (s ShareStatus) Terminal() bool {
	return s != ShareStatusValid
}
