package models

import "time"

// UserProfile is the per-identity ledger record. It is created implicitly
// the first time an owner registers a document and is never deleted.
//
// DocumentCount is a monotonic counter: it equals the number of Document
// records created under the profile and doubles as the derivation index
// for the next document address.
type UserProfile struct {
	// Address is the derived ledger address of the profile.
	Address Address `json:"address"`

	// Owner is the identity key that controls the profile.
	Owner Identity `json:"owner"`

	// DocumentCount is the number of documents registered under the
	// profile. Starts at 0 and only ever increments.
	DocumentCount uint64 `json:"document_count"`

	// CreatedAt is the time the profile record was first written.
	CreatedAt time.Time `json:"created_at"`
}
