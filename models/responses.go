package models

import "time"

// BlobUploadResponse is returned by POST /api/blobs with the content-store
// URI of the stored blob.
type BlobUploadResponse struct {
	URI string `json:"uri"`
}

// ShareStatusResponse is the public verification view of a share session.
// Only non-sensitive fields are exposed: the confidential-field handle and
// grant state stay server-side.
type ShareStatusResponse struct {
	Status ShareStatus `json:"status"`

	// The fields below are populated only when Status != not_found.
	Owner     Identity  `json:"owner,omitempty"`
	Verifier  Identity  `json:"verifier,omitempty"`
	Document  Address   `json:"document,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// DisclosureResponse carries the disclosed confidential scalar back to an
// authorized verifier.
type DisclosureResponse struct {
	Plaintext string `json:"plaintext"`
}

// ErrorResponse is the uniform JSON error body produced by the HTTP layer.
type ErrorResponse struct {
	Error string `json:"error"`
}
