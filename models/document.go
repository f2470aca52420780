package models

import "time"

// Document is the ledger record of one uploaded artifact. Immutable after
// creation; owners hide documents from their own view via the client-local
// preference store, never by mutating or deleting the ledger record.
type Document struct {
	// Address is the derived ledger address of the document, computed
	// from the owner's profile address and Index.
	Address Address `json:"address"`

	// Owner is the identity key that registered the document.
	Owner Identity `json:"owner"`

	// Fingerprint is an owner-assigned display label. Despite the name it
	// is NOT a cryptographic hash and carries no integrity guarantees.
	Fingerprint string `json:"fingerprint"`

	// EncryptedBlobURI is the content-store address of the encrypted
	// document bytes.
	EncryptedBlobURI string `json:"encrypted_blob_uri"`

	// ConfidentialFieldHandle is the opaque vault reference to the
	// document's encrypted scalar field.
	ConfidentialFieldHandle string `json:"confidential_field_handle"`

	// Index is the document's position in the owner's sequence. Together
	// with the profile address it determines Address.
	Index uint64 `json:"index"`

	// CreatedAt is the ledger creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}
