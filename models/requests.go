package models

// RegisterDocumentRequest is the body of POST /api/documents. The blob must
// already be encrypted client-side and stored in the content store; the
// confidential field ciphertext is forwarded to the vault, which returns
// the handle stored on the Document record.
type RegisterDocumentRequest struct {
	// Fingerprint is the owner-assigned display label for the document.
	Fingerprint string `json:"fingerprint"`

	// EncryptedBlobURI is the content-store URI returned by the blob
	// upload endpoint.
	EncryptedBlobURI string `json:"encrypted_blob_uri"`

	// ConfidentialField is the ciphertext of the document's confidential
	// scalar, produced client-side for the vault's ingestion format.
	ConfidentialField []byte `json:"confidential_field"`
}

// CreateShareRequest is the body of POST /api/shares.
type CreateShareRequest struct {
	// Document is the ledger address of the document to share.
	Document Address `json:"document"`

	// Verifier is the identity to authorize. Must satisfy the server's
	// verifier policy.
	Verifier Identity `json:"verifier"`

	// TTLSeconds is the session lifetime. Must be positive; the handler
	// applies the default (3600) when omitted.
	TTLSeconds int64 `json:"ttl_seconds"`
}

// DisclosureRequest is the body of POST /api/shares/{address}/disclose.
// It is sent by the verifier, not the owner.
type DisclosureRequest struct {
	// Verifier is the identity requesting disclosure. It must equal the
	// session's verifier field exactly.
	Verifier Identity `json:"verifier"`

	// Proof is the verifier's signed proof-of-identity, forwarded opaquely
	// to the vault's decrypt interface.
	Proof []byte `json:"proof"`
}
