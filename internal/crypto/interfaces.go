package crypto

// SealService owns all client-side document cryptography. It knows
// nothing about the network, the ledger or the blob relay; its only job
// is to derive keys and seal document bytes before they leave the client.
//
// Scheme:
//
//	Salt      = GenerateSalt()                   (once per client)
//	BlobKey   = DeriveBlobKey(passphrase, salt)  (in memory only)
//	Sealed    = SealBlob(document, BlobKey)      (uploaded to the relay)
//	Document  = OpenBlob(Sealed, BlobKey)        (after download)
type SealService interface {
	// GenerateSalt generates a random 16-byte salt. The salt is not a
	// secret and may be stored alongside the client state.
	GenerateSalt() ([]byte, error)

	// DeriveBlobKey derives a 256-bit sealing key from the owner's
	// passphrase and salt via Argon2id. The key exists only in client
	// memory and never reaches the server.
	DeriveBlobKey(passphrase string, salt []byte) []byte

	// SealBlob encrypts the document bytes with the blob key using
	// AES-256-GCM. The returned blob is nonce ‖ ciphertext and is safe to
	// hand to the relay; without the key it is random noise.
	SealBlob(plaintext, key []byte) ([]byte, error)

	// OpenBlob reverses SealBlob. Returns an error if authentication
	// fails, e.g. a wrong passphrase or a tampered blob.
	OpenBlob(sealed, key []byte) ([]byte, error)
}
