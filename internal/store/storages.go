package store

import "github.com/privylocker/privy-locker/internal/logger"

// Storages bundles every persistence dependency of the locker service.
type Storages struct {
	ProfileRepository  ProfileRepository
	DocumentRepository DocumentRepository
	SessionRepository  SessionRepository
	BlobStore          BlobStore
}

// NewStorages wires the ledger repositories and the blob store to one
// database connection.
func NewStorages(db *DB, blobStore BlobStore, logger *logger.Logger) *Storages {
	return &Storages{
		ProfileRepository:  NewProfileRepository(db, logger),
		DocumentRepository: NewDocumentRepository(db, logger),
		SessionRepository:  NewSessionRepository(db, logger),
		BlobStore:          blobStore,
	}
}
