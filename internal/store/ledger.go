package store

import (
	"context"

	"github.com/privylocker/privy-locker/models"
)

// Ledger is the combined document and session view consumed by the
// sharing engine. It delegates to the underlying repositories without
// adding behaviour.
type Ledger struct {
	documents DocumentRepository
	sessions  SessionRepository
}

// NewLedger combines the document and session repositories into the
// engine-facing ledger facade.
func NewLedger(documents DocumentRepository, sessions SessionRepository) *Ledger {
	return &Ledger{
		documents: documents,
		sessions:  sessions,
	}
}

func (l *Ledger) GetDocument(ctx context.Context, addr models.Address) (models.Document, error) {
	return l.documents.Get(ctx, addr)
}

func (l *Ledger) GetSession(ctx context.Context, addr models.Address) (models.ShareSession, error) {
	return l.sessions.Get(ctx, addr)
}

func (l *Ledger) UpsertSession(ctx context.Context, session *models.ShareSession) error {
	return l.sessions.Upsert(ctx, session)
}

func (l *Ledger) MarkRevoked(ctx context.Context, addr models.Address) error {
	return l.sessions.MarkRevoked(ctx, addr)
}

func (l *Ledger) SetGrantPending(ctx context.Context, addr models.Address, pending bool) error {
	return l.sessions.SetGrantPending(ctx, addr, pending)
}
