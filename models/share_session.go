// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ShareSession is the ledger record of one time-boxed disclosure grant for
// a (document, verifier) pair. Its address is derived from that pair, so at
// most one session exists per pair; re-sharing overwrites the record in
// place.
//
// Revoked is a one-way tombstone: once set it never flips back, and the
// record is never physically deleted. Expiry, by contrast, is computed from
// the clock at read time and never written back.
type ShareSession struct {
	// Address is the derived ledger address of the session.
	Address Address `json:"address"`

	// Owner is the identity that created the session. Only the owner may
	// revoke it.
	Owner Identity `json:"owner"`

	// Verifier is the identity authorized to request disclosure.
	Verifier Identity `json:"verifier"`

	// Document is the ledger address of the shared document.
	Document Address `json:"document"`

	// ConfidentialFieldHandle is the session-scoped vault handle. It is
	// re-keyed from the document's handle at session creation so that
	// vault grants are per-session, not per-document.
	ConfidentialFieldHandle string `json:"confidential_field_handle"`

	// CreatedAt is when the session was (last) created.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is CreatedAt plus the requested TTL. Always after CreatedAt.
	ExpiresAt time.Time `json:"expires_at"`

	// Revoked marks an explicit owner revocation.
	Revoked bool `json:"revoked"`

	// GrantPending is true while the second phase of the create-then-grant
	// sequence has not been confirmed against the vault. It is also set
	// again on revocation until the vault grant retraction is confirmed.
	GrantPending bool `json:"grant_pending"`
}

// StatusAt evaluates the session's state at the given instant.
//
// Revocation takes precedence over expiry: an explicit owner revoke is a
// stronger signal of intent than a passive timeout, so a session that is
// both revoked and past its expiry reports [ShareStatusRevoked].
func (s *ShareSession) StatusAt(now time.Time) ShareStatus {
	switch {
	case s.Revoked:
		return ShareStatusRevoked
	case now.After(s.ExpiresAt):
		return ShareStatusExpired
	default:
		return ShareStatusValid
	}
}
