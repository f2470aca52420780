// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package protocol implements the document sharing and time-boxed
// disclosure protocol: deterministic ledger address derivation, share
// session creation with the two-phase vault grant, revocation, status
// evaluation and disclosure.
//
// The package is a pure request/response layer over the ledger and vault
// interfaces — it holds no mutable state of its own and never retries;
// transient-failure retry policy belongs to the caller.
package protocol

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/privylocker/privy-locker/models"
)

// Domain-separation seeds for address derivation. Each record kind hashes
// under its own seed so addresses of different kinds can never collide.
const (
	profileSeed  = "user-profile"
	documentSeed = "document"
	shareSeed    = "share"
)

// DeriveProfileAddress computes the ledger address of an owner's profile.
// Pure and deterministic: the same owner always yields the same address,
// so both sides of a flow can locate the profile without a lookup table.
func DeriveProfileAddress(owner models.Identity) models.Address {
	h := sha256.New()
	h.Write([]byte(profileSeed))
	h.Write(owner.Bytes())

	var addr models.Address
	copy(addr[:], h.Sum(nil))
	return addr
}

// DeriveDocumentAddress computes the ledger address of the index-th
// document under a profile. The index is encoded as 8 little-endian bytes.
func DeriveDocumentAddress(profile models.Address, index uint64) models.Address {
	var indexBytes [8]byte
	binary.LittleEndian.PutUint64(indexBytes[:], index)

	h := sha256.New()
	h.Write([]byte(documentSeed))
	h.Write(profile[:])
	h.Write(indexBytes[:])

	var addr models.Address
	copy(addr[:], h.Sum(nil))
	return addr
}

// DeriveShareAddress computes the ledger address of the share session for
// a (document, verifier) pair. Because the address is a function of the
// pair, at most one session can exist per pair, and owner and verifier can
// both compute the session location independently.
//
// The document address is a fixed 32 bytes, so distinct pairs always
// produce distinct pre-images and the derivation is injective.
func DeriveShareAddress(document models.Address, verifier models.Identity) models.Address {
	h := sha256.New()
	h.Write([]byte(shareSeed))
	h.Write(document[:])
	h.Write(verifier.Bytes())

	var addr models.Address
	copy(addr[:], h.Sum(nil))
	return addr
}
