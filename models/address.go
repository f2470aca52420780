// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"
)

// AddressLength is the size in bytes of every derived ledger address.
const AddressLength = 32

// Address is a 32-byte ledger address derived deterministically from the
// record's seed components (see the protocol package). Profiles, documents
// and share sessions are all stored and looked up by Address.
//
// The zero value is not a valid address of any record.
type Address [AddressLength]byte

// ErrInvalidAddress is returned by [ParseAddress] when the input is not a
// 64-character hex string.
var ErrInvalidAddress = errors.New("invalid ledger address")

// String returns the lowercase hex encoding of the address. This is the
// form used in URLs, share links and JSON payloads.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the all-zero value.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText implements [encoding.TextMarshaler] so that Address fields
// serialise as hex strings in JSON bodies.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements [driver.Valuer]; addresses are stored as hex text.
func (a Address) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements [sql.Scanner].
func (a *Address) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return a.UnmarshalText([]byte(v))
	case []byte:
		return a.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidAddress, src)
	}
}

// ParseAddress decodes a hex-encoded ledger address.
//
// Returns [ErrInvalidAddress] if the string is not valid hex or does not
// decode to exactly [AddressLength] bytes.
func ParseAddress(s string) (Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != AddressLength {
		return Address{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidAddress, len(raw), AddressLength)
	}

	var a Address
	copy(a[:], raw)
	return a, nil
}

// Identity is the opaque public key of an actor (owner or verifier).
// The ledger and the vault treat it as an exact-match string; no structure
// beyond non-emptiness is assumed.
type Identity string

// IsZero reports whether the identity is empty.
func (i Identity) IsZero() bool {
	return i == ""
}

// Bytes returns the raw byte representation used in address derivation.
func (i Identity) Bytes() []byte {
	return []byte(i)
}
