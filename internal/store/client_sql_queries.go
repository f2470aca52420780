// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	clientSchema = `
		CREATE TABLE IF NOT EXISTS hidden_documents (
			address   TEXT PRIMARY KEY,
			hidden_at TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS client_meta (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);

		CREATE TABLE IF NOT EXISTS session_tokens (
			identity TEXT PRIMARY KEY,
			token    TEXT NOT NULL,
			saved_at TIMESTAMP NOT NULL
		);`

	hideDocument = `
		INSERT INTO hidden_documents (address, hidden_at)
		VALUES ($1, $2)
		ON CONFLICT (address) DO NOTHING;`

	unhideDocument = `
		DELETE FROM hidden_documents
		WHERE address = $1;`

	listHiddenDocuments = `
		SELECT address
		FROM hidden_documents
		ORDER BY hidden_at;`

	saveClientMeta = `
		INSERT INTO client_meta (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`

	getClientMeta = `
		SELECT value
		FROM client_meta
		WHERE key = $1;`

	saveSessionToken = `
		INSERT INTO session_tokens (identity, token, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (identity) DO UPDATE SET
			token = EXCLUDED.token,
			saved_at = EXCLUDED.saved_at;`

	getSessionToken = `
		SELECT token
		FROM session_tokens
		WHERE identity = $1;`
)

// sealingSaltKey is the client_meta key holding the sealing-key salt.
const sealingSaltKey = "sealing_salt"
