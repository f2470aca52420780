package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against
// these values.
var (
	// ErrProfileNotFound is returned when no user profile exists at the
	// queried address.
	ErrProfileNotFound = errors.New("user profile was not found")

	// ErrDocumentNotFound is returned when no document record exists at
	// the queried address.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrSessionNotFound is returned when no share session record exists
	// at the queried address.
	ErrSessionNotFound = errors.New("share session was not found")

	// ErrDocumentIndexConflict is returned when inserting a document whose
	// index does not match the profile's current document_count, meaning a
	// concurrent registration claimed the slot first.
	ErrDocumentIndexConflict = errors.New("document index conflicts with profile counter")

	// ErrBlobNotFound is returned by the blob store when no file exists
	// for the requested URI.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrInvalidBlobURI is returned when a blob URI contains path
	// separators or otherwise escapes the store directory.
	ErrInvalidBlobURI = errors.New("invalid blob uri")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// ledger database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at
	// this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a
	// single result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan ledger row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan ledger rows")
)
