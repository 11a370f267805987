package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoAccountWasFound is returned when a lookup or update targets an
	// account that does not exist.
	ErrNoAccountWasFound = errors.New("no account was found")

	// ErrNoProfileWasFound is returned when a profile update targets an
	// account that has no profile row.
	ErrNoProfileWasFound = errors.New("no profile was found")

	// ErrNoTokenWasFound is returned when an API token key is unknown.
	ErrNoTokenWasFound = errors.New("no token was found")

	// ErrTokenKeyCollision is returned when a freshly generated token key
	// already belongs to another account.
	ErrTokenKeyCollision = errors.New("token key already exists")

	// ErrSessionNotFound is returned for missing or expired sessions.
	ErrSessionNotFound = errors.New("session was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan account row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan account rows")

	// ErrSessionStore is returned when the session store cannot be reached
	// or returns malformed data.
	ErrSessionStore = errors.New("session store error")
)
