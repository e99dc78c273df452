package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new
	// owner fails because the login is already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrFormNotFound is returned when a form lookup by id produces no row.
	// Archived forms are treated as not found by the public read paths.
	ErrFormNotFound = errors.New("form not found")

	// ErrAccountNotFound is returned when the owner has no linked provider
	// account.
	ErrAccountNotFound = errors.New("no linked account was found")

	// ErrDuplicateSubmission is returned when an INSERT collides with an
	// already-recorded idempotency key for the same form.
	ErrDuplicateSubmission = errors.New("submission already recorded")

	// ErrSubmissionNotFound is returned when an idempotency-key lookup
	// produces no row.
	ErrSubmissionNotFound = errors.New("submission not found")
)

// Client-side sentinel errors for the widget local store.
var (
	// ErrSchemaCacheMiss is returned when no cached schema exists for the form
	// or the cached copy carries a different version than requested.
	ErrSchemaCacheMiss = errors.New("schema not in cache")

	// ErrDraftNotFound is returned when no saved draft exists for the form.
	ErrDraftNotFound = errors.New("draft not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
