package adapter

import "errors"

// Provider-facing sentinel errors.
var (
	// ErrTokenRejected is returned when the provider rejects the access token
	// (HTTP 401). The caller should refresh and retry once.
	ErrTokenRejected = errors.New("provider rejected access token")

	// ErrPermissionDenied is returned when the grant lacks access to the
	// spreadsheet (HTTP 403).
	ErrPermissionDenied = errors.New("spreadsheet permission denied")

	// ErrSpreadsheetNotFound is returned when the spreadsheet id does not
	// resolve (HTTP 404).
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

	// ErrGrantRevoked is returned when a refresh-token exchange fails because
	// the user revoked the grant. Recovery requires re-linking the account.
	ErrGrantRevoked = errors.New("oauth grant revoked")
)

// Widget-facing sentinel errors, mapped from formix server status codes.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("client unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrTooMany      = errors.New("too many requests")
	ErrServerError  = errors.New("server error")
)
