package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrValidationFailed wraps a per-field validation failure during
	// ingestion. The wrapped message names the offending field.
	ErrValidationFailed = errors.New("submission validation failed")

	// ErrNoSpreadsheetConnected means the form has no sheet id or its owner
	// has no linked provider account. Submissions cannot be accepted.
	ErrNoSpreadsheetConnected = errors.New("no spreadsheet connected")

	// ErrReconnectRequired means the stored grant can no longer be refreshed;
	// the owner must link the account again.
	ErrReconnectRequired = errors.New("account reconnect required")

	// ErrSheetPermissionDenied means the grant is alive but lacks access to
	// the connected spreadsheet.
	ErrSheetPermissionDenied = errors.New("spreadsheet permission denied")

	// ErrSheetNotFound means the connected spreadsheet id no longer resolves,
	// typically because the owner deleted it.
	ErrSheetNotFound = errors.New("spreadsheet not found")

	// ErrInvalidOAuthState means the state value on the OAuth callback did not
	// verify. The callback is dropped.
	ErrInvalidOAuthState = errors.New("invalid oauth state")
)
