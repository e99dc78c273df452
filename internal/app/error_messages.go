// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// formix server handlers and the widget client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies, widget panels, or log entries to describe the outcome
// of an operation. Keeping them in one place ensures consistent wording
// throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when a request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing owner record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgNoUserIDProvided is returned when a handler requires an owner ID
	// (extracted from the JWT claim) but none is present in the request
	// context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgFormNotFound is returned when a form id does not resolve to a live
	// form visible to the caller.
	MsgFormNotFound = "form not found"

	// MsgSubmissionAccepted is the default success message on the ingestion
	// endpoint; form owners can override it with SubmitText.
	MsgSubmissionAccepted = "Thank you! Your response has been recorded."

	// MsgFormConfigurationError is returned when a submission arrives for a
	// form that has no connected spreadsheet.
	MsgFormConfigurationError = "form configuration error: no spreadsheet connected"

	// MsgReconnectRequired is returned when the owner's stored grant can no
	// longer be refreshed and the account must be linked again.
	MsgReconnectRequired = "spreadsheet access expired, the form owner must reconnect"

	// MsgSheetPermissionDenied is returned when the grant lacks access to the
	// connected spreadsheet.
	MsgSheetPermissionDenied = "permission to the connected spreadsheet was denied"

	// MsgSheetNotFound is returned when the connected spreadsheet no longer
	// exists.
	MsgSheetNotFound = "the connected spreadsheet could not be found"

	// MsgSecurityValidationFailed is shown by the widget when its session
	// token has expired; reloading the widget issues a fresh one.
	MsgSecurityValidationFailed = "security validation failed, please reload the form"

	// MsgCooldownActive is shown by the widget when a second submission is
	// attempted within the cooldown window.
	MsgCooldownActive = "please wait a few seconds before submitting again"

	// MsgOfflineSchema is shown by the widget when the server is unreachable
	// and a cached schema is rendered instead.
	MsgOfflineSchema = "offline: showing the last known version of this form"
)
