// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for the outbound
// integrations of formix.
//
// On the server side it wraps the spreadsheet provider's REST surface
// ([SheetsAdapter] for the values API, [OAuthAdapter] for the token endpoint)
// and the owner notification channel ([Notifier]). On the widget side,
// [WidgetAPI] is the terminal client's view of the formix server itself.
//
// Error values defined in errors.go are mapped from HTTP status codes so that
// callers can use [errors.Is] for transport-agnostic error handling (e.g.
// [ErrPermissionDenied] for 403 from the provider).
package adapter

import (
	"context"
	"time"

	"github.com/SAMAymen/formix/models"
)

// SheetsAdapter is the ingestion pipeline's view of the spreadsheet values
// API. Implementations are responsible for serialisation, authentication
// header management, and mapping provider status codes to the sentinel errors
// of this package.
type SheetsAdapter interface {
	// ReadHeaderRow returns the first row of the sheet, or an empty slice when
	// the sheet has no header yet.
	ReadHeaderRow(ctx context.Context, accessToken, sheetID string) ([]string, error)

	// AppendRow appends one row after the sheet's current data region.
	AppendRow(ctx context.Context, accessToken, sheetID string, row []string) error
}

// OAuthAdapter wraps the provider's OAuth 2.0 endpoints.
type OAuthAdapter interface {
	// AuthCodeURL builds the user-consent URL carrying the given state value.
	AuthCodeURL(state string) string

	// ExchangeCode swaps an authorization code for a token set.
	ExchangeCode(ctx context.Context, code string) (models.Account, error)

	// RefreshToken exchanges a refresh token for a fresh access token and its
	// expiry. Returns [ErrGrantRevoked] when the provider rejects the grant.
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, expiry time.Time, err error)
}

// Notifier delivers the fire-and-forget owner notification after an accepted
// submission. Failures must never affect the submission outcome.
type Notifier interface {
	SubmissionReceived(ctx context.Context, to, formTitle string, submittedAt time.Time) error
}

// WidgetAPI is the terminal widget's view of the formix server.
type WidgetAPI interface {
	// GetSchema fetches the public render contract of a form. Transient
	// failures are retried a bounded number of times.
	GetSchema(ctx context.Context, formID string) (models.SchemaResponse, error)

	// Submit posts the processed submission payload. It is never retried;
	// resubmission is the user's decision.
	Submit(ctx context.Context, formID string, payload map[string]any, sessionToken string) (models.SubmitResponse, error)
}
