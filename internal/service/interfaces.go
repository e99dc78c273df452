// SPDX-License-Identifier: Apache-2.0

// Package service implements the server-side business logic of formix:
// owner authentication, form lifecycle, submission ingestion into the
// connected spreadsheet, and provider account management.
package service

import (
	"context"
	"io"

	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/models"
)

// AuthService handles owner registration, credential verification, and JWT
// token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// FormService handles the form lifecycle and the public render contract.
type FormService interface {
	CreateForm(ctx context.Context, ownerID int64, req models.FormCreateRequest) (models.Form, error)
	GetForm(ctx context.Context, ownerID int64, formID string) (models.Form, error)
	ListForms(ctx context.Context, ownerID int64) ([]models.Form, error)
	UpdateForm(ctx context.Context, ownerID int64, formID string, req models.FormUpdateRequest) (models.Form, error)
	ArchiveForm(ctx context.Context, ownerID int64, formID string) error

	// GetSchema is the public, unauthenticated read used by embedded widgets.
	// Archived and unknown forms are indistinguishable to callers.
	GetSchema(ctx context.Context, formID string) (models.SchemaResponse, error)

	// EmbedSnippet renders the copy-paste embed snippet for a form.
	EmbedSnippet(ctx context.Context, formID string) (models.EmbedResponse, error)
}

// SubmissionService runs the ingestion pipeline and the owner-facing reads
// over recorded submissions.
type SubmissionService interface {
	// Ingest validates the payload, reconciles the sheet header, appends the
	// submission row, and records the submission. A non-empty idempotency key
	// makes replays return the originally recorded submission.
	Ingest(ctx context.Context, formID string, payload map[string]any, idempotencyKey, origin string) (models.Submission, error)

	ListSubmissions(ctx context.Context, ownerID int64, formID string, filter store.SubmissionFilter) (models.SubmissionPage, error)

	// ExportCSV streams every recorded submission of the form as CSV, with the
	// same column layout the spreadsheet uses.
	ExportCSV(ctx context.Context, ownerID int64, formID string, w io.Writer) error
}

// AccountService manages the provider OAuth grant of each owner.
type AccountService interface {
	// AuthCodeURL builds the consent URL for the owner, carrying a signed
	// state value that the callback verifies.
	AuthCodeURL(ctx context.Context, userID int64) (string, error)

	// HandleCallback verifies state, exchanges the code, and stores the grant.
	HandleCallback(ctx context.Context, state, code string) error

	// EnsureFreshAccount returns the owner's grant with a usable access token,
	// refreshing and persisting it first when it is absent or near expiry.
	EnsureFreshAccount(ctx context.Context, userID int64) (models.Account, error)

	// ForceRefresh refreshes the access token unconditionally. Used after the
	// provider rejects a token mid-flight.
	ForceRefresh(ctx context.Context, userID int64) (models.Account, error)

	// RefreshExpiring refreshes every stored grant whose access token expires
	// within the refresh buffer. Returns the number of refreshed grants.
	RefreshExpiring(ctx context.Context) (int, error)
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppBuildInfo
}
