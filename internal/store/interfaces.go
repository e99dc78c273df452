package store

import (
	"context"
	"time"

	"github.com/SAMAymen/formix/models"
)

// UserRepository persists form owners.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// FormRepository persists form definitions. Field order inside the stored
// JSON document is preserved verbatim; it is the spreadsheet column contract.
type FormRepository interface {
	CreateForm(ctx context.Context, form models.Form) (models.Form, error)
	GetForm(ctx context.Context, formID string) (models.Form, error)
	ListForms(ctx context.Context, ownerID int64) ([]models.Form, error)
	UpdateForm(ctx context.Context, form models.Form) (models.Form, error)
	ArchiveForm(ctx context.Context, formID string, ownerID int64) error
}

// SubmissionRepository persists recorded submissions. Submissions are
// insert-only; there is no update path.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission models.Submission) (models.Submission, error)
	FindByIdempotencyKey(ctx context.Context, formID, key string) (models.Submission, error)
	ListSubmissions(ctx context.Context, formID string, filter SubmissionFilter) ([]models.Submission, int64, error)
}

// SubmissionFilter narrows and pages a submission listing. The zero value
// lists everything (export path).
type SubmissionFilter struct {
	Since  time.Time
	Limit  uint64
	Offset uint64
}

// AccountRepository persists provider OAuth grants.
type AccountRepository interface {
	GetAccountByUser(ctx context.Context, userID int64, provider string) (models.Account, error)
	UpsertAccount(ctx context.Context, account models.Account) (models.Account, error)
	UpdateAccessToken(ctx context.Context, account models.Account) error
	ListExpiring(ctx context.Context, deadline time.Time) ([]models.Account, error)
}
