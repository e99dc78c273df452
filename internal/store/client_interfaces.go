package store

import (
	"context"

	"github.com/SAMAymen/formix/models"
)

// LocalStore is the widget-side persistence surface: a schema cache so the
// widget can render without a round-trip, and a draft store so typed-in values
// survive a restart.
type LocalStore interface {
	// GetCachedSchema returns the cached schema for the form. When version is
	// non-empty and the cached copy carries a different version, the cache
	// entry is treated as stale and [ErrSchemaCacheMiss] is returned.
	GetCachedSchema(ctx context.Context, formID, version string) (models.SchemaResponse, error)
	// PutCachedSchema replaces the cached schema for its form.
	PutCachedSchema(ctx context.Context, schema models.SchemaResponse) error
	// InvalidateSchema drops the cached schema for the form, if any.
	InvalidateSchema(ctx context.Context, formID string) error

	// RecordSubmission appends a sent submission to the local history. The
	// history is advisory only; the server's record is authoritative.
	RecordSubmission(ctx context.Context, formID string, payload map[string]any) error
	// RecentSubmissions returns up to limit locally recorded submissions for
	// the form, newest first.
	RecentSubmissions(ctx context.Context, formID string, limit int) ([]models.Submission, error)

	// SaveDraft replaces the saved draft values for the form.
	SaveDraft(ctx context.Context, formID string, values map[string][]string) error
	// LoadDraft returns the saved draft values, or [ErrDraftNotFound].
	LoadDraft(ctx context.Context, formID string) (map[string][]string, error)
	// ClearDraft removes the saved draft, if any.
	ClearDraft(ctx context.Context, formID string) error

	// Close releases the underlying database handle.
	Close() error
}
