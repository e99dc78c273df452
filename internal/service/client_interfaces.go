// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/SAMAymen/formix/models"
)

// ClientSchemaService loads the render contract for the widget, preferring
// the live server copy and falling back to the local cache when offline.
type ClientSchemaService interface {
	// LoadSchema fetches the schema from the server and refreshes the cache.
	// When the server is unreachable it answers from the cache instead and
	// reports fromCache=true. Returns ErrSchemaUnavailable when neither source
	// can serve.
	LoadSchema(ctx context.Context, formID string) (schema models.SchemaResponse, fromCache bool, err error)
}

// ClientWidgetService owns the submission workflow of one widget instance:
// session token lifecycle, inline validation, payload shaping, cooldown, and
// the submit call itself.
type ClientWidgetService interface {
	// ResetSession issues a fresh session token, as on a widget reload.
	ResetSession() error

	// ValidateField checks the currently entered values of one field and
	// returns the inline error to display, or nil.
	ValidateField(field models.Field, values []string) error

	// ProcessFormData shapes the collected multimap into the JSON submission
	// payload: single values become scalars, multi-values arrays, and every
	// string is HTML-escaped.
	ProcessFormData(schema models.SchemaResponse, values map[string][]string) map[string]any

	// Submit validates the session and cooldown, shapes the payload, and posts
	// it. Returns ErrSessionExpired or ErrCooldownActive without any network
	// traffic when the local guards fail.
	Submit(ctx context.Context, schema models.SchemaResponse, values map[string][]string) (models.SubmitResponse, error)
}

// ClientDraftService persists partially filled forms across widget restarts.
type ClientDraftService interface {
	SaveDraft(ctx context.Context, formID string, values map[string][]string) error
	LoadDraft(ctx context.Context, formID string) (map[string][]string, error)
	ClearDraft(ctx context.Context, formID string) error
}
