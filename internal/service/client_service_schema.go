// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAMAymen/formix/internal/adapter"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/models"
)

// clientSchemaService is the concrete implementation of ClientSchemaService.
type clientSchemaService struct {
	api        adapter.WidgetAPI
	localStore store.LocalStore

	logger *logger.Logger
}

// NewClientSchemaService constructs a ClientSchemaService over the widget API
// and the local cache.
func NewClientSchemaService(api adapter.WidgetAPI, localStore store.LocalStore, logger *logger.Logger) ClientSchemaService {
	return &clientSchemaService{
		api:        api,
		localStore: localStore,
		logger:     logger,
	}
}

// LoadSchema implements [ClientSchemaService].
//
// The live fetch is authoritative: a fresh schema always replaces the cached
// copy, so a version change on the server invalidates the cache on the next
// successful load. The cache only answers when the server cannot.
func (c *clientSchemaService) LoadSchema(ctx context.Context, formID string) (models.SchemaResponse, bool, error) {
	log := logger.FromContext(ctx)

	schema, err := c.api.GetSchema(ctx, formID)
	if err == nil {
		normalizeSchema(&schema)
		if cacheErr := c.localStore.PutCachedSchema(ctx, schema); cacheErr != nil {
			log.Err(cacheErr).Str("form_id", formID).Msg("schema cache write failed")
		}
		return schema, false, nil
	}

	// A definitive answer from the server is not an outage; the cached copy
	// must not resurrect a deleted or archived form.
	if errors.Is(err, adapter.ErrNotFound) || errors.Is(err, adapter.ErrBadRequest) {
		if invErr := c.localStore.InvalidateSchema(ctx, formID); invErr != nil {
			log.Err(invErr).Str("form_id", formID).Msg("schema cache invalidation failed")
		}
		return models.SchemaResponse{}, false, err
	}

	log.Err(err).Str("form_id", formID).Msg("live schema fetch failed, trying cache")

	cached, cacheErr := c.localStore.GetCachedSchema(ctx, formID, "")
	if cacheErr != nil {
		if errors.Is(cacheErr, store.ErrSchemaCacheMiss) {
			return models.SchemaResponse{}, false, fmt.Errorf("%w: %w", ErrSchemaUnavailable, err)
		}
		return models.SchemaResponse{}, false, cacheErr
	}

	normalizeSchema(&cached)
	return cached, true, nil
}

// normalizeSchema re-applies field normalization. The server normalizes
// before serving, but cached copies may predate a rule change.
func normalizeSchema(schema *models.SchemaResponse) {
	for i := range schema.Fields {
		schema.Fields[i].Normalize()
	}
}
