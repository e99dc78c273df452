// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/SAMAymen/formix/internal/adapter"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.LocalStore
// ─────────────────────────────────────────────

type mockLocalStore struct {
	getCachedSchemaFn  func(ctx context.Context, formID, version string) (models.SchemaResponse, error)
	putCachedSchemaFn  func(ctx context.Context, schema models.SchemaResponse) error
	invalidateSchemaFn func(ctx context.Context, formID string) error
	recordSubmissionFn func(ctx context.Context, formID string, payload map[string]any) error
	saveDraftFn        func(ctx context.Context, formID string, values map[string][]string) error
	loadDraftFn        func(ctx context.Context, formID string) (map[string][]string, error)
	clearDraftFn       func(ctx context.Context, formID string) error
}

func (m *mockLocalStore) GetCachedSchema(ctx context.Context, formID, version string) (models.SchemaResponse, error) {
	if m.getCachedSchemaFn != nil {
		return m.getCachedSchemaFn(ctx, formID, version)
	}
	return models.SchemaResponse{}, store.ErrSchemaCacheMiss
}

func (m *mockLocalStore) PutCachedSchema(ctx context.Context, schema models.SchemaResponse) error {
	if m.putCachedSchemaFn != nil {
		return m.putCachedSchemaFn(ctx, schema)
	}
	return nil
}

func (m *mockLocalStore) InvalidateSchema(ctx context.Context, formID string) error {
	if m.invalidateSchemaFn != nil {
		return m.invalidateSchemaFn(ctx, formID)
	}
	return nil
}

func (m *mockLocalStore) RecordSubmission(ctx context.Context, formID string, payload map[string]any) error {
	if m.recordSubmissionFn != nil {
		return m.recordSubmissionFn(ctx, formID, payload)
	}
	return nil
}

func (m *mockLocalStore) RecentSubmissions(_ context.Context, _ string, _ int) ([]models.Submission, error) {
	return nil, nil
}

func (m *mockLocalStore) SaveDraft(ctx context.Context, formID string, values map[string][]string) error {
	if m.saveDraftFn != nil {
		return m.saveDraftFn(ctx, formID, values)
	}
	return nil
}

func (m *mockLocalStore) LoadDraft(ctx context.Context, formID string) (map[string][]string, error) {
	if m.loadDraftFn != nil {
		return m.loadDraftFn(ctx, formID)
	}
	return nil, store.ErrDraftNotFound
}

func (m *mockLocalStore) ClearDraft(ctx context.Context, formID string) error {
	if m.clearDraftFn != nil {
		return m.clearDraftFn(ctx, formID)
	}
	return nil
}

func (m *mockLocalStore) Close() error {
	return nil
}

// ─────────────────────────────────────────────
// LoadSchema
// ─────────────────────────────────────────────

func TestClientSchemaService_LoadSchema_LiveFetchRefreshesCache(t *testing.T) {
	live := models.SchemaResponse{FormID: "form-1", Title: "Contact", Version: "100"}
	api := &mockWidgetAPI{
		getSchemaFn: func(_ context.Context, formID string) (models.SchemaResponse, error) {
			assert.Equal(t, "form-1", formID)
			return live, nil
		},
	}

	var cachedVersion string
	local := &mockLocalStore{
		putCachedSchemaFn: func(_ context.Context, schema models.SchemaResponse) error {
			cachedVersion = schema.Version
			return nil
		},
	}

	svc := NewClientSchemaService(api, local, logger.Nop())

	schema, fromCache, err := svc.LoadSchema(context.Background(), "form-1")

	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, "Contact", schema.Title)
	assert.Equal(t, "100", cachedVersion)
}

func TestClientSchemaService_LoadSchema_CacheWriteFailureIsNotFatal(t *testing.T) {
	api := &mockWidgetAPI{
		getSchemaFn: func(_ context.Context, _ string) (models.SchemaResponse, error) {
			return models.SchemaResponse{FormID: "form-1"}, nil
		},
	}
	local := &mockLocalStore{
		putCachedSchemaFn: func(_ context.Context, _ models.SchemaResponse) error {
			return errors.New("disk full")
		},
	}

	svc := NewClientSchemaService(api, local, logger.Nop())

	_, fromCache, err := svc.LoadSchema(context.Background(), "form-1")

	require.NoError(t, err)
	assert.False(t, fromCache)
}

func TestClientSchemaService_LoadSchema_OutageFallsBackToCache(t *testing.T) {
	api := &mockWidgetAPI{
		getSchemaFn: func(_ context.Context, _ string) (models.SchemaResponse, error) {
			return models.SchemaResponse{}, errors.New("dial tcp: connection refused")
		},
	}
	local := &mockLocalStore{
		getCachedSchemaFn: func(_ context.Context, formID, version string) (models.SchemaResponse, error) {
			assert.Equal(t, "form-1", formID)
			assert.Empty(t, version, "an offline fallback accepts any cached version")
			return models.SchemaResponse{FormID: "form-1", Title: "Cached"}, nil
		},
	}

	svc := NewClientSchemaService(api, local, logger.Nop())

	schema, fromCache, err := svc.LoadSchema(context.Background(), "form-1")

	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, "Cached", schema.Title)
}

func TestClientSchemaService_LoadSchema_NothingToServe(t *testing.T) {
	api := &mockWidgetAPI{
		getSchemaFn: func(_ context.Context, _ string) (models.SchemaResponse, error) {
			return models.SchemaResponse{}, errors.New("dial tcp: connection refused")
		},
	}

	svc := NewClientSchemaService(api, &mockLocalStore{}, logger.Nop())

	_, _, err := svc.LoadSchema(context.Background(), "form-1")

	require.ErrorIs(t, err, ErrSchemaUnavailable)
}

func TestClientSchemaService_LoadSchema_DefinitiveNotFoundInvalidatesCache(t *testing.T) {
	api := &mockWidgetAPI{
		getSchemaFn: func(_ context.Context, _ string) (models.SchemaResponse, error) {
			return models.SchemaResponse{}, adapter.ErrNotFound
		},
	}

	invalidated := false
	cacheRead := false
	local := &mockLocalStore{
		invalidateSchemaFn: func(_ context.Context, formID string) error {
			invalidated = true
			assert.Equal(t, "form-1", formID)
			return nil
		},
		getCachedSchemaFn: func(_ context.Context, _, _ string) (models.SchemaResponse, error) {
			cacheRead = true
			return models.SchemaResponse{}, nil
		},
	}

	svc := NewClientSchemaService(api, local, logger.Nop())

	_, _, err := svc.LoadSchema(context.Background(), "form-1")

	require.ErrorIs(t, err, adapter.ErrNotFound)
	assert.True(t, invalidated, "a deleted form must drop its cached schema")
	assert.False(t, cacheRead, "a definitive answer must not fall back to the cache")
}
