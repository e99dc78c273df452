// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SAMAymen/formix/internal/app"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/service"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock SubmissionService
// ─────────────────────────────────────────────

// mockSubmissionService implements service.SubmissionService for unit tests.
// Each method field can be overridden per test case.
type mockSubmissionService struct {
	ingestFn          func(ctx context.Context, formID string, payload map[string]any, idempotencyKey, origin string) (models.Submission, error)
	listSubmissionsFn func(ctx context.Context, ownerID int64, formID string, filter store.SubmissionFilter) (models.SubmissionPage, error)
	exportCSVFn       func(ctx context.Context, ownerID int64, formID string, w io.Writer) error
}

func (m *mockSubmissionService) Ingest(ctx context.Context, formID string, payload map[string]any, idempotencyKey, origin string) (models.Submission, error) {
	if m.ingestFn != nil {
		return m.ingestFn(ctx, formID, payload, idempotencyKey, origin)
	}
	return models.Submission{SubmissionID: 1, CreatedAt: time.Now()}, nil
}

func (m *mockSubmissionService) ListSubmissions(ctx context.Context, ownerID int64, formID string, filter store.SubmissionFilter) (models.SubmissionPage, error) {
	if m.listSubmissionsFn != nil {
		return m.listSubmissionsFn(ctx, ownerID, formID, filter)
	}
	return models.SubmissionPage{}, nil
}

func (m *mockSubmissionService) ExportCSV(ctx context.Context, ownerID int64, formID string, w io.Writer) error {
	if m.exportCSVFn != nil {
		return m.exportCSVFn(ctx, ownerID, formID, w)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newHandlerWithSubmissions(submissions service.SubmissionService) *Handler {
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			SubmissionService: submissions,
		},
	}
}

// newSubmitRequest builds a POST request for the ingestion endpoint with the
// chi route context carrying formID, the way the router would.
func newSubmitRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/forms/form-1/submissions", strings.NewReader(body))

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("formID", "form-1")
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.SubmitResponse {
	t.Helper()
	var resp models.SubmitResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ─────────────────────────────────────────────
// submit — success
// ─────────────────────────────────────────────

func TestSubmit_Success(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	submissions := &mockSubmissionService{
		ingestFn: func(_ context.Context, formID string, payload map[string]any, _, origin string) (models.Submission, error) {
			assert.Equal(t, "form-1", formID)
			assert.Equal(t, "Alice", payload["f1"])
			assert.Equal(t, "https://example.com", origin)
			return models.Submission{SubmissionID: 1, CreatedAt: createdAt}, nil
		},
	}

	h := newHandlerWithSubmissions(submissions)
	req := newSubmitRequest(`{"f1":"Alice"}`)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	h.submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, app.MsgSubmissionAccepted, resp.Message)
	assert.Equal(t, "2026-03-14T09:26:53Z", resp.Timestamp)
}

func TestSubmit_OriginFromPayloadField(t *testing.T) {
	var gotOrigin string
	var gotPayload map[string]any
	submissions := &mockSubmissionService{
		ingestFn: func(_ context.Context, _ string, payload map[string]any, _, origin string) (models.Submission, error) {
			gotOrigin = origin
			gotPayload = payload
			return models.Submission{CreatedAt: time.Now()}, nil
		},
	}

	h := newHandlerWithSubmissions(submissions)
	rec := httptest.NewRecorder()

	h.submit(rec, newSubmitRequest(`{"f1":"Alice","_origin":"https://fallback.example.com"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://fallback.example.com", gotOrigin)
	assert.NotContains(t, gotPayload, "_origin")
}

func TestSubmit_OriginHeaderWinsOverPayloadField(t *testing.T) {
	var gotOrigin string
	submissions := &mockSubmissionService{
		ingestFn: func(_ context.Context, _ string, _ map[string]any, _, origin string) (models.Submission, error) {
			gotOrigin = origin
			return models.Submission{CreatedAt: time.Now()}, nil
		},
	}

	h := newHandlerWithSubmissions(submissions)
	req := newSubmitRequest(`{"f1":"Alice","_origin":"https://fallback.example.com"}`)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	h.submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com", gotOrigin)
}

// ─────────────────────────────────────────────
// submit — malformed body
// ─────────────────────────────────────────────

// TestSubmit_MalformedJSON verifies that a body that does not parse still
// answers with the structured envelope, and that the pipeline is never
// entered.
func TestSubmit_MalformedJSON(t *testing.T) {
	ingestCalled := false
	submissions := &mockSubmissionService{
		ingestFn: func(_ context.Context, _ string, _ map[string]any, _, _ string) (models.Submission, error) {
			ingestCalled = true
			return models.Submission{}, nil
		},
	}

	h := newHandlerWithSubmissions(submissions)
	rec := httptest.NewRecorder()

	h.submit(rec, newSubmitRequest(`{not json`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, app.MsgInvalidDataProvided, resp.Error)
	assert.NotEmpty(t, resp.Timestamp)
	assert.False(t, ingestCalled)
}

// ─────────────────────────────────────────────
// submit — idempotency key extraction
// ─────────────────────────────────────────────

func TestSubmit_IdempotencyKeyFromHeader(t *testing.T) {
	var gotKey string
	submissions := &mockSubmissionService{
		ingestFn: func(_ context.Context, _ string, _ map[string]any, idempotencyKey, _ string) (models.Submission, error) {
			gotKey = idempotencyKey
			return models.Submission{CreatedAt: time.Now()}, nil
		},
	}

	h := newHandlerWithSubmissions(submissions)
	req := newSubmitRequest(`{"f1":"Alice"}`)
	req.Header.Set("Idempotency-Key", "key-from-header")
	rec := httptest.NewRecorder()

	h.submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "key-from-header", gotKey)
}

// TestSubmit_IdempotencyKeyFromPayloadField verifies the fallback for embeds
// that cannot set headers, and that the marker field never reaches the
// pipeline as form data.
func TestSubmit_IdempotencyKeyFromPayloadField(t *testing.T) {
	var gotKey string
	var gotPayload map[string]any
	submissions := &mockSubmissionService{
		ingestFn: func(_ context.Context, _ string, payload map[string]any, idempotencyKey, _ string) (models.Submission, error) {
			gotKey = idempotencyKey
			gotPayload = payload
			return models.Submission{CreatedAt: time.Now()}, nil
		},
	}

	h := newHandlerWithSubmissions(submissions)
	rec := httptest.NewRecorder()

	h.submit(rec, newSubmitRequest(`{"f1":"Alice","_idempotencyKey":"key-from-payload"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "key-from-payload", gotKey)
	assert.NotContains(t, gotPayload, "_idempotencyKey")
	assert.Equal(t, "Alice", gotPayload["f1"])
}

func TestSubmit_HeaderKeyWinsOverPayloadField(t *testing.T) {
	var gotKey string
	var gotPayload map[string]any
	submissions := &mockSubmissionService{
		ingestFn: func(_ context.Context, _ string, payload map[string]any, idempotencyKey, _ string) (models.Submission, error) {
			gotKey = idempotencyKey
			gotPayload = payload
			return models.Submission{CreatedAt: time.Now()}, nil
		},
	}

	h := newHandlerWithSubmissions(submissions)
	req := newSubmitRequest(`{"f1":"Alice","_idempotencyKey":"key-from-payload"}`)
	req.Header.Set("Idempotency-Key", "key-from-header")
	rec := httptest.NewRecorder()

	h.submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "key-from-header", gotKey)
	// The payload field is consumed either way.
	assert.NotContains(t, gotPayload, "_idempotencyKey")
}

// ─────────────────────────────────────────────
// submit — pipeline failures
// ─────────────────────────────────────────────

func TestSubmit_FailureMapping_TableTest(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "form not found",
			err:         store.ErrFormNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: app.MsgFormNotFound,
		},
		{
			name:        "no spreadsheet connected",
			err:         service.ErrNoSpreadsheetConnected,
			wantStatus:  http.StatusNotFound,
			wantMessage: app.MsgFormConfigurationError,
		},
		{
			name:        "reconnect required",
			err:         service.ErrReconnectRequired,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: app.MsgReconnectRequired,
		},
		{
			name:        "sheet permission denied",
			err:         service.ErrSheetPermissionDenied,
			wantStatus:  http.StatusForbidden,
			wantMessage: app.MsgSheetPermissionDenied,
		},
		{
			name:        "sheet gone",
			err:         service.ErrSheetNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: app.MsgSheetNotFound,
		},
		{
			name:        "unexpected failure stays opaque",
			err:         assert.AnError,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submissions := &mockSubmissionService{
				ingestFn: func(_ context.Context, _ string, _ map[string]any, _, _ string) (models.Submission, error) {
					return models.Submission{}, tt.err
				},
			}

			h := newHandlerWithSubmissions(submissions)
			rec := httptest.NewRecorder()

			h.submit(rec, newSubmitRequest(`{"f1":"Alice"}`))

			require.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeEnvelope(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMessage, resp.Error)
			assert.NotEmpty(t, resp.Timestamp)
		})
	}
}

// TestSubmit_ValidationFailureCarriesFieldDetail verifies that validation
// errors surface their own text so the widget can show which field is wrong.
func TestSubmit_ValidationFailureCarriesFieldDetail(t *testing.T) {
	submissions := &mockSubmissionService{
		ingestFn: func(_ context.Context, _ string, _ map[string]any, _, _ string) (models.Submission, error) {
			return models.Submission{}, fmt.Errorf("%w: field %q: value is required", service.ErrValidationFailed, "Name")
		},
	}

	h := newHandlerWithSubmissions(submissions)
	rec := httptest.NewRecorder()

	h.submit(rec, newSubmitRequest(`{}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Contains(t, resp.Error, `"Name"`)
	assert.Contains(t, resp.Error, "value is required")
}
