// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SAMAymen/formix/internal/app"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/internal/utils"
	"github.com/SAMAymen/formix/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withOwner stores an authenticated owner id in the request context, the way
// the auth middleware would.
func withOwner(r *http.Request, ownerID int64) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), utils.UserIDCtxKey, ownerID))
}

// ─────────────────────────────────────────────
// createForm
// ─────────────────────────────────────────────

func TestCreateForm_Success(t *testing.T) {
	forms := &mockFormService{
		createFormFn: func(_ context.Context, ownerID int64, req models.FormCreateRequest) (models.Form, error) {
			assert.Equal(t, int64(7), ownerID)
			assert.Equal(t, "Contact", req.Title)
			return models.Form{FormID: "form-1", OwnerID: ownerID, Title: req.Title}, nil
		},
	}

	h := newHandlerWithForms(forms)
	req := withOwner(httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader(`{"title":"Contact"}`)), 7)
	rec := httptest.NewRecorder()

	h.createForm(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var form models.Form
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&form))
	assert.Equal(t, "form-1", form.FormID)
}

func TestCreateForm_NoOwnerInContext(t *testing.T) {
	h := newHandlerWithForms(&mockFormService{})
	req := httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader(`{"title":"Contact"}`))
	rec := httptest.NewRecorder()

	h.createForm(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgNoUserIDProvided)
}

func TestCreateForm_InvalidJSON(t *testing.T) {
	h := newHandlerWithForms(&mockFormService{})
	req := withOwner(httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader(`{broken`)), 7)
	rec := httptest.NewRecorder()

	h.createForm(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// getForm / listForms
// ─────────────────────────────────────────────

func TestGetForm_NotFound(t *testing.T) {
	forms := &mockFormService{
		getFormFn: func(_ context.Context, _ int64, _ string) (models.Form, error) {
			return models.Form{}, store.ErrFormNotFound
		},
	}

	h := newHandlerWithForms(forms)
	req := withOwner(newFormRequest(http.MethodGet, "/api/forms/form-1"), 7)
	rec := httptest.NewRecorder()

	h.getForm(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListForms_Success(t *testing.T) {
	forms := &mockFormService{
		listFormsFn: func(_ context.Context, ownerID int64) ([]models.Form, error) {
			assert.Equal(t, int64(7), ownerID)
			return []models.Form{{FormID: "form-1"}, {FormID: "form-2"}}, nil
		},
	}

	h := newHandlerWithForms(forms)
	req := withOwner(httptest.NewRequest(http.MethodGet, "/api/forms", nil), 7)
	rec := httptest.NewRecorder()

	h.listForms(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.Form
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	assert.Len(t, listed, 2)
}

// ─────────────────────────────────────────────
// updateForm / archiveForm
// ─────────────────────────────────────────────

func TestUpdateForm_PassesRequestThrough(t *testing.T) {
	var gotReq models.FormUpdateRequest
	forms := &mockFormService{
		updateFormFn: func(_ context.Context, _ int64, formID string, req models.FormUpdateRequest) (models.Form, error) {
			assert.Equal(t, "form-1", formID)
			gotReq = req
			return models.Form{FormID: formID}, nil
		},
	}

	h := newHandlerWithForms(forms)
	req := newFormRequest(http.MethodPut, "/api/forms/form-1")
	req.Body = io.NopCloser(strings.NewReader(`{"title":"Feedback"}`))
	rec := httptest.NewRecorder()

	h.updateForm(rec, withOwner(req, 7))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotReq.Title)
	assert.Equal(t, "Feedback", *gotReq.Title)
}

func TestArchiveForm_Success(t *testing.T) {
	archived := false
	forms := &mockFormService{
		archiveFormFn: func(_ context.Context, ownerID int64, formID string) error {
			archived = true
			assert.Equal(t, int64(7), ownerID)
			assert.Equal(t, "form-1", formID)
			return nil
		},
	}

	h := newHandlerWithForms(forms)
	req := withOwner(newFormRequest(http.MethodDelete, "/api/forms/form-1"), 7)
	rec := httptest.NewRecorder()

	h.archiveForm(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, archived)
}

func TestArchiveForm_NotFound(t *testing.T) {
	forms := &mockFormService{
		archiveFormFn: func(_ context.Context, _ int64, _ string) error {
			return store.ErrFormNotFound
		},
	}

	h := newHandlerWithForms(forms)
	req := withOwner(newFormRequest(http.MethodDelete, "/api/forms/form-1"), 7)
	rec := httptest.NewRecorder()

	h.archiveForm(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
