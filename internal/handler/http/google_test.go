// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/service"
	"github.com/SAMAymen/formix/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AccountService
// ─────────────────────────────────────────────

// mockAccountService implements service.AccountService for unit tests.
type mockAccountService struct {
	authCodeURLFn     func(ctx context.Context, userID int64) (string, error)
	handleCallbackFn  func(ctx context.Context, state, code string) error
	ensureFreshFn     func(ctx context.Context, userID int64) (models.Account, error)
	forceRefreshFn    func(ctx context.Context, userID int64) (models.Account, error)
	refreshExpiringFn func(ctx context.Context) (int, error)
}

func (m *mockAccountService) AuthCodeURL(ctx context.Context, userID int64) (string, error) {
	if m.authCodeURLFn != nil {
		return m.authCodeURLFn(ctx, userID)
	}
	return "https://provider.example.com/consent", nil
}

func (m *mockAccountService) HandleCallback(ctx context.Context, state, code string) error {
	if m.handleCallbackFn != nil {
		return m.handleCallbackFn(ctx, state, code)
	}
	return nil
}

func (m *mockAccountService) EnsureFreshAccount(ctx context.Context, userID int64) (models.Account, error) {
	if m.ensureFreshFn != nil {
		return m.ensureFreshFn(ctx, userID)
	}
	return models.Account{}, nil
}

func (m *mockAccountService) ForceRefresh(ctx context.Context, userID int64) (models.Account, error) {
	if m.forceRefreshFn != nil {
		return m.forceRefreshFn(ctx, userID)
	}
	return models.Account{}, nil
}

func (m *mockAccountService) RefreshExpiring(ctx context.Context) (int, error) {
	if m.refreshExpiringFn != nil {
		return m.refreshExpiringFn(ctx)
	}
	return 0, nil
}

func newHandlerWithAccounts(accounts service.AccountService) *Handler {
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AccountService: accounts,
		},
	}
}

// ─────────────────────────────────────────────
// googleAuthorize
// ─────────────────────────────────────────────

func TestGoogleAuthorize_RedirectsToConsentPage(t *testing.T) {
	accounts := &mockAccountService{
		authCodeURLFn: func(_ context.Context, userID int64) (string, error) {
			assert.Equal(t, int64(7), userID)
			return "https://provider.example.com/consent?state=signed", nil
		},
	}

	h := newHandlerWithAccounts(accounts)
	req := withOwner(httptest.NewRequest(http.MethodGet, "/api/google/authorize", nil), 7)
	rec := httptest.NewRecorder()

	h.googleAuthorize(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://provider.example.com/consent?state=signed", rec.Header().Get("Location"))
}

func TestGoogleAuthorize_NoOwnerInContext(t *testing.T) {
	h := newHandlerWithAccounts(&mockAccountService{})
	rec := httptest.NewRecorder()

	h.googleAuthorize(rec, httptest.NewRequest(http.MethodGet, "/api/google/authorize", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// googleCallback
// ─────────────────────────────────────────────

func TestGoogleCallback_Success(t *testing.T) {
	accounts := &mockAccountService{
		handleCallbackFn: func(_ context.Context, state, code string) error {
			assert.Equal(t, "signed-state", state)
			assert.Equal(t, "auth-code", code)
			return nil
		},
	}

	h := newHandlerWithAccounts(accounts)
	req := httptest.NewRequest(http.MethodGet, "/api/google/callback?state=signed-state&code=auth-code", nil)
	rec := httptest.NewRecorder()

	h.googleCallback(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "linked")
}

func TestGoogleCallback_ConsentDenied(t *testing.T) {
	callbackCalled := false
	accounts := &mockAccountService{
		handleCallbackFn: func(_ context.Context, _, _ string) error {
			callbackCalled = true
			return nil
		},
	}

	h := newHandlerWithAccounts(accounts)
	req := httptest.NewRequest(http.MethodGet, "/api/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()

	h.googleCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, callbackCalled)
}

func TestGoogleCallback_MissingParameters(t *testing.T) {
	h := newHandlerWithAccounts(&mockAccountService{})
	req := httptest.NewRequest(http.MethodGet, "/api/google/callback?code=auth-code", nil)
	rec := httptest.NewRecorder()

	h.googleCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoogleCallback_TamperedState(t *testing.T) {
	accounts := &mockAccountService{
		handleCallbackFn: func(_ context.Context, _, _ string) error {
			return service.ErrInvalidOAuthState
		},
	}

	h := newHandlerWithAccounts(accounts)
	req := httptest.NewRequest(http.MethodGet, "/api/google/callback?state=tampered&code=auth-code", nil)
	rec := httptest.NewRecorder()

	h.googleCallback(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
