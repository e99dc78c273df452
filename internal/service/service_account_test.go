// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"testing"
	"time"

	"github.com/SAMAymen/formix/internal/adapter"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────

type mockAccountRepository struct {
	getAccountByUserFn  func(ctx context.Context, userID int64, provider string) (models.Account, error)
	upsertAccountFn     func(ctx context.Context, account models.Account) (models.Account, error)
	updateAccessTokenFn func(ctx context.Context, account models.Account) error
	listExpiringFn      func(ctx context.Context, deadline time.Time) ([]models.Account, error)
}

func (m *mockAccountRepository) GetAccountByUser(ctx context.Context, userID int64, provider string) (models.Account, error) {
	if m.getAccountByUserFn != nil {
		return m.getAccountByUserFn(ctx, userID, provider)
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (m *mockAccountRepository) UpsertAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if m.upsertAccountFn != nil {
		return m.upsertAccountFn(ctx, account)
	}
	return account, nil
}

func (m *mockAccountRepository) UpdateAccessToken(ctx context.Context, account models.Account) error {
	if m.updateAccessTokenFn != nil {
		return m.updateAccessTokenFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepository) ListExpiring(ctx context.Context, deadline time.Time) ([]models.Account, error) {
	if m.listExpiringFn != nil {
		return m.listExpiringFn(ctx, deadline)
	}
	return nil, nil
}

type mockOAuthAdapter struct {
	authCodeURLFn  func(state string) string
	exchangeCodeFn func(ctx context.Context, code string) (models.Account, error)
	refreshTokenFn func(ctx context.Context, refreshToken string) (string, time.Time, error)
}

func (m *mockOAuthAdapter) AuthCodeURL(state string) string {
	if m.authCodeURLFn != nil {
		return m.authCodeURLFn(state)
	}
	return "https://provider.example.com/consent?state=" + state
}

func (m *mockOAuthAdapter) ExchangeCode(ctx context.Context, code string) (models.Account, error) {
	if m.exchangeCodeFn != nil {
		return m.exchangeCodeFn(ctx, code)
	}
	return models.Account{}, nil
}

func (m *mockOAuthAdapter) RefreshToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	if m.refreshTokenFn != nil {
		return m.refreshTokenFn(ctx, refreshToken)
	}
	return "fresh-token", time.Now().Add(time.Hour), nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newAccountServiceForTest(repo *mockAccountRepository, oauth *mockOAuthAdapter) *accountService {
	return &accountService{
		accountRepository: repo,
		oauth:             oauth,
		tokenSignKey:      "test-sign-key",
		tokenIssuer:       "formix-test",
		logger:            logger.Nop(),
	}
}

// ─────────────────────────────────────────────
// EnsureFreshAccount / ForceRefresh
// ─────────────────────────────────────────────

func TestAccountService_EnsureFreshAccount_FreshTokenSkipsRefresh(t *testing.T) {
	stored := models.Account{
		UserID:       7,
		AccessToken:  "live-token",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(2 * time.Hour),
	}
	repo := &mockAccountRepository{
		getAccountByUserFn: func(_ context.Context, userID int64, provider string) (models.Account, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, GoogleProvider, provider)
			return stored, nil
		},
	}
	refreshCalled := false
	oauth := &mockOAuthAdapter{
		refreshTokenFn: func(_ context.Context, _ string) (string, time.Time, error) {
			refreshCalled = true
			return "", time.Time{}, nil
		},
	}
	svc := newAccountServiceForTest(repo, oauth)

	account, err := svc.EnsureFreshAccount(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "live-token", account.AccessToken)
	assert.False(t, refreshCalled)
}

func TestAccountService_EnsureFreshAccount_NearExpiryRefreshes(t *testing.T) {
	stored := models.Account{
		UserID:       7,
		AccessToken:  "stale-token",
		RefreshToken: "refresh",
		// Inside the refresh buffer, so still valid but treated as expired.
		Expiry: time.Now().Add(5 * time.Minute),
	}
	repo := &mockAccountRepository{
		getAccountByUserFn: func(_ context.Context, _ int64, _ string) (models.Account, error) {
			return stored, nil
		},
	}

	var persisted models.Account
	repo.updateAccessTokenFn = func(_ context.Context, account models.Account) error {
		persisted = account
		return nil
	}

	svc := newAccountServiceForTest(repo, &mockOAuthAdapter{})

	account, err := svc.EnsureFreshAccount(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "fresh-token", account.AccessToken)
	assert.Equal(t, "fresh-token", persisted.AccessToken, "the refreshed token must be persisted")
}

func TestAccountService_ForceRefresh_AlwaysRefreshes(t *testing.T) {
	repo := &mockAccountRepository{
		getAccountByUserFn: func(_ context.Context, _ int64, _ string) (models.Account, error) {
			return models.Account{
				UserID:       7,
				AccessToken:  "live-token",
				RefreshToken: "refresh",
				Expiry:       time.Now().Add(2 * time.Hour),
			}, nil
		},
	}
	svc := newAccountServiceForTest(repo, &mockOAuthAdapter{})

	account, err := svc.ForceRefresh(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "fresh-token", account.AccessToken)
}

func TestAccountService_Refresh_MissingRefreshToken(t *testing.T) {
	repo := &mockAccountRepository{
		getAccountByUserFn: func(_ context.Context, _ int64, _ string) (models.Account, error) {
			return models.Account{UserID: 7}, nil
		},
	}
	svc := newAccountServiceForTest(repo, &mockOAuthAdapter{})

	_, err := svc.ForceRefresh(context.Background(), 7)

	require.ErrorIs(t, err, ErrReconnectRequired)
}

func TestAccountService_Refresh_RevokedGrant(t *testing.T) {
	repo := &mockAccountRepository{
		getAccountByUserFn: func(_ context.Context, _ int64, _ string) (models.Account, error) {
			return models.Account{UserID: 7, RefreshToken: "refresh"}, nil
		},
	}
	oauth := &mockOAuthAdapter{
		refreshTokenFn: func(_ context.Context, _ string) (string, time.Time, error) {
			return "", time.Time{}, adapter.ErrGrantRevoked
		},
	}
	svc := newAccountServiceForTest(repo, oauth)

	_, err := svc.ForceRefresh(context.Background(), 7)

	require.ErrorIs(t, err, ErrReconnectRequired)
}

// ─────────────────────────────────────────────
// OAuth round trip
// ─────────────────────────────────────────────

func TestAccountService_CallbackRoundTrip(t *testing.T) {
	var upserted models.Account
	repo := &mockAccountRepository{
		upsertAccountFn: func(_ context.Context, account models.Account) (models.Account, error) {
			upserted = account
			return account, nil
		},
	}
	oauth := &mockOAuthAdapter{
		exchangeCodeFn: func(_ context.Context, code string) (models.Account, error) {
			assert.Equal(t, "auth-code", code)
			return models.Account{AccessToken: "access", RefreshToken: "refresh"}, nil
		},
	}
	svc := newAccountServiceForTest(repo, oauth)

	// The state produced for the consent URL must verify in the callback.
	url, err := svc.AuthCodeURL(context.Background(), 7)
	require.NoError(t, err)
	state := url[len("https://provider.example.com/consent?state="):]

	require.NoError(t, svc.HandleCallback(context.Background(), state, "auth-code"))
	assert.Equal(t, int64(7), upserted.UserID)
	assert.Equal(t, GoogleProvider, upserted.Provider)
	assert.Equal(t, "refresh", upserted.RefreshToken)
}

func TestAccountService_HandleCallback_BadState(t *testing.T) {
	svc := newAccountServiceForTest(&mockAccountRepository{}, &mockOAuthAdapter{})

	err := svc.HandleCallback(context.Background(), "tampered-state", "auth-code")

	require.ErrorIs(t, err, ErrInvalidOAuthState)
}

// ─────────────────────────────────────────────
// RefreshExpiring
// ─────────────────────────────────────────────

func TestAccountService_RefreshExpiring_SkipsFailedGrants(t *testing.T) {
	repo := &mockAccountRepository{
		listExpiringFn: func(_ context.Context, _ time.Time) ([]models.Account, error) {
			return []models.Account{
				{UserID: 1, RefreshToken: "ok"},
				{UserID: 2, RefreshToken: ""},
				{UserID: 3, RefreshToken: "ok"},
			}, nil
		},
	}
	svc := newAccountServiceForTest(repo, &mockOAuthAdapter{})

	refreshed, err := svc.RefreshExpiring(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, refreshed, "the revoked grant is skipped, not fatal")
}
