// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAMAymen/formix/internal/adapter"
	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/internal/utils"
	"github.com/SAMAymen/formix/models"
)

// GoogleProvider is the provider key stored with every linked account.
const GoogleProvider = "google"

// stateTokenTTL bounds how long an OAuth consent round-trip may take.
const stateTokenTTL = 15 * time.Minute

// accountService is the concrete implementation of AccountService.
type accountService struct {
	accountRepository store.AccountRepository
	oauth             adapter.OAuthAdapter

	// tokenSignKey / tokenIssuer sign the state value carried through the
	// consent redirect, binding the callback to the initiating owner.
	tokenSignKey string
	tokenIssuer  string

	logger *logger.Logger
}

// NewAccountService constructs an AccountService over the given repository
// and OAuth adapter.
func NewAccountService(accountRepository store.AccountRepository, oauth adapter.OAuthAdapter, cfg config.App, logger *logger.Logger) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		oauth:             oauth,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		logger:            logger,
	}
}

// AuthCodeURL implements [AccountService]. The state value is a short-lived
// signed token naming the owner, so the callback can be attributed without
// server-side session state.
func (a *accountService) AuthCodeURL(ctx context.Context, userID int64) (string, error) {
	state, err := utils.GenerateJWTToken(a.tokenIssuer, userID, stateTokenTTL, a.tokenSignKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return a.oauth.AuthCodeURL(state.SignedString), nil
}

// HandleCallback implements [AccountService].
func (a *accountService) HandleCallback(ctx context.Context, state, code string) error {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(state, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Err(err).Msg("oauth state verification failed")
		return ErrInvalidOAuthState
	}

	account, err := a.oauth.ExchangeCode(ctx, code)
	if err != nil {
		log.Err(err).Int64("user_id", token.UserID).Msg("authorization code exchange failed")
		return fmt.Errorf("authorization code exchange failed: %w", err)
	}

	account.UserID = token.UserID
	account.Provider = GoogleProvider

	if _, err = a.accountRepository.UpsertAccount(ctx, account); err != nil {
		return fmt.Errorf("storing linked account failed: %w", err)
	}

	log.Info().Int64("user_id", token.UserID).Msg("provider account linked")
	return nil
}

// EnsureFreshAccount implements [AccountService].
func (a *accountService) EnsureFreshAccount(ctx context.Context, userID int64) (models.Account, error) {
	account, err := a.accountRepository.GetAccountByUser(ctx, userID, GoogleProvider)
	if err != nil {
		return models.Account{}, err
	}

	if !account.NeedsRefresh(time.Now()) {
		return account, nil
	}

	return a.refresh(ctx, account)
}

// ForceRefresh implements [AccountService].
func (a *accountService) ForceRefresh(ctx context.Context, userID int64) (models.Account, error) {
	account, err := a.accountRepository.GetAccountByUser(ctx, userID, GoogleProvider)
	if err != nil {
		return models.Account{}, err
	}

	return a.refresh(ctx, account)
}

// refresh exchanges the stored refresh token and persists the new access
// token. A revoked grant is normalised to ErrReconnectRequired.
func (a *accountService) refresh(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	if account.RefreshToken == "" {
		return models.Account{}, ErrReconnectRequired
	}

	accessToken, expiry, err := a.oauth.RefreshToken(ctx, account.RefreshToken)
	if err != nil {
		log.Err(err).Int64("user_id", account.UserID).Msg("access token refresh failed")
		if errors.Is(err, adapter.ErrGrantRevoked) {
			return models.Account{}, ErrReconnectRequired
		}
		return models.Account{}, fmt.Errorf("%w: %w", ErrReconnectRequired, err)
	}

	account.AccessToken = accessToken
	account.Expiry = expiry

	if err = a.accountRepository.UpdateAccessToken(ctx, account); err != nil {
		return models.Account{}, fmt.Errorf("persisting refreshed token failed: %w", err)
	}

	return account, nil
}

// RefreshExpiring implements [AccountService]. Grants that fail to refresh
// are skipped so one revoked account cannot stall the sweep.
func (a *accountService) RefreshExpiring(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	accounts, err := a.accountRepository.ListExpiring(ctx, time.Now().Add(models.RefreshBuffer))
	if err != nil {
		return 0, fmt.Errorf("listing expiring accounts failed: %w", err)
	}

	refreshed := 0
	for _, account := range accounts {
		if _, err = a.refresh(ctx, account); err != nil {
			log.Err(err).Int64("user_id", account.UserID).Msg("background token refresh failed")
			continue
		}
		refreshed++
	}

	return refreshed, nil
}
