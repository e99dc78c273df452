// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/models"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. One row per (user, provider) pair; tokens are updated
// in place.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// GetAccountByUser retrieves the linked provider account for the given owner.
// Returns [ErrAccountNotFound] on an empty result set.
func (r *accountRepository) GetAccountByUser(ctx context.Context, userID int64, provider string) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getAccountByUser, userID, provider)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.GetAccountByUser").Msg("error scanning account row")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}

// UpsertAccount inserts or replaces the linked account for (user, provider).
// An empty incoming refresh token keeps the stored one, since providers only
// issue it on the first consent.
func (r *accountRepository) UpsertAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, upsertAccount,
		account.UserID, account.Provider, account.AccessToken,
		account.RefreshToken, account.Expiry, account.Scope,
	)

	saved, err := scanAccount(row)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpsertAccount").Msg("error upserting account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// UpdateAccessToken persists a refreshed access token and its new expiry.
func (r *accountRepository) UpdateAccessToken(ctx context.Context, account models.Account) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, updateAccessToken, account.AccountID, account.AccessToken, account.Expiry)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateAccessToken").Msg("error updating access token")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// ListExpiring returns accounts whose access token expires on or before
// deadline and that still hold a refresh token.
func (r *accountRepository) ListExpiring(ctx context.Context, deadline time.Time) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListExpiringAccountsQuery(deadline)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ListExpiring").Msg("error listing expiring accounts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return accounts, nil
}

func scanAccount(row rowScanner) (models.Account, error) {
	var account models.Account

	err := row.Scan(
		&account.AccountID, &account.UserID, &account.Provider,
		&account.AccessToken, &account.RefreshToken, &account.Expiry,
		&account.Scope, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	return account, nil
}
