// SPDX-License-Identifier: Apache-2.0

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (login, password_hash, email, notify_on_submission)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, password_hash, email, notify_on_submission, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, email, notify_on_submission, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, password_hash, email, notify_on_submission, created_at
    FROM users
    WHERE user_id = $1;`

	createForm = `INSERT INTO forms (form_id, owner_id, title, fields, sheet_id, sheet_url, color, submit_text)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING form_id, owner_id, title, fields, sheet_id, sheet_url, color, submit_text, archived, created_at, updated_at;`

	getForm = `SELECT form_id, owner_id, title, fields, sheet_id, sheet_url, color, submit_text, archived, created_at, updated_at
    FROM forms
    WHERE form_id = $1;`

	listForms = `SELECT form_id, owner_id, title, fields, sheet_id, sheet_url, color, submit_text, archived, created_at, updated_at
    FROM forms
    WHERE owner_id = $1 AND NOT archived
    ORDER BY created_at DESC;`

	updateForm = `UPDATE forms
    SET title = $2, fields = $3, sheet_id = $4, sheet_url = $5, color = $6, submit_text = $7, updated_at = NOW()
    WHERE form_id = $1 AND NOT archived
    RETURNING form_id, owner_id, title, fields, sheet_id, sheet_url, color, submit_text, archived, created_at, updated_at;`

	archiveForm = `UPDATE forms
    SET archived = TRUE, updated_at = NOW()
    WHERE form_id = $1 AND owner_id = $2;`

	createSubmission = `INSERT INTO submissions (form_id, payload, idempotency_key, origin)
    VALUES ($1, $2, $3, $4)
    RETURNING submission_id, created_at;`

	findSubmissionByKey = `SELECT submission_id, form_id, payload, idempotency_key, origin, created_at
    FROM submissions
    WHERE form_id = $1 AND idempotency_key = $2;`

	getAccountByUser = `SELECT account_id, user_id, provider, access_token, refresh_token, expiry, scope, created_at, updated_at
    FROM accounts
    WHERE user_id = $1 AND provider = $2;`

	upsertAccount = `INSERT INTO accounts (user_id, provider, access_token, refresh_token, expiry, scope)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (user_id, provider) DO UPDATE SET
        access_token = EXCLUDED.access_token,
        refresh_token = CASE WHEN EXCLUDED.refresh_token <> '' THEN EXCLUDED.refresh_token ELSE accounts.refresh_token END,
        expiry = EXCLUDED.expiry,
        scope = EXCLUDED.scope,
        updated_at = NOW()
    RETURNING account_id, user_id, provider, access_token, refresh_token, expiry, scope, created_at, updated_at;`

	updateAccessToken = `UPDATE accounts
    SET access_token = $2, expiry = $3, updated_at = NOW()
    WHERE account_id = $1;`
)

var submissionColumns = []string{
	"submission_id",
	"form_id",
	"payload",
	"idempotency_key",
	"origin",
	"created_at",
}

// buildListSubmissionsQuery assembles the dynamic listing query. Results are
// ordered oldest-first so exports read in submission order, matching the
// spreadsheet.
func buildListSubmissionsQuery(formID string, filter SubmissionFilter) (string, []any, error) {
	qb := sq.Select(submissionColumns...).
		From("submissions").
		Where(sq.Eq{"form_id": formID}).
		OrderBy("created_at ASC, submission_id ASC").
		PlaceholderFormat(sq.Dollar)

	if !filter.Since.IsZero() {
		qb = qb.Where(sq.GtOrEq{"created_at": filter.Since})
	}
	if filter.Limit > 0 {
		qb = qb.Limit(filter.Limit).Offset(filter.Offset)
	}

	return qb.ToSql()
}

// buildCountSubmissionsQuery counts rows matching the same filter as
// buildListSubmissionsQuery, ignoring paging.
func buildCountSubmissionsQuery(formID string, filter SubmissionFilter) (string, []any, error) {
	qb := sq.Select("COUNT(*)").
		From("submissions").
		Where(sq.Eq{"form_id": formID}).
		PlaceholderFormat(sq.Dollar)

	if !filter.Since.IsZero() {
		qb = qb.Where(sq.GtOrEq{"created_at": filter.Since})
	}

	return qb.ToSql()
}

// buildListExpiringAccountsQuery selects accounts whose access token expires
// on or before deadline. Accounts without a refresh token are skipped; there
// is nothing the refresh worker could do with them.
func buildListExpiringAccountsQuery(deadline time.Time) (string, []any, error) {
	return sq.Select(
		"account_id", "user_id", "provider", "access_token",
		"refresh_token", "expiry", "scope", "created_at", "updated_at",
	).
		From("accounts").
		Where(sq.LtOrEq{"expiry": deadline}).
		Where(sq.NotEq{"refresh_token": ""}).
		OrderBy("expiry ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
