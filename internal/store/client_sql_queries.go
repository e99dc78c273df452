// SPDX-License-Identifier: Apache-2.0

package store

const (
	createSchemaCacheTable = `
		CREATE TABLE IF NOT EXISTS schema_cache (
			form_id    TEXT PRIMARY KEY,
			version    TEXT NOT NULL,
			schema     TEXT NOT NULL,
			cached_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`

	createDraftsTable = `
		CREATE TABLE IF NOT EXISTS drafts (
			form_id    TEXT PRIMARY KEY,
			values_json TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`

	createHistoryTable = `
		CREATE TABLE IF NOT EXISTS submission_history (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			form_id      TEXT NOT NULL,
			payload      TEXT NOT NULL,
			submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`

	getCachedSchema = `
		SELECT version, schema
		FROM schema_cache
		WHERE form_id = $1;`

	putCachedSchema = `
		INSERT INTO schema_cache (form_id, version, schema, cached_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (form_id) DO UPDATE SET
			version   = EXCLUDED.version,
			schema    = EXCLUDED.schema,
			cached_at = CURRENT_TIMESTAMP;`

	invalidateSchema = `
		DELETE FROM schema_cache
		WHERE form_id = $1;`

	saveDraft = `
		INSERT INTO drafts (form_id, values_json, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (form_id) DO UPDATE SET
			values_json = EXCLUDED.values_json,
			updated_at  = CURRENT_TIMESTAMP;`

	loadDraft = `
		SELECT values_json
		FROM drafts
		WHERE form_id = $1;`

	clearDraft = `
		DELETE FROM drafts
		WHERE form_id = $1;`

	recordLocalSubmission = `
		INSERT INTO submission_history (form_id, payload, submitted_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP);`

	listLocalSubmissions = `
		SELECT payload, submitted_at
		FROM submission_history
		WHERE form_id = $1
		ORDER BY id DESC
		LIMIT $2;`
)
