package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/models"
)

// localStore is the sqlite-backed implementation of [LocalStore].
type localStore struct {
	*DB
	logger *logger.Logger
}

// NewLocalStore wraps the widget's sqlite handle as a [LocalStore].
func NewLocalStore(db *DB, logger *logger.Logger) LocalStore {
	return &localStore{
		DB:     db,
		logger: logger,
	}
}

func (l *localStore) GetCachedSchema(ctx context.Context, formID, version string) (models.SchemaResponse, error) {
	log := logger.FromContext(ctx)

	var cachedVersion string
	var payload []byte
	row := l.DB.QueryRowContext(ctx, getCachedSchema, formID)
	if err := row.Scan(&cachedVersion, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SchemaResponse{}, ErrSchemaCacheMiss
		}
		log.Err(err).Str("func", "*localStore.GetCachedSchema").Str("form_id", formID).Msg("failed to scan cached schema row")
		return models.SchemaResponse{}, fmt.Errorf("failed to read cached schema: %w", err)
	}

	// A differing version means the form changed since the cache was written.
	if version != "" && cachedVersion != version {
		return models.SchemaResponse{}, ErrSchemaCacheMiss
	}

	var schema models.SchemaResponse
	if err := json.Unmarshal(payload, &schema); err != nil {
		log.Err(err).Str("func", "*localStore.GetCachedSchema").Str("form_id", formID).Msg("failed to decode cached schema")
		return models.SchemaResponse{}, ErrSchemaCacheMiss
	}

	return schema, nil
}

func (l *localStore) PutCachedSchema(ctx context.Context, schema models.SchemaResponse) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("encode schema for cache: %w", err)
	}

	if _, err = l.DB.ExecContext(ctx, putCachedSchema, schema.FormID, schema.Version, payload); err != nil {
		log.Err(err).Str("func", "*localStore.PutCachedSchema").Str("form_id", schema.FormID).Msg("failed to write cached schema")
		return fmt.Errorf("failed to cache schema: %w", err)
	}

	return nil
}

func (l *localStore) InvalidateSchema(ctx context.Context, formID string) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, invalidateSchema, formID); err != nil {
		log.Err(err).Str("func", "*localStore.InvalidateSchema").Str("form_id", formID).Msg("failed to drop cached schema")
		return fmt.Errorf("failed to invalidate cached schema: %w", err)
	}

	return nil
}

func (l *localStore) RecordSubmission(ctx context.Context, formID string, payload map[string]any) error {
	log := logger.FromContext(ctx)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode submission for history: %w", err)
	}

	if _, err = l.DB.ExecContext(ctx, recordLocalSubmission, formID, encoded); err != nil {
		log.Err(err).Str("func", "*localStore.RecordSubmission").Str("form_id", formID).Msg("failed to record submission")
		return fmt.Errorf("failed to record submission: %w", err)
	}

	return nil
}

func (l *localStore) RecentSubmissions(ctx context.Context, formID string, limit int) ([]models.Submission, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listLocalSubmissions, formID, limit)
	if err != nil {
		log.Err(err).Str("func", "*localStore.RecentSubmissions").Str("form_id", formID).Msg("failed to query submission history")
		return nil, fmt.Errorf("failed to read submission history: %w", err)
	}
	defer rows.Close()

	submissions := make([]models.Submission, 0)
	for rows.Next() {
		var payload []byte
		submission := models.Submission{FormID: formID}
		if err = rows.Scan(&payload, &submission.CreatedAt); err != nil {
			log.Err(err).Str("func", "*localStore.RecentSubmissions").Str("form_id", formID).Msg("failed to scan history row")
			return nil, fmt.Errorf("failed to scan submission history: %w", err)
		}
		if err = json.Unmarshal(payload, &submission.Payload); err != nil {
			log.Err(err).Str("func", "*localStore.RecentSubmissions").Str("form_id", formID).Msg("failed to decode history payload")
			continue
		}
		submissions = append(submissions, submission)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submission history: %w", err)
	}

	return submissions, nil
}

func (l *localStore) SaveDraft(ctx context.Context, formID string, values map[string][]string) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode draft values: %w", err)
	}

	if _, err = l.DB.ExecContext(ctx, saveDraft, formID, payload); err != nil {
		log.Err(err).Str("func", "*localStore.SaveDraft").Str("form_id", formID).Msg("failed to write draft")
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

func (l *localStore) LoadDraft(ctx context.Context, formID string) (map[string][]string, error) {
	log := logger.FromContext(ctx)

	var payload []byte
	row := l.DB.QueryRowContext(ctx, loadDraft, formID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		log.Err(err).Str("func", "*localStore.LoadDraft").Str("form_id", formID).Msg("failed to scan draft row")
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	values := make(map[string][]string)
	if err := json.Unmarshal(payload, &values); err != nil {
		log.Err(err).Str("func", "*localStore.LoadDraft").Str("form_id", formID).Msg("failed to decode draft values")
		return nil, ErrDraftNotFound
	}

	return values, nil
}

func (l *localStore) ClearDraft(ctx context.Context, formID string) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, clearDraft, formID); err != nil {
		log.Err(err).Str("func", "*localStore.ClearDraft").Str("form_id", formID).Msg("failed to clear draft")
		return fmt.Errorf("failed to clear draft: %w", err)
	}

	return nil
}

func (l *localStore) Close() error {
	return l.DB.DB.Close()
}
