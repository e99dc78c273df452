package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/models"
	"github.com/jackc/pgerrcode"
)

// submissionRepository is the PostgreSQL-backed implementation of
// [SubmissionRepository]. The payload column stores the raw submitted
// key→value pairs as JSONB, before any spreadsheet flattening.
type submissionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSubmissionRepository constructs a [SubmissionRepository] backed by the
// provided database connection and logger.
func NewSubmissionRepository(db *DB, logger *logger.Logger) SubmissionRepository {
	logger.Debug().Msg("creating submission repository")
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSubmission persists a submission record.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on the (form_id, idempotency_key)
//     index → [ErrDuplicateSubmission].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *submissionRepository) CreateSubmission(ctx context.Context, submission models.Submission) (models.Submission, error) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(submission.Payload)
	if err != nil {
		return models.Submission{}, fmt.Errorf("encode submission payload: %w", err)
	}

	row := r.db.QueryRowContext(ctx, createSubmission,
		submission.FormID, payload, submission.IdempotencyKey, submission.Origin,
	)

	if err = row.Scan(&submission.SubmissionID, &submission.CreatedAt); err != nil {
		log.Err(err).Str("func", "*submissionRepository.CreateSubmission").Msg("error creating submission")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Submission{}, ErrDuplicateSubmission
		default:
			return models.Submission{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return submission, nil
}

// FindByIdempotencyKey retrieves the submission previously recorded under the
// given key, so a replayed request can be answered without touching the
// spreadsheet again.
func (r *submissionRepository) FindByIdempotencyKey(ctx context.Context, formID, key string) (models.Submission, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findSubmissionByKey, formID, key)

	submission, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		log.Err(err).Str("func", "*submissionRepository.FindByIdempotencyKey").Msg("error scanning submission row")
		return models.Submission{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return submission, nil
}

// ListSubmissions returns one page of submissions plus the unpaged total.
// The query is built dynamically (see sql_queries.go) because the since
// filter and paging are optional.
func (r *submissionRepository) ListSubmissions(ctx context.Context, formID string, filter SubmissionFilter) ([]models.Submission, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListSubmissionsQuery(formID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*submissionRepository.ListSubmissions").Msg("error listing submissions")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	submissions := make([]models.Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		submissions = append(submissions, submission)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	countQuery, countArgs, err := buildCountSubmissionsQuery(formID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return submissions, total, nil
}

func scanSubmission(row rowScanner) (models.Submission, error) {
	var submission models.Submission
	var payload []byte

	err := row.Scan(
		&submission.SubmissionID, &submission.FormID, &payload,
		&submission.IdempotencyKey, &submission.Origin, &submission.CreatedAt,
	)
	if err != nil {
		return models.Submission{}, err
	}

	if len(payload) > 0 {
		if err = json.Unmarshal(payload, &submission.Payload); err != nil {
			return models.Submission{}, fmt.Errorf("decode submission payload: %w", err)
		}
	}

	return submission, nil
}
