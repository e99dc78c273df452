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

// formRepository is the PostgreSQL-backed implementation of [FormRepository].
// Fields are stored as a JSONB document so their order survives round-trips
// exactly as the builder produced it.
type formRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFormRepository constructs a [FormRepository] backed by the provided
// database connection and logger.
func NewFormRepository(db *DB, logger *logger.Logger) FormRepository {
	logger.Debug().Msg("creating form repository")
	return &formRepository{
		db:     db,
		logger: logger,
	}
}

func (r *formRepository) CreateForm(ctx context.Context, form models.Form) (models.Form, error) {
	log := logger.FromContext(ctx)

	fields, err := json.Marshal(form.Fields)
	if err != nil {
		return models.Form{}, fmt.Errorf("encode form fields: %w", err)
	}

	row := r.db.QueryRowContext(ctx, createForm,
		form.FormID, form.OwnerID, form.Title, fields,
		form.SheetID, form.SheetURL, form.Color, form.SubmitText,
	)

	saved, err := scanForm(row)
	if err != nil {
		log.Err(err).Str("func", "*formRepository.CreateForm").Msg("error creating form")
		return models.Form{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// GetForm retrieves a form by id, archived or not. Callers decide whether an
// archived form is acceptable for their path.
func (r *formRepository) GetForm(ctx context.Context, formID string) (models.Form, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getForm, formID)

	form, err := scanForm(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Form{}, ErrFormNotFound
		}
		log.Err(err).Str("func", "*formRepository.GetForm").Msg("error scanning form row")
		return models.Form{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return form, nil
}

func (r *formRepository) ListForms(ctx context.Context, ownerID int64) ([]models.Form, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listForms, ownerID)
	if err != nil {
		log.Err(err).Str("func", "*formRepository.ListForms").Msg("error listing forms")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	forms := make([]models.Form, 0)
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		forms = append(forms, form)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return forms, nil
}

func (r *formRepository) UpdateForm(ctx context.Context, form models.Form) (models.Form, error) {
	log := logger.FromContext(ctx)

	fields, err := json.Marshal(form.Fields)
	if err != nil {
		return models.Form{}, fmt.Errorf("encode form fields: %w", err)
	}

	row := r.db.QueryRowContext(ctx, updateForm,
		form.FormID, form.Title, fields,
		form.SheetID, form.SheetURL, form.Color, form.SubmitText,
	)

	saved, err := scanForm(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Form{}, ErrFormNotFound
		}
		log.Err(err).Str("func", "*formRepository.UpdateForm").Msg("error updating form")
		return models.Form{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// ArchiveForm soft-deletes a form. The owner id is part of the predicate so
// one tenant cannot archive another tenant's form.
func (r *formRepository) ArchiveForm(ctx context.Context, formID string, ownerID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, archiveForm, formID, ownerID)
	if err != nil {
		log.Err(err).Str("func", "*formRepository.ArchiveForm").Msg("error archiving form")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrFormNotFound
	}

	return nil
}

// rowScanner lets scanForm work with both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanForm(row rowScanner) (models.Form, error) {
	var form models.Form
	var fields []byte

	err := row.Scan(
		&form.FormID, &form.OwnerID, &form.Title, &fields,
		&form.SheetID, &form.SheetURL, &form.Color, &form.SubmitText,
		&form.Archived, &form.CreatedAt, &form.UpdatedAt,
	)
	if err != nil {
		return models.Form{}, err
	}

	if len(fields) > 0 {
		if err = json.Unmarshal(fields, &form.Fields); err != nil {
			return models.Form{}, fmt.Errorf("decode form fields: %w", err)
		}
	}

	return form, nil
}
