// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/models"
)

func newTestFormRepo(t *testing.T) (*formRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &formRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

var formColumns = []string{
	"form_id", "owner_id", "title", "fields",
	"sheet_id", "sheet_url", "color", "submit_text",
	"archived", "created_at", "updated_at",
}

func TestGetForm_FieldsSurviveJSONRoundTrip(t *testing.T) {
	repo, mock, db := newTestFormRepo(t)
	defer db.Close()

	now := time.Now()
	fieldsJSON := `[{"id":"f1","type":"text","label":"Name","required":true,"options":null,"columnSpan":1}]`

	rows := sqlmock.NewRows(formColumns).
		AddRow("form-1", int64(7), "Contact", []byte(fieldsJSON), "sheet-1", "", "", "", false, now, now)

	mock.ExpectQuery("SELECT (.+) FROM forms").
		WithArgs("form-1").
		WillReturnRows(rows)

	form, err := repo.GetForm(context.Background(), "form-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(form.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(form.Fields))
	}
	if form.Fields[0].FieldID != "f1" || form.Fields[0].Type != models.FieldText {
		t.Errorf("field decoded wrong: %+v", form.Fields[0])
	}
	if !form.Fields[0].Required {
		t.Error("required flag lost in round trip")
	}
}

func TestGetForm_NotFound(t *testing.T) {
	repo, mock, db := newTestFormRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM forms").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetForm(context.Background(), "missing")
	if !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestListForms_EmptyResultIsNotAnError(t *testing.T) {
	repo, mock, db := newTestFormRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM forms").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(formColumns))

	forms, err := repo.ListForms(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forms == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(forms) != 0 {
		t.Errorf("expected no forms, got %d", len(forms))
	}
}

func TestUpdateForm_ArchivedIsNotFound(t *testing.T) {
	repo, mock, db := newTestFormRepo(t)
	defer db.Close()

	// The UPDATE predicate excludes archived forms, so the row set is empty.
	mock.ExpectQuery("UPDATE forms").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateForm(context.Background(), models.Form{FormID: "form-1"})
	if !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestArchiveForm_Success(t *testing.T) {
	repo, mock, db := newTestFormRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE forms").
		WithArgs("form-1", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ArchiveForm(context.Background(), "form-1", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestArchiveForm_ForeignOwnerAffectsNothing(t *testing.T) {
	repo, mock, db := newTestFormRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE forms").
		WithArgs("form-1", int64(1234)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ArchiveForm(context.Background(), "form-1", 1234)
	if !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}
