// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/models"
	"github.com/google/uuid"
)

// formService is the concrete implementation of FormService.
type formService struct {
	formRepository store.FormRepository

	// baseURL is the public deployment URL embedded into generated snippets.
	baseURL string

	logger *logger.Logger
}

// NewFormService constructs a FormService over the given repository.
func NewFormService(formRepository store.FormRepository, cfg config.App, logger *logger.Logger) FormService {
	return &formService{
		formRepository: formRepository,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		logger:         logger,
	}
}

// CreateForm validates and persists a new form definition for the owner.
// The form id is server-assigned.
func (f *formService) CreateForm(ctx context.Context, ownerID int64, req models.FormCreateRequest) (models.Form, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(req.Title) == "" {
		log.Error().Int64("owner_id", ownerID).Msg("form title is empty")
		return models.Form{}, ErrInvalidDataProvided
	}

	form := models.Form{
		FormID:     uuid.NewString(),
		OwnerID:    ownerID,
		Title:      req.Title,
		Fields:     req.Fields,
		SheetID:    req.SheetID,
		SheetURL:   req.SheetURL,
		Color:      req.Color,
		SubmitText: req.SubmitText,
	}
	if form.Fields == nil {
		form.Fields = []models.Field{}
	}
	form.Normalize()

	saved, err := f.formRepository.CreateForm(ctx, form)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("form creation ended with error")
		return models.Form{}, fmt.Errorf("form creation ended with error: %w", err)
	}

	return saved, nil
}

// GetForm returns the owner's form. A form belonging to another owner is
// reported as not found rather than forbidden, so form ids cannot be probed.
func (f *formService) GetForm(ctx context.Context, ownerID int64, formID string) (models.Form, error) {
	form, err := f.formRepository.GetForm(ctx, formID)
	if err != nil {
		return models.Form{}, fmt.Errorf("form lookup failed: %w", err)
	}
	if form.OwnerID != ownerID {
		return models.Form{}, store.ErrFormNotFound
	}

	return form, nil
}

func (f *formService) ListForms(ctx context.Context, ownerID int64) ([]models.Form, error) {
	forms, err := f.formRepository.ListForms(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("form listing failed: %w", err)
	}

	return forms, nil
}

// UpdateForm applies a partial update to the owner's form. Nil request fields
// leave the stored value untouched. Updating bumps UpdatedAt, which rolls the
// schema version and invalidates widget caches.
func (f *formService) UpdateForm(ctx context.Context, ownerID int64, formID string, req models.FormUpdateRequest) (models.Form, error) {
	log := logger.FromContext(ctx)

	form, err := f.GetForm(ctx, ownerID, formID)
	if err != nil {
		return models.Form{}, err
	}
	if form.Archived {
		return models.Form{}, store.ErrFormNotFound
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return models.Form{}, ErrInvalidDataProvided
		}
		form.Title = *req.Title
	}
	if req.Fields != nil {
		form.Fields = *req.Fields
		if form.Fields == nil {
			form.Fields = []models.Field{}
		}
	}
	if req.SheetID != nil {
		form.SheetID = *req.SheetID
	}
	if req.SheetURL != nil {
		form.SheetURL = *req.SheetURL
	}
	if req.Color != nil {
		form.Color = *req.Color
	}
	if req.SubmitText != nil {
		form.SubmitText = *req.SubmitText
	}
	form.Normalize()

	saved, err := f.formRepository.UpdateForm(ctx, form)
	if err != nil {
		log.Err(err).Str("form_id", formID).Msg("form update ended with error")
		return models.Form{}, fmt.Errorf("form update ended with error: %w", err)
	}

	return saved, nil
}

func (f *formService) ArchiveForm(ctx context.Context, ownerID int64, formID string) error {
	if err := f.formRepository.ArchiveForm(ctx, formID, ownerID); err != nil {
		return fmt.Errorf("form archive failed: %w", err)
	}

	return nil
}

// GetSchema implements the public render contract. Archived forms answer as
// not found so stale embeds stop rendering.
func (f *formService) GetSchema(ctx context.Context, formID string) (models.SchemaResponse, error) {
	form, err := f.formRepository.GetForm(ctx, formID)
	if err != nil {
		return models.SchemaResponse{}, fmt.Errorf("form lookup failed: %w", err)
	}
	if form.Archived {
		return models.SchemaResponse{}, store.ErrFormNotFound
	}

	form.Normalize()

	schema := models.SchemaResponse{
		FormID:     form.FormID,
		Title:      form.Title,
		Fields:     form.Fields,
		SheetID:    form.SheetID,
		Color:      form.Color,
		SubmitText: form.SubmitText,
		Version:    form.SchemaVersion(),
	}

	// Without a CTA field the widget renders the served label, so never let
	// it go out empty.
	if schema.SubmitText == "" && !form.HasCTA() {
		schema.SubmitText = "Submit"
	}

	return schema, nil
}

// EmbedSnippet builds the copy-paste snippet pointing an embedding page at
// this deployment.
func (f *formService) EmbedSnippet(ctx context.Context, formID string) (models.EmbedResponse, error) {
	form, err := f.formRepository.GetForm(ctx, formID)
	if err != nil {
		return models.EmbedResponse{}, fmt.Errorf("form lookup failed: %w", err)
	}
	if form.Archived {
		return models.EmbedResponse{}, store.ErrFormNotFound
	}

	container := fmt.Sprintf(`<div data-formix-form=%q`, form.FormID)
	if form.Color != "" {
		container += fmt.Sprintf(` data-color=%q`, form.Color)
	}
	container += "></div>"

	snippet := container + "\n" + fmt.Sprintf(
		`<script src="%s/widget.js" data-server=%q async></script>`,
		f.baseURL, f.baseURL,
	)

	return models.EmbedResponse{Snippet: snippet}, nil
}
