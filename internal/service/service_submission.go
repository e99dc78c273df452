// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SAMAymen/formix/internal/adapter"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/internal/validators"
	"github.com/SAMAymen/formix/models"
)

// Extra columns appended after the field columns in both the spreadsheet and
// CSV exports.
const (
	originColumn      = "Origin"
	submittedAtColumn = "Submitted At"
)

// submissionService is the concrete implementation of SubmissionService. It
// owns the ingestion pipeline: validate, reconcile the sheet header, append
// the row, record the submission, notify the owner.
type submissionService struct {
	formRepository       store.FormRepository
	submissionRepository store.SubmissionRepository
	userRepository       store.UserRepository

	accountService AccountService
	sheets         adapter.SheetsAdapter
	notifier       adapter.Notifier
	validator      validators.FieldValidator

	// sheetLocks serialises header reconciliation and the append per sheet.
	sheetLocks *keyedMutex

	logger *logger.Logger
}

// NewSubmissionService constructs a SubmissionService over the given
// repositories and adapters.
func NewSubmissionService(
	repos *store.Repositories,
	accountService AccountService,
	sheets adapter.SheetsAdapter,
	notifier adapter.Notifier,
	logger *logger.Logger,
) SubmissionService {
	return &submissionService{
		formRepository:       repos.FormRepository,
		submissionRepository: repos.SubmissionRepository,
		userRepository:       repos.UserRepository,
		accountService:       accountService,
		sheets:               sheets,
		notifier:             notifier,
		validator:            validators.NewFieldValidator(),
		sheetLocks:           newKeyedMutex(),
		logger:               logger,
	}
}

// Ingest implements [SubmissionService].
//
// Pipeline order matters: the payload is validated before any provider call,
// the idempotency key is checked before any row is appended, and the
// submission record is written only after the provider accepted the row. The
// owner notification is fire-and-forget and cannot fail the request.
func (s *submissionService) Ingest(ctx context.Context, formID string, payload map[string]any, idempotencyKey, origin string) (models.Submission, error) {
	log := logger.FromContext(ctx)

	form, err := s.formRepository.GetForm(ctx, formID)
	if err != nil {
		return models.Submission{}, fmt.Errorf("form lookup failed: %w", err)
	}
	if form.Archived {
		return models.Submission{}, store.ErrFormNotFound
	}
	form.Normalize()

	if err = s.validatePayload(form, payload); err != nil {
		return models.Submission{}, err
	}

	if idempotencyKey != "" {
		existing, err := s.submissionRepository.FindByIdempotencyKey(ctx, formID, idempotencyKey)
		if err == nil {
			log.Info().Str("form_id", formID).Msg("replayed submission answered from record")
			return existing, nil
		}
		if !errors.Is(err, store.ErrSubmissionNotFound) {
			return models.Submission{}, err
		}
	}

	if form.SheetID == "" {
		return models.Submission{}, ErrNoSpreadsheetConnected
	}

	account, err := s.accountService.EnsureFreshAccount(ctx, form.OwnerID)
	if err != nil {
		// A sheet is connected but its grant is gone; the owner must go
		// through the consent flow again.
		if errors.Is(err, store.ErrAccountNotFound) {
			return models.Submission{}, ErrReconnectRequired
		}
		return models.Submission{}, err
	}

	submittedAt := time.Now()
	row := buildRow(form, payload, origin, submittedAt)

	if err = s.appendWithHeader(ctx, form, account, row); err != nil {
		return models.Submission{}, err
	}

	submission := models.Submission{
		FormID:         formID,
		Payload:        payload,
		IdempotencyKey: idempotencyKey,
		Origin:         origin,
	}
	saved, err := s.submissionRepository.CreateSubmission(ctx, submission)
	if err != nil {
		// A concurrent replay of the same key lost the race; answer with the
		// record the winner wrote.
		if errors.Is(err, store.ErrDuplicateSubmission) && idempotencyKey != "" {
			return s.submissionRepository.FindByIdempotencyKey(ctx, formID, idempotencyKey)
		}
		log.Err(err).Str("form_id", formID).Msg("submission was appended to sheet but not recorded")
		return models.Submission{}, err
	}

	s.notifyOwner(ctx, form, saved.CreatedAt)

	return saved, nil
}

// appendWithHeader reconciles the sheet header and appends the row under the
// per-sheet lock. A provider 401 mid-flight triggers exactly one forced token
// refresh before the call is repeated.
func (s *submissionService) appendWithHeader(ctx context.Context, form models.Form, account models.Account, row []string) error {
	lock := s.sheetLocks.get(form.SheetID)
	lock.Lock()
	defer lock.Unlock()

	token := account.AccessToken

	header, err := s.sheets.ReadHeaderRow(ctx, token, form.SheetID)
	if errors.Is(err, adapter.ErrTokenRejected) {
		account, err = s.accountService.ForceRefresh(ctx, form.OwnerID)
		if err != nil {
			return err
		}
		token = account.AccessToken
		header, err = s.sheets.ReadHeaderRow(ctx, token, form.SheetID)
	}
	if err != nil {
		return mapSheetsFailure(err)
	}

	if len(header) == 0 {
		if err = s.sheets.AppendRow(ctx, token, form.SheetID, sheetHeader(form)); err != nil {
			return mapSheetsFailure(err)
		}
	}

	if err = s.sheets.AppendRow(ctx, token, form.SheetID, row); err != nil {
		return mapSheetsFailure(err)
	}

	return nil
}

// validatePayload re-checks every field server-side. The widget validates
// inline, but the ingestion endpoint is open and cannot trust its callers.
func (s *submissionService) validatePayload(form models.Form, payload map[string]any) error {
	for _, field := range form.Fields {
		if field.Type == models.FieldCTA {
			continue
		}

		raw, ok := lookupValue(form, payload, field)

		if field.MultiValue() || field.Type == models.FieldRadio {
			var selected []string
			if ok {
				selected = flattenValues(raw)
			}
			if err := s.validator.ValidateGroup(field, selected); err != nil {
				return fmt.Errorf("%w: field %q: %w", ErrValidationFailed, fieldName(field), err)
			}
			continue
		}

		var value string
		if ok {
			value = flattenValue(raw)
		}
		if err := s.validator.ValidateValue(field, value); err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrValidationFailed, fieldName(field), err)
		}
	}

	return nil
}

// notifyOwner fires the submission notification without holding up the
// response. Failures are logged and dropped.
func (s *submissionService) notifyOwner(ctx context.Context, form models.Form, submittedAt time.Time) {
	bgCtx := context.WithoutCancel(ctx)
	log := logger.FromContext(ctx)

	go func() {
		owner, err := s.userRepository.FindUserByID(bgCtx, form.OwnerID)
		if err != nil {
			log.Err(err).Int64("owner_id", form.OwnerID).Msg("owner lookup for notification failed")
			return
		}
		if !owner.NotifyOnSubmission || owner.Email == "" {
			return
		}

		if err = s.notifier.SubmissionReceived(bgCtx, owner.Email, form.Title, submittedAt); err != nil {
			log.Err(err).Str("form_id", form.FormID).Msg("owner notification failed")
		}
	}()
}

// ListSubmissions implements [SubmissionService].
func (s *submissionService) ListSubmissions(ctx context.Context, ownerID int64, formID string, filter store.SubmissionFilter) (models.SubmissionPage, error) {
	if err := s.checkOwnership(ctx, ownerID, formID); err != nil {
		return models.SubmissionPage{}, err
	}

	items, total, err := s.submissionRepository.ListSubmissions(ctx, formID, filter)
	if err != nil {
		return models.SubmissionPage{}, fmt.Errorf("submission listing failed: %w", err)
	}

	return models.SubmissionPage{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// ExportCSV implements [SubmissionService]. Rows are written in submission
// order with the same columns a freshly bootstrapped sheet would carry.
func (s *submissionService) ExportCSV(ctx context.Context, ownerID int64, formID string, w io.Writer) error {
	form, err := s.formRepository.GetForm(ctx, formID)
	if err != nil {
		return fmt.Errorf("form lookup failed: %w", err)
	}
	if form.OwnerID != ownerID {
		return store.ErrFormNotFound
	}
	form.Normalize()

	items, _, err := s.submissionRepository.ListSubmissions(ctx, formID, store.SubmissionFilter{})
	if err != nil {
		return fmt.Errorf("submission listing failed: %w", err)
	}

	cw := csv.NewWriter(w)
	if err = cw.Write(sheetHeader(form)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, item := range items {
		if err = cw.Write(buildRow(form, item.Payload, item.Origin, item.CreatedAt)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

func (s *submissionService) checkOwnership(ctx context.Context, ownerID int64, formID string) error {
	form, err := s.formRepository.GetForm(ctx, formID)
	if err != nil {
		return fmt.Errorf("form lookup failed: %w", err)
	}
	if form.OwnerID != ownerID {
		return store.ErrFormNotFound
	}

	return nil
}

// sheetHeader is the column contract written at bootstrap time: one column
// per non-cta field in definition order, then origin and timestamp.
func sheetHeader(form models.Form) []string {
	header := make([]string, 0, len(form.Fields)+2)
	for _, field := range form.Fields {
		if field.Type == models.FieldCTA {
			continue
		}
		header = append(header, fieldName(field))
	}

	return append(header, originColumn, submittedAtColumn)
}

// buildRow maps a payload onto the header columns. Field order is
// authoritative; values never shift columns even when the payload carries
// extra or missing keys.
func buildRow(form models.Form, payload map[string]any, origin string, submittedAt time.Time) []string {
	row := make([]string, 0, len(form.Fields)+2)
	for _, field := range form.Fields {
		if field.Type == models.FieldCTA {
			continue
		}

		raw, ok := lookupValue(form, payload, field)
		if !ok {
			row = append(row, "")
			continue
		}
		row = append(row, flattenValue(raw))
	}

	return append(row, origin, submittedAt.UTC().Format(time.RFC3339))
}

// lookupValue resolves the payload value for a field: the field id is the
// documented key, the label a compatibility fallback for older embeds. The
// label shim only applies when [models.Form.FieldByKey] resolves that label
// back to this field, so a label colliding with another field's id never
// steals its value.
func lookupValue(form models.Form, payload map[string]any, field models.Field) (any, bool) {
	if raw, ok := payload[field.FieldID]; ok {
		return raw, true
	}
	if owner, ok := form.FieldByKey(field.Label); ok && owner.FieldID == field.FieldID {
		if raw, ok := payload[field.Label]; ok {
			return raw, true
		}
	}

	return nil, false
}

// flattenValue renders any payload value as one spreadsheet cell.
// Multi-value answers are comma-joined.
func flattenValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		return strings.Join(flattenValues(v), ", ")
	case []string:
		return strings.Join(v, ", ")
	case float64:
		// JSON numbers decode as float64; integral values render without a
		// fractional part.
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func flattenValues(raw any) []string {
	switch v := raw.(type) {
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			values = append(values, flattenValue(item))
		}
		return values
	case []string:
		return v
	default:
		return []string{flattenValue(v)}
	}
}

func fieldName(field models.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.FieldID
}

// mapSheetsFailure folds adapter sentinels into the service-level errors the
// transport layer knows how to answer.
func mapSheetsFailure(err error) error {
	switch {
	case errors.Is(err, adapter.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrSheetPermissionDenied, err)
	case errors.Is(err, adapter.ErrSpreadsheetNotFound):
		return fmt.Errorf("%w: %w", ErrSheetNotFound, err)
	case errors.Is(err, adapter.ErrTokenRejected):
		return fmt.Errorf("%w: %w", ErrReconnectRequired, err)
	default:
		return err
	}
}
