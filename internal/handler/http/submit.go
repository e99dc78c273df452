// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SAMAymen/formix/internal/app"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/service"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/internal/utils"
	"github.com/SAMAymen/formix/models"
	"github.com/go-chi/chi/v5"
)

// idempotencyKeyHeader carries the widget's replay-detection key. The payload
// fields are fallbacks for embeds that cannot set headers; browsers set the
// Origin header themselves.
const (
	idempotencyKeyHeader = "Idempotency-Key"
	idempotencyKeyField  = "_idempotencyKey"
	originField          = "_origin"
)

// submit is the ingestion endpoint. Every branch, including malformed input,
// answers with the structured [models.SubmitResponse] envelope so embedded
// widgets never have to parse an error page.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	formID := chi.URLParam(r, "formID")

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Err(err).Str("form_id", formID).Msg("malformed submission body")
		writeSubmitError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	idempotencyKey := r.Header.Get(idempotencyKeyHeader)
	if raw, ok := payload[idempotencyKeyField]; ok {
		if key, isString := raw.(string); isString && idempotencyKey == "" {
			idempotencyKey = key
		}
		delete(payload, idempotencyKeyField)
	}

	origin := r.Header.Get("Origin")
	if raw, ok := payload[originField]; ok {
		if value, isString := raw.(string); isString && origin == "" {
			origin = value
		}
		delete(payload, originField)
	}

	submission, err := h.services.SubmissionService.Ingest(ctx, formID, payload, idempotencyKey, origin)
	if err != nil {
		message, status := submitFailure(err)
		log.Err(err).Str("form_id", formID).Int("status", status).Msg("submission rejected")
		writeSubmitError(w, message, status)
		return
	}

	utils.WriteJSON(w, models.SubmitResponse{
		Success:   true,
		Message:   app.MsgSubmissionAccepted,
		Timestamp: submission.CreatedAt.UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// submitFailure maps pipeline errors to the user-facing message and status of
// the envelope.
func submitFailure(err error) (string, int) {
	status := statusFromError(err)

	switch {
	case errors.Is(err, service.ErrValidationFailed):
		return err.Error(), status
	case errors.Is(err, store.ErrFormNotFound):
		return app.MsgFormNotFound, status
	case errors.Is(err, service.ErrNoSpreadsheetConnected):
		return app.MsgFormConfigurationError, status
	case errors.Is(err, service.ErrReconnectRequired):
		return app.MsgReconnectRequired, status
	case errors.Is(err, service.ErrSheetPermissionDenied):
		return app.MsgSheetPermissionDenied, status
	case errors.Is(err, service.ErrSheetNotFound):
		return app.MsgSheetNotFound, status
	default:
		return app.MsgInternalServerError, status
	}
}

func writeSubmitError(w http.ResponseWriter, message string, status int) {
	utils.WriteJSON(w, models.SubmitResponse{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, status)
}
