// SPDX-License-Identifier: Apache-2.0

package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SAMAymen/formix/internal/app"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/internal/utils"
	"github.com/go-chi/chi/v5"
)

const defaultSubmissionPageSize = 50

// listSubmissions answers one page of recorded submissions. Query parameters:
// since (RFC3339), limit, offset.
func (h *Handler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg(app.MsgNoUserIDProvided)
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	filter, err := submissionFilterFromQuery(r)
	if err != nil {
		log.Err(err).Msg("invalid listing parameters")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	page, err := h.services.SubmissionService.ListSubmissions(ctx, ownerID, chi.URLParam(r, "formID"), filter)
	if err != nil {
		log.Err(err).Msg("submission listing failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

// exportSubmissions streams the form's submissions as a CSV attachment.
func (h *Handler) exportSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg(app.MsgNoUserIDProvided)
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	formID := chi.URLParam(r, "formID")

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", formID+"-submissions.csv"))

	if err := h.services.SubmissionService.ExportCSV(ctx, ownerID, formID, w); err != nil {
		// Headers may already be gone; all that is left is to log.
		log.Err(err).Str("form_id", formID).Msg("submission export failed")
		return
	}
}

func submissionFilterFromQuery(r *http.Request) (store.SubmissionFilter, error) {
	filter := store.SubmissionFilter{Limit: defaultSubmissionPageSize}

	if since := r.URL.Query().Get("since"); since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return store.SubmissionFilter{}, fmt.Errorf("parse since: %w", err)
		}
		filter.Since = parsed
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		parsed, err := strconv.ParseUint(limit, 10, 64)
		if err != nil || parsed == 0 {
			return store.SubmissionFilter{}, fmt.Errorf("parse limit: %w", err)
		}
		filter.Limit = parsed
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		parsed, err := strconv.ParseUint(offset, 10, 64)
		if err != nil {
			return store.SubmissionFilter{}, fmt.Errorf("parse offset: %w", err)
		}
		filter.Offset = parsed
	}

	return filter, nil
}
