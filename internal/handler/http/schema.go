// SPDX-License-Identifier: Apache-2.0

package http

import (
	"errors"
	"net/http"

	"github.com/SAMAymen/formix/internal/app"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/internal/utils"
	"github.com/go-chi/chi/v5"
)

// getSchema serves the public render contract of a form. It is CORS-open and
// unauthenticated; archived and unknown forms both answer 404.
func (h *Handler) getSchema(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	formID := chi.URLParam(r, "formID")

	schema, err := h.services.FormService.GetSchema(ctx, formID)
	if err != nil {
		if errors.Is(err, store.ErrFormNotFound) {
			http.Error(w, app.MsgFormNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Str("form_id", formID).Msg("schema lookup failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// Schemas are immutable per version, so embedding pages can cache them
	// briefly without polling every render.
	w.Header().Set("Cache-Control", "public, max-age=60")
	utils.WriteJSON(w, schema, http.StatusOK)
}

// getEmbed serves the copy-paste embed snippet.
func (h *Handler) getEmbed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	formID := chi.URLParam(r, "formID")

	embed, err := h.services.FormService.EmbedSnippet(ctx, formID)
	if err != nil {
		if errors.Is(err, store.ErrFormNotFound) {
			http.Error(w, app.MsgFormNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Str("form_id", formID).Msg("embed snippet generation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, embed, http.StatusOK)
}
