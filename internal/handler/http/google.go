// SPDX-License-Identifier: Apache-2.0

package http

import (
	"errors"
	"net/http"

	"github.com/SAMAymen/formix/internal/app"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/service"
	"github.com/SAMAymen/formix/internal/utils"
)

// googleAuthorize starts the account-linking flow by redirecting the owner to
// the provider's consent page.
func (h *Handler) googleAuthorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg(app.MsgNoUserIDProvided)
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	consentURL, err := h.services.AccountService.AuthCodeURL(ctx, ownerID)
	if err != nil {
		log.Err(err).Msg("building consent url failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, consentURL, http.StatusFound)
}

// googleCallback completes the linking flow. The provider calls it directly,
// so the owner is identified by the signed state value, not a bearer token.
func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query()
	if providerError := query.Get("error"); providerError != "" {
		log.Error().Str("provider_error", providerError).Msg("consent was denied")
		http.Error(w, "consent was denied", http.StatusBadRequest)
		return
	}

	state := query.Get("state")
	code := query.Get("code")
	if state == "" || code == "" {
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	if err := h.services.AccountService.HandleCallback(ctx, state, code); err != nil {
		if errors.Is(err, service.ErrInvalidOAuthState) {
			http.Error(w, service.ErrInvalidOAuthState.Error(), http.StatusUnauthorized)
			return
		}
		log.Err(err).Msg("oauth callback handling failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Spreadsheet account linked. You can close this window."))
}
