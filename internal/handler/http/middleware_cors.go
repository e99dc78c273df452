// SPDX-License-Identifier: Apache-2.0

package http

import "net/http"

// withCORS opens the public widget endpoints to any embedding origin. The
// schema read and the submission post are meant to be called from arbitrary
// third-party pages; the management API never passes through this middleware.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Idempotency-Key, X-Widget-Token, X-Trace-ID")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// preflight terminates OPTIONS requests that made it past withCORS. The
// middleware has already written the CORS headers and the 204.
func (h *Handler) preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
