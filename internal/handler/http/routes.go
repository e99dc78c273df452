package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// public widget surface, CORS-open
	router.Group(func(r chi.Router) {
		r.Use(h.withCORS)
		r.Get("/api/forms/{formID}/schema", h.getSchema)
		r.Post("/api/forms/{formID}/submissions", h.submit)
		r.Options("/api/forms/{formID}/schema", h.preflight)
		r.Options("/api/forms/{formID}/submissions", h.preflight)
	})

	// owner auth
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// management API, bearer-token protected
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/forms", h.createForm)
		r.Get("/api/forms", h.listForms)
		r.Get("/api/forms/{formID}", h.getForm)
		r.Put("/api/forms/{formID}", h.updateForm)
		r.Delete("/api/forms/{formID}", h.archiveForm)
		r.Get("/api/forms/{formID}/embed", h.getEmbed)

		r.Get("/api/forms/{formID}/submissions", h.listSubmissions)
		r.Get("/api/forms/{formID}/submissions/export", h.exportSubmissions)

		r.Get("/api/google/authorize", h.googleAuthorize)
	})

	// the provider redirects here; identity travels in the signed state
	router.Get("/api/google/callback", h.googleCallback)

	router.Get("/api/version/", h.getServerVersion)
	router.Get("/ping", h.ping)

	return router
}
