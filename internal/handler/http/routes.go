package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Web and API paths referenced by redirects and the password change gate.
const (
	pathLogin                  = "/accounts/login/"
	pathLogout                 = "/accounts/logout/"
	pathPasswordChangeRequired = "/accounts/password/change-required/"
	pathRecover                = "/accounts/recover/"
	pathRecoverVerify          = "/accounts/recover/verify/"
	pathHome                   = "/home"
	pathHealth                 = "/health"
	pathPing                   = "/ping"
	pathAPIInitialPassword     = "/api/auth/password/initial"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.GetHead)
	router.Use(h.withTraceID)
	router.Use(withLogging)

	// probes
	router.Get(pathHealth, h.health)
	router.Get(pathPing, h.ping)
	router.Get("/api/version", h.getServerVersion)

	// credentials in the body decide; a stale Authorization header must not
	router.With(middleware.Compress(5, "application/json")).Post("/api/auth/login", h.apiLogin)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5, "application/json", "text/html"))
		r.Use(h.authenticate)
		r.Use(h.forcePasswordChange)

		// routes without authorization
		r.Get(pathLogin, h.loginPage)
		r.Post(pathLogin, h.loginSubmit)
		r.Get(pathRecover, h.recoverRequestPage)
		r.Post(pathRecover, h.recoverRequestSubmit)
		r.Get(pathRecoverVerify, h.recoverVerifyPage)
		r.Post(pathRecoverVerify, h.recoverVerifySubmit)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Post(pathAPIInitialPassword, h.apiInitialPassword)

			r.Route("/api/users", func(r chi.Router) {
				r.Get("/by-role", h.usersByRole)
				r.Post("/{id}/deactivate", h.deactivateUser)
				r.Post("/{id}/restore", h.restoreUser)
				r.Post("/{id}/force-password-change", h.forceUserPasswordChange)
				r.Delete("/{id}", h.deleteUser)
			})

			r.Post(pathLogout, h.logout)
			r.Get(pathPasswordChangeRequired, h.passwordChangeRequiredPage)
			r.Post(pathPasswordChangeRequired, h.passwordChangeRequiredSubmit)
			r.Get(pathHome, h.home)
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, pathHome, http.StatusFound)
			})
		})
	})

	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}
