package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	authBasePath    = "/auth"
	usersBasePath   = "/users"
	numbersBasePath = "/numbers"
	paramToken      = "token"
	queryDate       = "date"
)

// Routes builds the chi router with the full middleware stack.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route(authBasePath, func(r chi.Router) {
		r.Post("/signup", makeHandler(a.logger, a.handleSignup))
		r.Post("/signin", makeHandler(a.logger, a.handleSignin))
		r.Post("/resend-verification", makeHandler(a.logger, a.handleResendVerification))

		verify := makeHandler(a.logger, a.handleVerifyEmail)
		r.Post("/verify/{"+paramToken+"}", verify)
		r.Get("/verify/{"+paramToken+"}", verify)
	})

	r.Route(usersBasePath, func(r chi.Router) {
		r.Use(a.requireAuth)
		r.Get("/me", makeHandler(a.logger, a.handleGetMe))
		r.Put("/me", makeHandler(a.logger, a.handleUpdateMe))
		r.Delete("/me", makeHandler(a.logger, a.handleDeleteMe))
	})

	r.Route(numbersBasePath, func(r chi.Router) {
		r.Use(a.requireAuth)
		r.Get("/daily", makeHandler(a.logger, a.handleDailyNumbers))
		r.Get("/lucky", makeHandler(a.logger, a.handleLuckyNumbers))
	})

	r.Get("/healthz", handleHealthCheck)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, msgNotFound, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(headerContentType, "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
