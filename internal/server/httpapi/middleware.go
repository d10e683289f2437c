package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/server/auth"
	"github.com/go-chi/chi/v5/middleware"
)

// requireAuth rejects requests without a valid bearer session token and
// stores the claims of accepted ones in the request context.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.guard.Authenticate(r.Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			var ge *auth.GuardError
			if errors.As(err, &ge) {
				a.logger.Warn(r.Context(), "unauthenticated request",
					"path", r.URL.Path, "reason", string(ge.Reason), "error", ge.Err)
			} else {
				a.logger.Warn(r.Context(), "unauthenticated request", "path", r.URL.Path, "error", err)
			}
			respondUnauthenticated(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

// requestLogger writes one structured line per request.
func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		a.logger.Info(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
