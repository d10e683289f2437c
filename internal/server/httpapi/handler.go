package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/burakkoc5/falimatik/internal/logging"
)

const maxBodyBytes = 1 << 20

// appHandler is a handler that reports failures by returning them.
type appHandler func(w http.ResponseWriter, r *http.Request) error

// makeHandler adapts an appHandler, turning a returned error into an
// envelope. 4xx are logged as warnings, 5xx as errors.
func makeHandler(l logging.Logger, h appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		status, message := statusFor(err)
		ctx := r.Context()
		if status >= http.StatusInternalServerError {
			l.Error(ctx, "request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
		} else {
			l.Warn(ctx, "request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
		}

		if status == http.StatusUnauthorized {
			respondUnauthorizedWith(w, message)
			return
		}
		respondJSON(w, status, message, nil)
	}
}

func respondUnauthorizedWith(w http.ResponseWriter, message string) {
	if message == msgUnauthenticated {
		respondUnauthenticated(w)
		return
	}
	respondJSON(w, http.StatusUnauthorized, message, nil)
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errBadRequest("Request body is empty", err)
		}
		return errBadRequest("Invalid request payload", err)
	}
	if dec.More() {
		return errBadRequest("Request body must contain a single JSON object", nil)
	}
	return nil
}
