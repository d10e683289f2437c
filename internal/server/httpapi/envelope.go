package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/burakkoc5/falimatik/internal/common"
)

const (
	headerContentType     = "Content-Type"
	headerWWWAuthenticate = "WWW-Authenticate"
	contentTypeJSON       = "application/json; charset=utf-8"

	msgUnauthenticated = "Could not validate credentials"
	msgNotFound        = "Resource not found"
	msgInternal        = "Internal Server Error"
	msgBadRequest      = "Bad Request"
)

// Envelope wraps every JSON response.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// HTTPError carries a status code and a user-facing message. The cause is
// logged, never written.
type HTTPError struct {
	cause   error
	Code    int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.cause }

func errBadRequest(message string, cause error) *HTTPError {
	if message == "" {
		message = msgBadRequest
	}
	return &HTTPError{cause: cause, Code: http.StatusBadRequest, Message: message}
}

func respondJSON(w http.ResponseWriter, status int, message string, data any) {
	body, err := json.Marshal(Envelope{Code: status, Message: message, Data: data})
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"code":500,"message":"Internal Server Error","data":null}`)
	}
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondOK(w http.ResponseWriter, message string, data any) {
	respondJSON(w, http.StatusOK, message, data)
}

func respondUnauthenticated(w http.ResponseWriter) {
	w.Header().Set(headerWWWAuthenticate, common.BearerScheme)
	respondJSON(w, http.StatusUnauthorized, msgUnauthenticated, nil)
}

// statusFor maps an error to the status and message written to the client.
// Unknown errors become a generic 500.
func statusFor(err error) (int, string) {
	var (
		httpErr *HTTPError
		valErr  *common.ValidationError
	)

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, httpErr.Message
	case errors.As(err, &valErr):
		return http.StatusBadRequest, valErr.Error()
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, common.ErrValidation.Error()
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, msgUnauthenticated
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrEmailNotVerified):
		return http.StatusUnauthorized, common.ErrEmailNotVerified.Error()
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, common.ErrInvalidToken.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
