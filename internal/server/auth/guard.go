// Package auth implements session tokens and the request-time guard that
// turns an Authorization header into authenticated claims.
package auth

import (
	"context"
	"strings"

	"github.com/burakkoc5/falimatik/internal/common"
)

type GuardReason string

const (
	ReasonMissingHeader    GuardReason = "missing authorization header"
	ReasonBadScheme        GuardReason = "unsupported authorization scheme"
	ReasonEmptyCredentials GuardReason = "empty bearer credentials"
	ReasonInvalidToken     GuardReason = "invalid session token"
)

// GuardError is the single failure outcome of the guard. Its message is the
// same for every reason; Reason and the wrapped error are for logs.
type GuardError struct {
	Reason GuardReason
	Err    error
}

func (e *GuardError) Error() string { return common.ErrUnauthenticated.Error() }

func (e *GuardError) Is(target error) bool { return target == common.ErrUnauthenticated }

func (e *GuardError) Unwrap() error { return e.Err }

// Validator checks a raw session token.
type Validator interface {
	Validate(token string) (*Claims, error)
}

type Guard struct {
	validator Validator
}

func NewGuard(v Validator) *Guard {
	return &Guard{validator: v}
}

// Authenticate inspects the value of an Authorization header. The scheme
// must be Bearer (case-insensitive) followed by a non-empty credential.
func (g *Guard) Authenticate(header string) (*Claims, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, &GuardError{Reason: ReasonMissingHeader}
	}

	scheme, credentials, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, common.BearerScheme) {
		return nil, &GuardError{Reason: ReasonBadScheme}
	}

	credentials = strings.TrimSpace(credentials)
	if credentials == "" {
		return nil, &GuardError{Reason: ReasonEmptyCredentials}
	}

	claims, err := g.validator.Validate(credentials)
	if err != nil {
		return nil, &GuardError{Reason: ReasonInvalidToken, Err: err}
	}
	return claims, nil
}

type ctxKey struct{}

// WithClaims stores authenticated claims in ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClaimsFromContext returns the claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok && c != nil
}
