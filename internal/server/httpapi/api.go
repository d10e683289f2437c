// Package httpapi exposes the auth, profile and numbers flows over HTTP with a
// chi router. All responses share the {code, message, data} envelope.
package httpapi

import (
	"context"
	"time"

	"github.com/burakkoc5/falimatik/internal/logging"
	"github.com/burakkoc5/falimatik/internal/server/auth"
	"github.com/burakkoc5/falimatik/internal/server/credentials"
	"github.com/burakkoc5/falimatik/internal/server/models"
	"github.com/burakkoc5/falimatik/internal/server/numbers"
	"github.com/burakkoc5/falimatik/internal/server/services"
)

type AuthFlows interface {
	Signup(ctx context.Context, reg credentials.Registration) (*models.User, error)
	Signin(ctx context.Context, email, password string) (*services.TokenPair, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
}

type Profiles interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, upd credentials.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type Numbers interface {
	Daily(ctx context.Context, date time.Time) numbers.Daily
	Personal(ctx context.Context, userID string, date time.Time) (*numbers.Personal, error)
}

type Authenticator interface {
	Authenticate(header string) (*auth.Claims, error)
}

type API struct {
	auth    AuthFlows
	users   Profiles
	numbers Numbers
	guard   Authenticator
	logger  logging.Logger
}

func NewAPI(a AuthFlows, u Profiles, n Numbers, g Authenticator, l logging.Logger) *API {
	return &API{auth: a, users: u, numbers: n, guard: g, logger: l.With("module", "http_api")}
}
