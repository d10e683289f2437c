// Package services holds the server's business flows. AuthService runs the
// signup, signin and email verification lifecycle; UserService serves the
// authenticated user's own profile.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/logging"
	"github.com/burakkoc5/falimatik/internal/server/auth"
	"github.com/burakkoc5/falimatik/internal/server/credentials"
	"github.com/burakkoc5/falimatik/internal/server/mailer"
	"github.com/burakkoc5/falimatik/internal/server/models"
)

// TokenTypeBearer is reported with every issued session token.
const TokenTypeBearer = "bearer"

// CredentialStore is what AuthService needs from credentials.Store.
type CredentialStore interface {
	Create(ctx context.Context, reg credentials.Registration) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	VerifyPassword(u *models.User, plaintext string) bool
	CompareDummyPassword(plaintext string)
}

type VerificationTokens interface {
	Issue(ctx context.Context, u *models.User) (string, error)
	Redeem(ctx context.Context, token string) (*models.User, error)
}

type SessionIssuer interface {
	Issue(sc auth.SessionClaims) (string, error)
	TTL() time.Duration
}

type MailDispatcher interface {
	Dispatch(ctx context.Context, msg mailer.Message)
}

// TokenPair is the result of a successful signin.
type TokenPair struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

type AuthService struct {
	store    CredentialStore
	tokens   VerificationTokens
	sessions SessionIssuer
	mail     MailDispatcher
	baseURL  string
	logger   logging.Logger
}

func NewAuthService(store CredentialStore, tokens VerificationTokens, sessions SessionIssuer,
	mail MailDispatcher, baseURL string, l logging.Logger) *AuthService {
	return &AuthService{
		store:    store,
		tokens:   tokens,
		sessions: sessions,
		mail:     mail,
		baseURL:  baseURL,
		logger:   l.With("module", "auth_service"),
	}
}

// Signup registers an unverified user, issues a verification token and
// mails it. Mail delivery happens in the background and never fails the
// signup. If the token cannot be stored the new user is removed again.
func (s *AuthService) Signup(ctx context.Context, reg credentials.Registration) (*models.User, error) {
	u, err := s.store.Create(ctx, reg)
	if err != nil {
		if errors.Is(err, common.ErrConflict) || errors.Is(err, common.ErrValidation) {
			return nil, err
		}
		return nil, internal(ctx, s.logger, "create user", err)
	}

	token, err := s.tokens.Issue(ctx, u)
	if err != nil {
		if _, delErr := s.store.Delete(ctx, u.ID); delErr != nil {
			s.logger.Error(ctx, "signup compensation failed", "user_id", u.ID, "error", delErr)
		}
		return nil, internal(ctx, s.logger, "issue verification token", err)
	}

	s.sendVerification(ctx, u, token)
	s.logger.Info(ctx, "user signed up", "user_id", u.ID)

	u.VerificationToken = token
	return u, nil
}

// Signin exchanges email and password for a session token. Unknown email and
// wrong password are indistinguishable; an unverified account is reported
// only after the password matched.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.store.CompareDummyPassword(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, internal(ctx, s.logger, "find user", err)
	}

	if !s.store.VerifyPassword(u, password) {
		return nil, common.ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, common.ErrEmailNotVerified
	}

	token, err := s.sessions.Issue(auth.SessionClaims{UserID: u.ID, Email: u.Email})
	if err != nil {
		return nil, internal(ctx, s.logger, "issue session", err)
	}

	s.logger.Info(ctx, "user signed in", "user_id", u.ID)
	return &TokenPair{AccessToken: token, TokenType: TokenTypeBearer, ExpiresIn: s.sessions.TTL()}, nil
}

// VerifyEmail redeems a verification token. Unknown and already used tokens
// both yield common.ErrInvalidToken.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	u, err := s.tokens.Redeem(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return internal(ctx, s.logger, "redeem verification token", err)
	}

	s.logger.Info(ctx, "email verified", "user_id", u.ID)
	return nil
}

// ResendVerification replaces the pending token of an unverified account and
// mails it again. Unknown and already verified emails succeed silently.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return internal(ctx, s.logger, "find user", err)
	}

	token, err := s.tokens.Issue(ctx, u)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyVerified) {
			return nil
		}
		return internal(ctx, s.logger, "reissue verification token", err)
	}

	s.sendVerification(ctx, u, token)
	return nil
}

func (s *AuthService) sendVerification(ctx context.Context, u *models.User, token string) {
	msg, err := mailer.VerificationMessage(u.Email, u.Username, s.baseURL, token)
	if err != nil {
		s.logger.Error(ctx, "verification email not sent", "user_id", u.ID, "error", err)
		return
	}
	s.mail.Dispatch(ctx, msg)
}

// internal logs err and hides it behind common.ErrorInternal.
func internal(ctx context.Context, l logging.Logger, op string, err error) error {
	l.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}
