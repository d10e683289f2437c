package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a session token.
const DefaultSessionTTL = 30 * time.Minute

// Claims is the payload of a session token. Subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func (c *Claims) UserID() string { return c.Subject }

// SessionClaims identifies the user a token is issued for.
type SessionClaims struct {
	UserID string
	Email  string
}

// Sessions issues and validates HS256 session tokens. It is safe for
// concurrent use; validation does no I/O.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Sessions) TTL() time.Duration { return s.ttl }

func (s *Sessions) Issue(sc SessionClaims) (string, error) {
	if sc.UserID == "" {
		return "", errors.New("session subject is empty")
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sc.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: sc.Email,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, algorithm and expiry. Every failure matches
// common.ErrInvalidToken; the wrapped text is meant for logs only.
func (s *Sessions) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", common.ErrInvalidToken)
	}

	return claims, nil
}
