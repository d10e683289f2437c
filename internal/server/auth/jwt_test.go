package auth

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(secret string, now time.Time) *Sessions {
	s := NewSessions(secret, 30*time.Minute)
	s.now = func() time.Time { return now }
	return s
}

func TestIssueAndValidate(t *testing.T) {
	t.Parallel()
	now := time.Now()
	s := newTestSessions("super-secret", now)

	tok, err := s.Issue(SessionClaims{UserID: "user-123", Email: "a@x.com"})
	require.NoError(t, err)

	c, err := s.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", c.UserID())
	assert.Equal(t, "a@x.com", c.Email)
	assert.Equal(t, now.Unix(), c.IssuedAt.Unix())
	assert.Equal(t, now.Add(30*time.Minute).Unix(), c.ExpiresAt.Unix())
}

func TestValidate_Expiry(t *testing.T) {
	t.Parallel()
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestSessions("secret", issued)

	tok, err := s.Issue(SessionClaims{UserID: "u1"})
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(29 * time.Minute) }
	_, err = s.Validate(tok)
	require.NoError(t, err, "still valid before expiry")

	s.now = func() time.Time { return issued.Add(31 * time.Minute) }
	_, err = s.Validate(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()
	now := time.Now()
	tok, err := newTestSessions("right-secret", now).Issue(SessionClaims{UserID: "u2"})
	require.NoError(t, err)

	other := newTestSessions("wrong-secret", now)
	_, err = other.Validate(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	// still rejected long before expiry would matter
	other.now = func() time.Time { return now.Add(-time.Hour) }
	_, err = other.Validate(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestValidate_Malformed(t *testing.T) {
	t.Parallel()
	s := newTestSessions("k", time.Now())

	for _, tok := range []string{"", "not.a.jwt", "abc", strings.Repeat("x", 200)} {
		_, err := s.Validate(tok)
		require.ErrorIs(t, err, common.ErrInvalidToken, tok)
	}
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	now := time.Now()
	s := newTestSessions("k", now)

	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = s.Validate(hs512)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Validate(none)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestValidate_RequiresExpiryAndSubject(t *testing.T) {
	t.Parallel()
	s := newTestSessions("k", time.Now())

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = s.Validate(noExp)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = s.Validate(noSub)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestIssue_EmptySubject(t *testing.T) {
	_, err := NewSessions("k", 0).Issue(SessionClaims{})
	require.Error(t, err)
}

func TestNewSessions_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultSessionTTL, NewSessions("k", 0).TTL())
	assert.Equal(t, time.Minute, NewSessions("k", time.Minute).TTL())
}

func TestValidate_Concurrent(t *testing.T) {
	s := NewSessions("k", time.Hour)
	tok, err := s.Issue(SessionClaims{UserID: "u"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Validate(tok)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
