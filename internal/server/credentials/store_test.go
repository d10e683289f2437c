package credentials

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/server/models"
	"github.com/burakkoc5/falimatik/internal/server/repositories/repomanager"
	"github.com/burakkoc5/falimatik/internal/zodiac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(repomanager.NewMemoryRepositoryManager(), bcrypt.MinCost)
	s.now = func() time.Time { return fixedNow }
	return s
}

func alice() Registration {
	return Registration{Email: "A@x.com", Username: "alice", Password: "Secret123!", BirthDate: "1990-07-04"}
}

func ptr[T any](v T) *T { return &v }

func TestNewStore_CostFallback(t *testing.T) {
	assert.Equal(t, DefaultHashCost, NewStore(nil, 0).cost)
	assert.Equal(t, DefaultHashCost, NewStore(nil, 99).cost)
	assert.Equal(t, bcrypt.MinCost, NewStore(nil, bcrypt.MinCost).cost)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u, err := s.Create(ctx, alice())
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, zodiac.Cancer, u.Sign)
	assert.Equal(t, models.GenderNotSpecified, u.Gender)
	assert.False(t, u.IsVerified)
	assert.NotEqual(t, "Secret123!", u.PasswordHash)
	assert.True(t, s.VerifyPassword(u, "Secret123!"))
	assert.False(t, s.VerifyPassword(u, "secret123!"))

	ok, err := s.ExistsByEmail(ctx, "a@X.COM")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreate_HashesAreSalted(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, err := s.Create(ctx, alice())
	require.NoError(t, err)
	b, err := s.Create(ctx, Registration{Email: "b@x.com", Username: "bob", Password: "Secret123!", BirthDate: "1991-01-01"})
	require.NoError(t, err)

	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
	assert.True(t, s.VerifyPassword(a, "Secret123!"))
	assert.True(t, s.VerifyPassword(b, "Secret123!"))
}

func TestCreate_Conflicts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	orig, err := s.Create(ctx, alice())
	require.NoError(t, err)

	_, err = s.Create(ctx, Registration{Email: "a@X.com", Username: "other", Password: "p", BirthDate: "2000-01-01"})
	require.ErrorIs(t, err, common.ErrConflict)
	assert.Contains(t, err.Error(), "email")

	_, err = s.Create(ctx, Registration{Email: "new@x.com", Username: "alice", Password: "p", BirthDate: "2000-01-01"})
	require.ErrorIs(t, err, common.ErrConflict)
	assert.Contains(t, err.Error(), "username")

	again, err := s.FindByID(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, orig.PasswordHash, again.PasswordHash)
	assert.Equal(t, orig.UpdatedAt, again.UpdatedAt)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(r *Registration)
		field string
	}{
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }, "email"},
		{"email with name", func(r *Registration) { r.Email = "Alice <a@x.com>" }, "email"},
		{"email without tld", func(r *Registration) { r.Email = "a@localhost" }, "email"},
		{"short username", func(r *Registration) { r.Username = "al" }, "username"},
		{"username with space", func(r *Registration) { r.Username = "al ice" }, "username"},
		{"empty password", func(r *Registration) { r.Password = "" }, "password"},
		{"long password", func(r *Registration) { r.Password = strings.Repeat("x", 73) }, "password"},
		{"unparsable birthdate", func(r *Registration) { r.BirthDate = "04/07/1990" }, "birthdate"},
		{"future birthdate", func(r *Registration) { r.BirthDate = "2030-01-01" }, "birthdate"},
		{"unknown gender", func(r *Registration) { r.Gender = "robot" }, "gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			reg := alice()
			tt.mut(&reg)

			_, err := s.Create(context.Background(), reg)
			require.ErrorIs(t, err, common.ErrValidation)

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestFinders(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u, err := s.Create(ctx, alice())
	require.NoError(t, err)

	got, err := s.FindByEmail(ctx, " A@X.COM ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.FindByEmail(ctx, "ghost@x.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.FindByID(ctx, "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.FindByVerificationToken(ctx, "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u, err := s.Create(ctx, alice())
	require.NoError(t, err)
	_, err = s.Create(ctx, Registration{Email: "b@x.com", Username: "bob", Password: "p", BirthDate: "1980-01-01"})
	require.NoError(t, err)

	s.now = func() time.Time { return fixedNow.Add(time.Hour) }

	t.Run("username taken", func(t *testing.T) {
		_, err := s.Update(ctx, u.ID, UserUpdate{Username: ptr("bob")})
		require.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("whitelisted fields", func(t *testing.T) {
		got, err := s.Update(ctx, u.ID, UserUpdate{
			Username:  ptr("alicia"),
			Password:  ptr("N3wPass!"),
			BirthDate: ptr("1990-12-25"),
			Gender:    ptr("female"),
		})
		require.NoError(t, err)

		assert.Equal(t, "alicia", got.Username)
		assert.Equal(t, "a@x.com", got.Email)
		assert.Equal(t, models.GenderFemale, got.Gender)
		assert.Equal(t, zodiac.Cancer, got.Sign, "sign is fixed at creation")
		assert.True(t, got.BirthDate.Equal(time.Date(1990, 12, 25, 0, 0, 0, 0, time.UTC)))
		assert.True(t, s.VerifyPassword(got, "N3wPass!"))
		assert.False(t, s.VerifyPassword(got, "Secret123!"))
		assert.True(t, got.UpdatedAt.After(u.UpdatedAt))
	})

	t.Run("same username is not a conflict", func(t *testing.T) {
		_, err := s.Update(ctx, u.ID, UserUpdate{Username: ptr("alicia")})
		require.NoError(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := s.Update(ctx, u.ID, UserUpdate{BirthDate: ptr("yesterday")})
		require.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := s.Update(ctx, "ghost", UserUpdate{Gender: ptr("other")})
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestUpdate_UpdatedAtMonotonic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u, err := s.Create(ctx, alice())
	require.NoError(t, err)

	s.now = func() time.Time { return fixedNow.Add(-time.Hour) }
	got, err := s.Update(ctx, u.ID, UserUpdate{Gender: ptr("other")})
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.After(u.UpdatedAt))
}

func TestUserUpdate_Empty(t *testing.T) {
	assert.True(t, UserUpdate{}.Empty())
	assert.False(t, UserUpdate{Gender: ptr("male")}.Empty())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u, err := s.Create(ctx, alice())
	require.NoError(t, err)

	ok, err := s.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerificationTokenPersistence(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u, err := s.Create(ctx, alice())
	require.NoError(t, err)

	require.NoError(t, s.AssignVerificationToken(ctx, u.ID, "tok"))
	got, err := s.FindByVerificationToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	verified, err := s.RedeemVerificationToken(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Empty(t, verified.VerificationToken)

	require.ErrorIs(t, s.AssignVerificationToken(ctx, u.ID, "tok2"), common.ErrAlreadyVerified)
	require.ErrorIs(t, s.AssignVerificationToken(ctx, "ghost", "tok3"), common.ErrorNotFound)

	_, err = s.RedeemVerificationToken(ctx, "tok")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestVerifyPassword_NilOrEmpty(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.VerifyPassword(nil, "x"))
	assert.False(t, s.VerifyPassword(&models.User{}, ""))
}

func TestCompareDummyPassword(t *testing.T) {
	s := newTestStore(t)
	s.CompareDummyPassword("whatever")
	require.NotEmpty(t, s.dummyHash)
	first := s.dummyHash
	s.CompareDummyPassword("again")
	assert.Equal(t, first, s.dummyHash)
}
