// Package credentials owns user identity records: it validates and hashes
// registrations, looks users up, applies whitelisted profile updates and
// verifies passwords. Verification token persistence is exposed for the
// verification manager only.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/server/models"
	"github.com/burakkoc5/falimatik/internal/server/repositories/repomanager"
	"github.com/burakkoc5/falimatik/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost keeps a bcrypt compare in the 100ms+ range on current hardware.
const DefaultHashCost = 12

// Registration is raw signup input.
type Registration struct {
	Email     string
	Username  string
	Password  string
	BirthDate string
	Gender    string
}

// UserUpdate lists the only fields a profile update may touch. Nil means
// unchanged. Email is deliberately absent.
type UserUpdate struct {
	Username  *string
	Password  *string
	BirthDate *string
	Gender    *string
}

func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Password == nil && u.BirthDate == nil && u.Gender == nil
}

type Store struct {
	repos repomanager.RepositoryManager
	cost  int
	now   func() time.Time
	newID func() string

	dummyOnce sync.Once
	dummyHash []byte
}

// NewStore builds a Store over repos. A cost outside bcrypt's range falls
// back to DefaultHashCost.
func NewStore(repos repomanager.RepositoryManager, cost int) *Store {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &Store{repos: repos, cost: cost, now: time.Now}
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.repos.Users().ExistsByEmail(ctx, models.NormalizeEmail(email))
}

func (s *Store) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.repos.Users().ExistsByUsername(ctx, username)
}

func (s *Store) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Create validates reg, hashes the password and inserts an unverified user.
// Duplicates are reported as common.ErrConflict, whether caught by the
// pre-check or by the storage constraint.
func (s *Store) Create(ctx context.Context, reg Registration) (*models.User, error) {
	now := s.now()

	email, err := validateEmail(reg.Email)
	if err != nil {
		return nil, err
	}
	username, err := validateUsername(reg.Username)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(reg.Password); err != nil {
		return nil, err
	}
	birthDate, err := validateBirthDate(reg.BirthDate, now)
	if err != nil {
		return nil, err
	}
	gender, err := validateGender(reg.Gender)
	if err != nil {
		return nil, err
	}

	repo := s.repos.Users()
	if taken, err := repo.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("email %w", common.ErrConflict)
	}
	if taken, err := repo.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("username %w", common.ErrConflict)
	}

	hash, err := s.hash(reg.Password)
	if err != nil {
		return nil, err
	}

	u := models.NewUser(models.NewUserParams{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		BirthDate:    birthDate,
		Gender:       gender,
	}, now, s.newID)

	return repo.Create(ctx, u)
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.repos.Users().GetByID(ctx, id)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repos.Users().GetByEmail(ctx, models.NormalizeEmail(email))
}

func (s *Store) FindByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return s.repos.Users().GetByVerificationToken(ctx, token)
}

// Update applies upd to the user inside a transaction holding the row lock.
// The zodiac sign stays as computed at creation even if the birth date
// changes.
func (s *Store) Update(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	var (
		username  string
		hash      string
		birthDate time.Time
		gender    models.Gender
		err       error
	)
	now := s.now()

	// validate and hash outside the transaction
	if upd.Username != nil {
		if username, err = validateUsername(*upd.Username); err != nil {
			return nil, err
		}
	}
	if upd.Password != nil {
		if err = validatePassword(*upd.Password); err != nil {
			return nil, err
		}
		if hash, err = s.hash(*upd.Password); err != nil {
			return nil, err
		}
	}
	if upd.BirthDate != nil {
		if birthDate, err = validateBirthDate(*upd.BirthDate, now); err != nil {
			return nil, err
		}
	}
	if upd.Gender != nil {
		if gender, err = validateGender(*upd.Gender); err != nil {
			return nil, err
		}
	}

	var updated *models.User
	err = s.repos.InTx(ctx, func(ctx context.Context, repo users.Repository) error {
		u, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if upd.Username != nil && username != u.Username {
			taken, err := repo.ExistsByUsername(ctx, username)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("username %w", common.ErrConflict)
			}
			u.Username = username
		}
		if upd.Password != nil {
			u.PasswordHash = hash
		}
		if upd.BirthDate != nil {
			u.BirthDate = birthDate
		}
		if upd.Gender != nil {
			u.Gender = gender
		}
		u.Touch(now)

		updated, err = repo.Update(ctx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	return s.repos.Users().Delete(ctx, id)
}

// VerifyPassword reports whether plaintext matches the stored hash.
func (s *Store) VerifyPassword(u *models.User, plaintext string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// CompareDummyPassword spends one bcrypt comparison against a random hash.
// Signin calls it for unknown emails so both failure paths cost the same.
func (s *Store) CompareDummyPassword(plaintext string) {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword(common.GenerateRandByteArray(32), s.cost)
		if err == nil {
			s.dummyHash = h
		}
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(plaintext))
}

// AssignVerificationToken stores token for an unverified user. It returns
// common.ErrAlreadyVerified for a verified user and common.ErrorNotFound for
// an unknown one.
func (s *Store) AssignVerificationToken(ctx context.Context, userID, token string) error {
	repo := s.repos.Users()
	ok, err := repo.AssignVerificationToken(ctx, userID, token, s.now().UTC())
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	u, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.IsVerified {
		return common.ErrAlreadyVerified
	}
	return errors.New("verification token was not stored")
}

// RedeemVerificationToken atomically verifies the owner of token and clears
// the token.
func (s *Store) RedeemVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return s.repos.Users().RedeemVerificationToken(ctx, token, s.now().UTC())
}
