// Package users persists user accounts. Two implementations exist: Postgres,
// used in production, and an in-memory one used when no database is
// configured and in tests.
package users

import (
	"context"
	"time"

	"github.com/burakkoc5/falimatik/internal/server/models"
)

// Repository is the storage contract of user accounts.
//
// Lookups return common.ErrorNotFound for absent rows. Writes violating the
// email, username or verification token uniqueness return an error matching
// common.ErrConflict whose text names the offending field.
type Repository interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Update writes the mutable profile columns: username, password hash,
	// birth date, gender and updated_at.
	Update(ctx context.Context, u *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	// AssignVerificationToken stores token for an unverified user. It reports
	// false when the user does not exist or is already verified.
	AssignVerificationToken(ctx context.Context, userID, token string, now time.Time) (bool, error)
	// RedeemVerificationToken marks the owner of token verified and clears the
	// token in one step. Unknown or already used tokens yield ErrorNotFound.
	RedeemVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error)
}
