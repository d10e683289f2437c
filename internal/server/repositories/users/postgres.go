package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/dbx"
	"github.com/burakkoc5/falimatik/internal/server/models"
	"github.com/burakkoc5/falimatik/internal/zodiac"
)

const userColumns = `id, email, username, password_hash, birth_date, zodiac_sign, gender, is_verified, verification_token, created_at, updated_at`

// constraintFields maps unique constraint names to the field reported in
// conflict errors.
var constraintFields = map[string]string{
	"users_email_key":              "email",
	"users_username_key":           "username",
	"users_verification_token_key": "verification token",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u     models.User
		sign  string
		token sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.BirthDate, &sign,
		&u.Gender, &u.IsVerified, &token, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	u.Sign = zodiac.Sign(sign)
	if !u.Sign.Valid() {
		return nil, fmt.Errorf("db error: unknown zodiac sign %q for user %s", sign, u.ID)
	}
	u.VerificationToken = token.String
	return &u, nil
}

func wrapWriteError(err error) error {
	if constraint, ok := dbx.IsUniqueViolation(err); ok {
		field, known := constraintFields[constraint]
		if !known {
			field = "record"
		}
		return fmt.Errorf("%s %w", field, common.ErrConflict)
	}
	return fmt.Errorf("db error: %w", err)
}

func nullableToken(token string) sql.NullString {
	return sql.NullString{String: token, Valid: token != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (` + userColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, models.NormalizeEmail(u.Email), u.Username, u.PasswordHash, u.BirthDate, string(u.Sign),
		string(u.Gender), u.IsVerified, nullableToken(u.VerificationToken), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return nil, wrapWriteError(err)
	}

	return u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, models.NormalizeEmail(email)))
}

func (r *PostgresRepository) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE verification_token = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, models.NormalizeEmail(email))
}

func (r *PostgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *PostgresRepository) Update(ctx context.Context, u *models.User) (*models.User, error) {
	query :=
		`UPDATE users
		 SET username = $2, password_hash = $3, birth_date = $4, gender = $5, updated_at = $6
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.BirthDate, string(u.Gender), u.UpdatedAt)
	if err != nil {
		return nil, wrapWriteError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return u, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) AssignVerificationToken(ctx context.Context, userID, token string, now time.Time) (bool, error) {
	query :=
		`UPDATE users
		 SET verification_token = $2,
		     updated_at = GREATEST(updated_at + interval '1 microsecond', $3)
		 WHERE id = $1 AND is_verified = FALSE`

	res, err := r.db.ExecContext(ctx, query, userID, token, now)
	if err != nil {
		return false, wrapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) RedeemVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	query :=
		`UPDATE users
		 SET is_verified = TRUE, verification_token = NULL,
		     updated_at = GREATEST(updated_at + interval '1 microsecond', $2)
		 WHERE verification_token = $1 AND is_verified = FALSE
		 RETURNING ` + userColumns

	return scanUser(r.db.QueryRowContext(ctx, query, token, now))
}
