package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/server/models"
)

// MemoryRepository keeps users in process memory. It enforces the same
// uniqueness rules as the Postgres schema and hands out copies only.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]*models.User
	byEmail    map[string]string
	byUsername map[string]string
	byToken    map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[string]*models.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		byToken:    make(map[string]string),
	}
}

func conflict(field string) error {
	return fmt.Errorf("%s %w", field, common.ErrConflict)
}

func (r *MemoryRepository) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := models.NormalizeEmail(u.Email)
	if _, ok := r.byID[u.ID]; ok {
		return nil, conflict("id")
	}
	if _, ok := r.byEmail[email]; ok {
		return nil, conflict("email")
	}
	if _, ok := r.byUsername[u.Username]; ok {
		return nil, conflict("username")
	}
	if u.VerificationToken != "" {
		if _, ok := r.byToken[u.VerificationToken]; ok {
			return nil, conflict("verification token")
		}
	}

	stored := u.Clone()
	stored.Email = email
	r.byID[stored.ID] = stored
	r.byEmail[email] = stored.ID
	r.byUsername[stored.Username] = stored.ID
	if stored.VerificationToken != "" {
		r.byToken[stored.VerificationToken] = stored.ID
	}

	return stored.Clone(), nil
}

func (r *MemoryRepository) get(id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(id)
}

// GetByIDForUpdate behaves like GetByID. Row locking is provided by the
// serialized transactions of the in-memory manager.
func (r *MemoryRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.get(id)
}

func (r *MemoryRepository) GetByVerificationToken(_ context.Context, token string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byToken[token]
	if !ok || token == "" {
		return nil, common.ErrorNotFound
	}
	return r.get(id)
}

func (r *MemoryRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[models.NormalizeEmail(email)]
	return ok, nil
}

func (r *MemoryRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUsername[username]
	return ok, nil
}

func (r *MemoryRepository) Update(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[u.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if owner, taken := r.byUsername[u.Username]; taken && owner != u.ID {
		return nil, conflict("username")
	}

	delete(r.byUsername, stored.Username)
	stored.Username = u.Username
	stored.PasswordHash = u.PasswordHash
	stored.BirthDate = u.BirthDate
	stored.Gender = u.Gender
	stored.UpdatedAt = u.UpdatedAt
	r.byUsername[stored.Username] = stored.ID

	return stored.Clone(), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	delete(r.byUsername, u.Username)
	if u.VerificationToken != "" {
		delete(r.byToken, u.VerificationToken)
	}
	return true, nil
}

func (r *MemoryRepository) AssignVerificationToken(_ context.Context, userID, token string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok || u.IsVerified {
		return false, nil
	}
	if owner, taken := r.byToken[token]; taken && owner != userID {
		return false, conflict("verification token")
	}

	if u.VerificationToken != "" {
		delete(r.byToken, u.VerificationToken)
	}
	u.VerificationToken = token
	u.Touch(now)
	r.byToken[token] = userID
	return true, nil
}

func (r *MemoryRepository) RedeemVerificationToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byToken[token]
	if !ok || token == "" {
		return nil, common.ErrorNotFound
	}
	u := r.byID[id]
	if u.IsVerified {
		return nil, common.ErrorNotFound
	}

	delete(r.byToken, token)
	u.IsVerified = true
	u.VerificationToken = ""
	u.Touch(now)
	return u.Clone(), nil
}
