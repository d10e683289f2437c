package services

import (
	"context"
	"errors"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/logging"
	"github.com/burakkoc5/falimatik/internal/server/credentials"
	"github.com/burakkoc5/falimatik/internal/server/models"
)

type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, upd credentials.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UserService serves the authenticated user's own account.
type UserService struct {
	store  ProfileStore
	logger logging.Logger
}

func NewUserService(store ProfileStore, l logging.Logger) *UserService {
	return &UserService{store: store, logger: l.With("module", "user_service")}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(ctx, "get user", err)
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, upd credentials.UserUpdate) (*models.User, error) {
	if upd.Empty() {
		return nil, common.NewValidationError("", "nothing to update")
	}
	u, err := s.store.Update(ctx, id, upd)
	if err != nil {
		return nil, s.mapErr(ctx, "update user", err)
	}
	s.logger.Info(ctx, "user updated", "user_id", id)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return s.mapErr(ctx, "delete user", err)
	}
	if !ok {
		return common.ErrorNotFound
	}
	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

func (s *UserService) mapErr(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrConflict),
		errors.Is(err, common.ErrValidation):
		return err
	default:
		return internal(ctx, s.logger, op, err)
	}
}
