package services

import (
	"context"
	"errors"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/logging"
	"github.com/burakkoc5/falimatik/internal/server/models"
	"github.com/burakkoc5/falimatik/internal/server/numbers"
)

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// NumbersService serves the daily numbers of authenticated users. A zero date
// means today in UTC.
type NumbersService struct {
	users  UserFinder
	now    func() time.Time
	logger logging.Logger
}

func NewNumbersService(users UserFinder, l logging.Logger) *NumbersService {
	return &NumbersService{users: users, now: time.Now, logger: l.With("module", "numbers_service")}
}

func (s *NumbersService) day(date time.Time) time.Time {
	if date.IsZero() {
		return s.now().UTC()
	}
	return date
}

func (s *NumbersService) Daily(_ context.Context, date time.Time) numbers.Daily {
	return numbers.Power(s.day(date))
}

// Personal looks the user up for the birth date. A user deleted after the
// token was issued yields common.ErrorNotFound.
func (s *NumbersService) Personal(ctx context.Context, userID string, date time.Time) (*numbers.Personal, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal(ctx, s.logger, "find user", err)
	}

	p := numbers.ForUser(u.ID, u.BirthDate, s.day(date))
	return &p, nil
}
