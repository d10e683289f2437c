package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/server/auth"
	"github.com/burakkoc5/falimatik/internal/server/credentials"
	"github.com/burakkoc5/falimatik/internal/server/models"
)

// userSummary is the public view of a user. It never carries the password
// hash or the verification token.
type userSummary struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	BirthDate  string    `json:"birthdate"`
	ZodiacSign string    `json:"zodiac_sign"`
	Gender     string    `json:"gender"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func summarize(u *models.User) userSummary {
	return userSummary{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		BirthDate:  u.BirthDate.Format(models.BirthDateLayout),
		ZodiacSign: u.Sign.String(),
		Gender:     string(u.Gender),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// updateRequest accepts only whitelisted fields. Email and zodiac_sign are
// decoded so they can be refused with a clear message.
type updateRequest struct {
	Username   *string         `json:"username"`
	Password   *string         `json:"password"`
	BirthDate  *string         `json:"birthdate"`
	Gender     *string         `json:"gender"`
	Email      json.RawMessage `json:"email"`
	ZodiacSign json.RawMessage `json:"zodiac_sign"`
}

func subject(r *http.Request) (string, error) {
	c, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", common.ErrUnauthenticated
	}
	return c.UserID(), nil
}

func (a *API) handleGetMe(w http.ResponseWriter, r *http.Request) error {
	id, err := subject(r)
	if err != nil {
		return err
	}
	u, err := a.users.Get(r.Context(), id)
	if err != nil {
		return err
	}
	respondOK(w, "User retrieved successfully", summarize(u))
	return nil
}

func (a *API) handleUpdateMe(w http.ResponseWriter, r *http.Request) error {
	id, err := subject(r)
	if err != nil {
		return err
	}

	var req updateRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		return err
	}
	if req.Email != nil {
		return common.NewValidationError("email", "cannot be changed")
	}
	if req.ZodiacSign != nil {
		return common.NewValidationError("zodiac_sign", "is derived from the birth date at signup and cannot be changed")
	}

	u, err := a.users.Update(r.Context(), id, credentials.UserUpdate{
		Username:  req.Username,
		Password:  req.Password,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		return err
	}
	respondOK(w, "User updated successfully", summarize(u))
	return nil
}

func (a *API) handleDeleteMe(w http.ResponseWriter, r *http.Request) error {
	id, err := subject(r)
	if err != nil {
		return err
	}
	if err := a.users.Delete(r.Context(), id); err != nil {
		return err
	}
	respondOK(w, "User deleted successfully", nil)
	return nil
}
