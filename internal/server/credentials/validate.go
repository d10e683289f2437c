package credentials

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/server/models"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_.\-]{3,32}$`)

func validateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", common.NewValidationError("email", "is not a valid address")
	}
	at := strings.LastIndexByte(email, '@')
	if at < 1 || !strings.Contains(email[at+1:], ".") {
		return "", common.NewValidationError("email", "is not a valid address")
	}
	return models.NormalizeEmail(email), nil
}

func validateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if !usernameRe.MatchString(username) {
		return "", common.NewValidationError("username", "must be 3-32 letters, digits, '.', '_' or '-'")
	}
	return username, nil
}

func validatePassword(password string) error {
	if password == "" {
		return common.NewValidationError("password", "must not be empty")
	}
	if len(password) > maxPasswordBytes {
		return common.NewValidationError("password", "must be at most 72 bytes")
	}
	return nil
}

func validateBirthDate(s string, now time.Time) (time.Time, error) {
	d, err := time.Parse(models.BirthDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, common.NewValidationError("birthdate", "must be a date formatted as YYYY-MM-DD")
	}
	if d.After(now) {
		return time.Time{}, common.NewValidationError("birthdate", "must not be in the future")
	}
	return d, nil
}

func validateGender(s string) (models.Gender, error) {
	g, ok := models.ParseGender(s)
	if !ok {
		return "", common.NewValidationError("gender", "must be one of male, female, other, not_specified")
	}
	return g, nil
}
