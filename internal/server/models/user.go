package models

import (
	"strings"
	"time"

	"github.com/burakkoc5/falimatik/internal/zodiac"
	"github.com/google/uuid"
)

// BirthDateLayout is the wire and storage layout of a birth date.
const BirthDateLayout = "2006-01-02"

type Gender string

const (
	GenderMale         Gender = "male"
	GenderFemale       Gender = "female"
	GenderOther        Gender = "other"
	GenderNotSpecified Gender = "not_specified"
)

// ParseGender accepts the four known values case-insensitively. An empty
// string yields GenderNotSpecified.
func ParseGender(s string) (Gender, bool) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return GenderNotSpecified, true
	case GenderMale, GenderFemale, GenderOther, GenderNotSpecified:
		return g, true
	default:
		return "", false
	}
}

// User is a registered account. VerificationToken is empty once the email
// has been verified.
type User struct {
	ID                string
	Email             string
	Username          string
	PasswordHash      string
	BirthDate         time.Time
	Sign              zodiac.Sign
	Gender            Gender
	IsVerified        bool
	VerificationToken string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewUserParams carries already validated signup data.
type NewUserParams struct {
	Email        string
	Username     string
	PasswordHash string
	BirthDate    time.Time
	Gender       Gender
}

// NewUser builds an unverified user. The zodiac sign is derived here once and
// is never recomputed afterwards. newID may be nil, in which case a random
// UUID is used.
func NewUser(p NewUserParams, now time.Time, newID func() string) *User {
	if newID == nil {
		newID = uuid.NewString
	}
	gender := p.Gender
	if gender == "" {
		gender = GenderNotSpecified
	}
	now = now.UTC()

	return &User{
		ID:           newID(),
		Email:        NormalizeEmail(p.Email),
		Username:     strings.TrimSpace(p.Username),
		PasswordHash: p.PasswordHash,
		BirthDate:    p.BirthDate,
		Sign:         zodiac.FromDate(p.BirthDate),
		Gender:       gender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Touch advances UpdatedAt to now, or by one microsecond when the wall clock
// has stepped back, so it never decreases.
func (u *User) Touch(now time.Time) {
	u.UpdatedAt = nextUpdatedAt(u.UpdatedAt, now)
}

// nextUpdatedAt returns the updated_at value following prev.
func nextUpdatedAt(prev, now time.Time) time.Time {
	now = now.UTC()
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}

// NormalizeEmail is applied before every store and lookup by email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Clone returns a copy safe to hand out from in-memory storage.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
