package client

import (
	"context"
	"time"
)

type Registration struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	BirthDate string `json:"birthdate"`
	Gender    string `json:"gender,omitempty"`
}

type SignupResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ProfileUpdate carries the fields to change. Nil fields are left alone.
type ProfileUpdate struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	BirthDate *string `json:"birthdate,omitempty"`
	Gender    *string `json:"gender,omitempty"`
}

// Numbers are the daily numbers of a date. Only Power is set for the shared
// daily number.
type Numbers struct {
	Date    string
	Power   string
	Love    string
	Career  string
	Health  string
	Finance string
}

type Profile struct {
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

type Client interface {
	Signup(ctx context.Context, reg Registration) (*SignupResult, error)
	Signin(ctx context.Context, email, password string) (*Session, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	Me(ctx context.Context, accessToken string) (*Profile, error)
	UpdateMe(ctx context.Context, accessToken string, upd ProfileUpdate) (*Profile, error)
	DeleteMe(ctx context.Context, accessToken string) error
}
