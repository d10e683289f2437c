package httpapi

import (
	"net/http"
	"time"

	"github.com/burakkoc5/falimatik/internal/server/credentials"
	"github.com/go-chi/chi/v5"
)

type signupRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	BirthDate string `json:"birthdate"`
	Gender    string `json:"gender"`
}

type signupResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type resendRequest struct {
	Email string `json:"email"`
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) error {
	var req signupRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		return err
	}

	u, err := a.auth.Signup(r.Context(), credentials.Registration{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		return err
	}

	respondOK(w, "User registered successfully", signupResponse{UserID: u.ID, Email: u.Email})
	return nil
}

func (a *API) handleSignin(w http.ResponseWriter, r *http.Request) error {
	var req signinRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		return err
	}
	if req.Email == "" || req.Password == "" {
		return errBadRequest("Email and password are required", nil)
	}

	pair, err := a.auth.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	respondOK(w, "Login successful", signinResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		ExpiresIn:   int64(pair.ExpiresIn / time.Second),
	})
	return nil
}

func (a *API) handleVerifyEmail(w http.ResponseWriter, r *http.Request) error {
	if err := a.auth.VerifyEmail(r.Context(), chi.URLParam(r, paramToken)); err != nil {
		return err
	}
	respondOK(w, "Email verified successfully", nil)
	return nil
}

func (a *API) handleResendVerification(w http.ResponseWriter, r *http.Request) error {
	var req resendRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		return err
	}
	if req.Email == "" {
		return errBadRequest("Email is required", nil)
	}

	if err := a.auth.ResendVerification(r.Context(), req.Email); err != nil {
		return err
	}
	respondOK(w, "If the account exists and is not verified yet, a new verification email has been sent", nil)
	return nil
}
