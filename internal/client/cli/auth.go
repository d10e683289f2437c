package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/burakkoc5/falimatik/internal/client/client"
	"github.com/burakkoc5/falimatik/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not signed in, use 'signin' first")

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

// Signup asks for the registration fields and creates an account. The server
// emails a verification link; the token from it is used with "verify".
func (a *App) Signup(ctx context.Context) error {
	var reg client.Registration
	var err error

	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter email", &reg.Email},
		{"Enter username", &reg.Username},
		{"Enter birth date (YYYY-MM-DD)", &reg.BirthDate},
		{"Enter gender (male, female, other, not_specified; empty to skip)", &reg.Gender},
	}
	for _, f := range fields {
		if *f.dst, err = a.prompt(f.label); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	reg.Password = string(password)

	res, err := a.api.Signup(ctx, reg)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Registered %s. Check your inbox and run 'verify <token>'.\n", res.Email)
	return nil
}

// Signin exchanges email and password for a session token kept in memory.
func (a *App) Signin(ctx context.Context) error {
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.api.Signin(ctx, email, string(password))
	if err != nil {
		return a.report(err)
	}

	a.email = email
	a.session = s.AccessToken
	if s.ExpiresIn > 0 {
		fmt.Fprintf(a.out, "Login successful, session expires in %s\n", time.Duration(s.ExpiresIn)*time.Second)
	} else {
		fmt.Fprintln(a.out, "Login successful")
	}
	return nil
}

func (a *App) Verify(ctx context.Context, token string) error {
	if token == "" {
		fmt.Fprintln(a.out, "Usage: verify <token>")
		return nil
	}
	if err := a.api.VerifyEmail(ctx, token); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Email verified successfully")
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}
	if err := a.api.ResendVerification(ctx, email); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "If the account is waiting for verification, a new email is on its way.")
	return nil
}

// Me prints the profile of the signed-in user. An expired session is dropped.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	p, err := a.api.Me(ctx, a.session)
	if err != nil {
		return a.reportSession(err)
	}

	a.printProfile(p)
	return nil
}

// Update asks for each editable field; an empty answer keeps the current
// value.
func (a *App) Update(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	var upd client.ProfileUpdate
	fields := []struct {
		label string
		dst   **string
	}{
		{"New username (empty to keep)", &upd.Username},
		{"New birth date YYYY-MM-DD (empty to keep)", &upd.BirthDate},
		{"New gender (empty to keep)", &upd.Gender},
	}
	for _, f := range fields {
		v, err := a.prompt(f.label)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	change, err := a.prompt("Change password? (y/N)")
	if err != nil {
		return err
	}
	if strings.EqualFold(change, "y") {
		password, err := getPassword(a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)
		pw := string(password)
		upd.Password = &pw
	}

	if upd == (client.ProfileUpdate{}) {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	p, err := a.api.UpdateMe(ctx, a.session, upd)
	if err != nil {
		return a.reportSession(err)
	}
	fmt.Fprintln(a.out, "Profile updated")
	a.printProfile(p)
	return nil
}

// Delete removes the account after confirmation and ends the session.
func (a *App) Delete(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	answer, err := a.prompt("Type 'yes' to delete your account")
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.api.DeleteMe(ctx, a.session); err != nil {
		return a.reportSession(err)
	}
	a.session, a.email = "", ""
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

func (a *App) printProfile(p *client.Profile) {
	fmt.Fprintf(a.out, "%s <%s>\n  born:     %s\n  sign:     %s\n  gender:   %s\n  verified: %t\n",
		p.Username, p.Email, p.BirthDate, p.ZodiacSign, p.Gender, p.IsVerified)
}

// Status probes the gRPC health endpoint.
func (a *App) Status(ctx context.Context) error {
	if err := a.rpc.Ping(ctx); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Server is up")
	return nil
}

// Logout forgets the session token.
func (a *App) Logout(ctx context.Context) error {
	a.session, a.email = "", ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) report(err error) error {
	fmt.Fprintln(a.out, "Error:", err)
	return err
}

// reportSession reports err and drops a session the server no longer accepts.
func (a *App) reportSession(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		a.session, a.email = "", ""
	}
	return a.report(err)
}
