package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

const VerificationSubject = "Welcome to Falimatik - Verify Your Email"

//go:embed templates/*.html
var templatesFS embed.FS

var verificationTmpl = template.Must(template.ParseFS(templatesFS, "templates/verification_email.html"))

// VerificationURL builds the link a user follows to verify their email.
func VerificationURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/auth/verify/" + url.PathEscape(token)
}

// VerificationMessage renders the verification email for the given user.
func VerificationMessage(to, username, baseURL, token string) (Message, error) {
	var buf bytes.Buffer
	err := verificationTmpl.Execute(&buf, struct {
		Username        string
		VerificationURL string
	}{
		Username:        username,
		VerificationURL: VerificationURL(baseURL, token),
	})
	if err != nil {
		return Message{}, fmt.Errorf("render verification email: %w", err)
	}

	return Message{To: to, Subject: VerificationSubject, HTML: buf.String()}, nil
}
