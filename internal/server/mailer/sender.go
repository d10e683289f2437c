// Package mailer delivers transactional emails. Delivery is asynchronous and
// best effort: failures are logged, never returned to the request that
// triggered the mail.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/burakkoc5/falimatik/internal/logging"
	"gopkg.in/gomail.v2"
)

// Message is a single HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds the outgoing mail server settings. Port 465 implies
// implicit TLS.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	from   string
	dialer dialer
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("send email: empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// LogSender only logs outgoing mail. Used when SMTP is not configured. The
// body carries live verification links, so it is logged at debug level only.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(l logging.Logger) *LogSender {
	return &LogSender{logger: l.With("module", "log_mailer")}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info(ctx, "email not sent, smtp disabled", "to", msg.To, "subject", msg.Subject)
	s.logger.Debug(ctx, "email body", "to", msg.To, "html", msg.HTML)
	return nil
}

// NewSender picks SMTP when configured and the logging sender otherwise.
func NewSender(cfg SMTPConfig, l logging.Logger) Sender {
	if cfg.Enabled() {
		return NewSMTPSender(cfg)
	}
	return NewLogSender(l)
}
