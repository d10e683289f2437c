// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"time"

	"github.com/burakkoc5/falimatik/internal/server/mailer"
)

// Config holds runtime settings for the Falimatik server.
//
// Fields:
//   - HTTPAddr / GRPCAddr: bind addresses of the HTTP API and the gRPC health endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory repository.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Do not use the default in prod.
//   - SessionTokenTTL: lifetime of issued session tokens.
//   - PasswordHashCost: bcrypt cost for new password hashes.
//   - BaseURL: public URL used to build verification links.
//   - SMTP*: outgoing mail settings. Without SMTPHost emails are only logged.
type Config struct {
	HTTPAddr         string        `env:"FALIMATIK_HTTP_ADDR"`
	GRPCAddr         string        `env:"FALIMATIK_GRPC_ADDR"`
	DatabaseDSN      string        `env:"FALIMATIK_DATABASE_DSN"`
	SecretKey        string        `env:"FALIMATIK_SECRET_KEY"`
	SessionTokenTTL  time.Duration `env:"FALIMATIK_SESSION_TOKEN_TTL"`
	PasswordHashCost int           `env:"FALIMATIK_PASSWORD_HASH_COST"`
	BaseURL          string        `env:"FALIMATIK_BASE_URL"`
	SMTPHost         string        `env:"FALIMATIK_SMTP_HOST"`
	SMTPPort         int           `env:"FALIMATIK_SMTP_PORT"`
	SMTPUser         string        `env:"FALIMATIK_SMTP_USER"`
	SMTPPassword     string        `env:"FALIMATIK_SMTP_PASSWORD"`
	MailFrom         string        `env:"FALIMATIK_MAIL_FROM"`
	LogLevel         string        `env:"FALIMATIK_LOG_LEVEL"`
	ShutdownTimeout  time.Duration `env:"FALIMATIK_SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.SessionTokenTTL = 30 * time.Minute
	c.PasswordHashCost = 12
	c.BaseURL = "http://localhost:8080"
	c.SMTPPort = 465
	c.MailFrom = "no-reply@falimatik.local"
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
}

// SMTP returns the mailer settings.
func (c *Config) SMTP() mailer.SMTPConfig {
	return mailer.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		User:     c.SMTPUser,
		Password: c.SMTPPassword,
		From:     c.MailFrom,
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
