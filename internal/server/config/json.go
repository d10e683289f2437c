package config

import (
	"encoding/json"
	"os"

	"github.com/burakkoc5/falimatik/internal/flagx"
	"github.com/burakkoc5/falimatik/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Durations use timex.Duration so both "30m" and integer nanoseconds parse.
// Only fields present in the file override the current values.
type JsonConfig struct {
	HTTPAddr         *string         `json:"http_addr"`
	GRPCAddr         *string         `json:"grpc_addr"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	SessionTokenTTL  *timex.Duration `json:"session_token_ttl"`
	PasswordHashCost *int            `json:"password_hash_cost"`
	BaseURL          *string         `json:"base_url"`
	SMTPHost         *string         `json:"smtp_host"`
	SMTPPort         *int            `json:"smtp_port"`
	SMTPUser         *string         `json:"smtp_user"`
	SMTPPassword     *string         `json:"smtp_password"`
	MailFrom         *string         `json:"mail_from"`
	LogLevel         *string         `json:"log_level"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from a JSON file into config.
//
// The file path comes from the -c/-config flags, or the FALIMATIK_CONFIG
// environment variable when no flag is given. If neither is set nothing is
// loaded. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JSONConfigPath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.BaseURL, c.BaseURL)
	setString(&config.SMTPHost, c.SMTPHost)
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.LogLevel, c.LogLevel)

	if c.PasswordHashCost != nil {
		config.PasswordHashCost = *c.PasswordHashCost
	}
	if c.SMTPPort != nil {
		config.SMTPPort = *c.SMTPPort
	}
	if c.SessionTokenTTL != nil {
		config.SessionTokenTTL = c.SessionTokenTTL.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
