package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {

	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	// Test cases
	tests := []struct {
		expected    func() *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{
			"-a", "127.0.0.1:8081", "-g", "127.0.0.1:9090", "-d", "db", "-s", "secret",
			"-t", "15", "-b", "https://falimatik.example", "-l", "debug",
		}, expected: func() *Config {
			c := defaults()
			c.HTTPAddr = "127.0.0.1:8081"
			c.GRPCAddr = "127.0.0.1:9090"
			c.DatabaseDSN = "db"
			c.SecretKey = "secret"
			c.SessionTokenTTL = 15 * time.Minute
			c.BaseURL = "https://falimatik.example"
			c.LogLevel = "debug"
			return c
		}},
		{name: "unknown flags are ignored", args: []string{"-c", "cfg.json", "-x", "1", "-a=:7000"},
			expected: func() *Config {
				c := defaults()
				c.HTTPAddr = ":7000"
				return c
			}},
		{name: "no flags keep values", args: nil, expected: defaults},
		{name: "bad ttl panics", args: []string{"-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()

			if tt.expectPanic {
				assert.Panics(t, func() { parseFlagArgs(c, tt.args) })
				return
			}

			parseFlagArgs(c, tt.args)
			if diff := cmp.Diff(tt.expected(), c); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
