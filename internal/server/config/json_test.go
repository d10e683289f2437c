package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"http_addr":          "www.example:9000",
		"database_dsn":       "postgres://flag",
		"secret_key":         "my_secret_key",
		"session_token_ttl":  "1m",
		"password_hash_cost": 10,
		"smtp_port":          587,
		"shutdown_timeout":   "5s",
	})
	pathEnv := writeTempJSON(t, dir, "env.json", map[string]any{
		"http_addr": "env.example:9000",
	})

	t.Run("flag path wins over env path", func(t *testing.T) {
		t.Setenv("FALIMATIK_CONFIG", pathEnv)
		os.Args = []string{"cmd", "-config", pathFlag}

		var c Config
		c.LoadDefaults()
		parseJson(&c)

		assert.Equal(t, "www.example:9000", c.HTTPAddr)
		assert.Equal(t, "postgres://flag", c.DatabaseDSN)
		assert.Equal(t, "my_secret_key", c.SecretKey)
		assert.Equal(t, time.Minute, c.SessionTokenTTL)
		assert.Equal(t, 10, c.PasswordHashCost)
		assert.Equal(t, 587, c.SMTPPort)
		assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
	})

	t.Run("env path when no flag", func(t *testing.T) {
		t.Setenv("FALIMATIK_CONFIG", pathEnv)
		os.Args = []string{"cmd"}

		var c Config
		c.LoadDefaults()
		parseJson(&c)

		assert.Equal(t, "env.example:9000", c.HTTPAddr)
		assert.Equal(t, ":50051", c.GRPCAddr, "absent keys keep their value")
		assert.Equal(t, 30*time.Minute, c.SessionTokenTTL)
	})

	t.Run("no file", func(t *testing.T) {
		t.Setenv("FALIMATIK_CONFIG", "")
		os.Args = []string{"cmd"}

		var c Config
		c.LoadDefaults()
		parseJson(&c)

		var want Config
		want.LoadDefaults()
		assert.Equal(t, want, c)
	})
}

func Test_parseJson_Panics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv("FALIMATIK_CONFIG", "")

	t.Run("missing file", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", filepath.Join(t.TempDir(), "absent.json")}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))
		os.Args = []string{"cmd", "-c", path}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("invalid duration", func(t *testing.T) {
		path := writeTempJSON(t, "", "", map[string]any{"session_token_ttl": "soon"})
		os.Args = []string{"cmd", "-c", path}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})
}
