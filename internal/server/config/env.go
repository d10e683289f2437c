package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays FALIMATIK_* environment variables. Unset variables keep
// the value already in config. Malformed values panic, like the other loaders.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
