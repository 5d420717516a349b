package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by parseEnv.
const EnvPrefix = "WARRANTYKEEPER"

// parseEnv overlays cfg with WARRANTYKEEPER_* variables. A .env file in the
// working directory is loaded first; it never overrides variables that are
// already set.
func parseEnv(cfg *Config) error {
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
