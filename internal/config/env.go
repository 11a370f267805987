// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// legacyEnv holds the variable names used by earlier deployments of the
// community board. They are read only when the current name is unset.
type legacyEnv struct {
	// RedisURL maps to STORAGE_REDIS_URL.
	RedisURL string `env:"REDIS_URL"`

	// SecretKey maps to AUTH_SESSION_SIGN_KEY.
	SecretKey string `env:"SECRET_KEY"`
}

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types, with the legacy
// names as fallbacks.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	legacy, err := env.ParseAs[legacyEnv]()
	if err != nil {
		return fmt.Errorf("error getting legacy env configs: %w", err)
	}

	if cfg.Storage.Redis.URL == "" {
		cfg.Storage.Redis.URL = legacy.RedisURL
	}
	if cfg.Auth.SessionSignKey == "" {
		cfg.Auth.SessionSignKey = legacy.SecretKey
	}

	return nil
}
