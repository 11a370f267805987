// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The database DSN and the session signing key have no defaults and must
// be provided by one of the sources.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	if u, err := url.Parse(cfg.Storage.Redis.URL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
		return fmt.Errorf("%w: redis url must use the redis:// scheme", ErrInvalidStorageConfigs)
	}

	if cfg.Auth.SessionSignKey == "" {
		return fmt.Errorf("%w: empty session sign key", ErrInvalidAuthConfigs)
	}

	if cfg.Auth.MinPasswordLength < 1 {
		return fmt.Errorf("%w: minimum password length must be positive", ErrInvalidAuthConfigs)
	}

	if cfg.Recovery.CodeDigits < 4 || cfg.Recovery.CodeDigits > 9 {
		return fmt.Errorf("%w: code digits must be between 4 and 9", ErrInvalidRecoveryConfigs)
	}

	if cfg.Recovery.FlowTTL != 0 && cfg.Recovery.FlowTTL < cfg.Recovery.CodeTTL {
		return fmt.Errorf("%w: flow ttl must not be shorter than code ttl", ErrInvalidRecoveryConfigs)
	}

	return nil
}
