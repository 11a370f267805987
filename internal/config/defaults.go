package config

import "time"

// Default values applied to every field left empty by all sources.
const (
	DefaultHTTPAddress       = "localhost:8080"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultSessionIssuer     = "community-access"
	DefaultSessionTTL        = 14 * 24 * time.Hour
	DefaultCookieName        = "sessionid"
	DefaultMinPasswordLength = 14
	DefaultBcryptCost        = 12
	DefaultRedisURL          = "redis://localhost:6379/1"
	DefaultRedisKeyPrefix    = "session:"
	DefaultMailerTimeout     = 10 * time.Second
	DefaultCodeTTL           = 15 * time.Minute
	DefaultCodeDigits        = 6
	DefaultLogLevel          = "info"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: DefaultLogLevel,
		},
		Auth: Auth{
			SessionIssuer:     DefaultSessionIssuer,
			SessionTTL:        DefaultSessionTTL,
			CookieName:        DefaultCookieName,
			MinPasswordLength: DefaultMinPasswordLength,
			BcryptCost:        DefaultBcryptCost,
		},
		Storage: Storage{
			Redis: Redis{
				URL:       DefaultRedisURL,
				KeyPrefix: DefaultRedisKeyPrefix,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Mailer: Mailer{
			Timeout: DefaultMailerTimeout,
		},
		Recovery: Recovery{
			CodeTTL:    DefaultCodeTTL,
			CodeDigits: DefaultCodeDigits,
		},
	}
}
