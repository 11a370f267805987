package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// config file. Durations accept both strings ("15m") and nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		SessionSignKey    string   `json:"session_sign_key"`
		SessionIssuer     string   `json:"session_issuer"`
		SessionTTL        Duration `json:"session_ttl"`
		CookieName        string   `json:"cookie_name"`
		CookieSecure      bool     `json:"cookie_secure"`
		MinPasswordLength int      `json:"min_password_length"`
		BcryptCost        int      `json:"bcrypt_cost"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			URL       string `json:"url"`
			KeyPrefix string `json:"key_prefix"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mailer struct {
		WebhookURL    string   `json:"webhook_url"`
		WebhookSecret string   `json:"webhook_secret"`
		Timeout       Duration `json:"timeout"`
	} `json:"mailer,omitempty"`

	Recovery struct {
		CodeTTL    Duration `json:"code_ttl"`
		CodeDigits int      `json:"code_digits"`
		FlowTTL    Duration `json:"flow_ttl"`
	} `json:"recovery,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			SessionSignKey:    jsonCfg.Auth.SessionSignKey,
			SessionIssuer:     jsonCfg.Auth.SessionIssuer,
			SessionTTL:        time.Duration(jsonCfg.Auth.SessionTTL),
			CookieName:        jsonCfg.Auth.CookieName,
			CookieSecure:      jsonCfg.Auth.CookieSecure,
			MinPasswordLength: jsonCfg.Auth.MinPasswordLength,
			BcryptCost:        jsonCfg.Auth.BcryptCost,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				URL:       jsonCfg.Storage.Redis.URL,
				KeyPrefix: jsonCfg.Storage.Redis.KeyPrefix,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Mailer: Mailer{
			WebhookURL:    jsonCfg.Mailer.WebhookURL,
			WebhookSecret: jsonCfg.Mailer.WebhookSecret,
			Timeout:       time.Duration(jsonCfg.Mailer.Timeout),
		},
		Recovery: Recovery{
			CodeTTL:    time.Duration(jsonCfg.Recovery.CodeTTL),
			CodeDigits: jsonCfg.Recovery.CodeDigits,
			FlowTTL:    time.Duration(jsonCfg.Recovery.FlowTTL),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
