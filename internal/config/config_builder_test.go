package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func requiredConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth:    Auth{SessionSignKey: "secret"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/community"}},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and no layers.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.layers)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that defaults alone do not satisfy
// validation because the DSN has no default.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_MissingSignKey verifies that a config without a session sign key
// is rejected.
func TestBuild_MissingSignKey(t *testing.T) {
	b := newConfigBuilder()
	b.add(sourceEnv, &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "postgres://localhost/community"}},
	})

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAuthConfigs)
}

// TestBuild_InvalidRedisURL verifies that a non-redis URL is rejected.
func TestBuild_InvalidRedisURL(t *testing.T) {
	b := newConfigBuilder()
	c := requiredConfig()
	c.Storage.Redis.URL = "http://localhost:6379"
	b.add(sourceEnv, c)

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_AppliesDefaults verifies that every unset field gets its default.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.add(sourceEnv, requiredConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Empty(t, cfg.Server.GRPCAddress)
	assert.Equal(t, DefaultRedisURL, cfg.Storage.Redis.URL)
	assert.Equal(t, 14, cfg.Auth.MinPasswordLength)
	assert.Equal(t, DefaultCookieName, cfg.Auth.CookieName)
	assert.Equal(t, 15*time.Minute, cfg.Recovery.CodeTTL)
	assert.Equal(t, 6, cfg.Recovery.CodeDigits)
	assert.Equal(t, 10*time.Second, cfg.Mailer.Timeout)
	assert.Equal(t, DefaultLogLevel, cfg.App.LogLevel)
}

// TestBuild_InvalidLogLevel verifies that an unknown level name is rejected.
func TestBuild_InvalidLogLevel(t *testing.T) {
	b := newConfigBuilder()
	c := requiredConfig()
	c.App.LogLevel = "verbose"
	b.add(sourceEnv, c)

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// TestBuild_FlowTTLShorterThanCode verifies that a recovery flow cannot end
// before the code it carries expires. Zero keeps the derived default.
func TestBuild_FlowTTLShorterThanCode(t *testing.T) {
	tests := []struct {
		name    string
		flowTTL time.Duration
		wantErr error
	}{
		{"unset", 0, nil},
		{"equal to code ttl", 15 * time.Minute, nil},
		{"shorter than code ttl", 10 * time.Minute, ErrInvalidRecoveryConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			c := requiredConfig()
			c.Recovery.FlowTTL = tt.flowTTL
			b.add(sourceEnv, c)

			_, err := b.build()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result and earlier sources win.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.add(sourceEnv, requiredConfig()).
		add(sourceFlags, &StructuredConfig{App: App{Version: "1.0.0"}, Auth: Auth{SessionSignKey: "ignored"}}).
		add(sourceJSON, &StructuredConfig{Recovery: Recovery{CodeTTL: 5 * time.Minute}})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "secret", cfg.Auth.SessionSignKey)
	assert.Equal(t, 5*time.Minute, cfg.Recovery.CodeTTL)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_AppendsOneConfig verifies that withEnv appends exactly one entry.
func TestWithEnv_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	require.Len(t, b.layers, 1)
	assert.Equal(t, sourceEnv, b.layers[0].source)
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("AUTH_SESSION_ISSUER", "env-issuer")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.layers, 1)
	assert.Equal(t, "env-version", b.layers[0].cfg.App.Version)
	assert.Equal(t, "env-issuer", b.layers[0].cfg.Auth.SessionIssuer)
}

// TestWithEnv_SetsErrorOnBadValue verifies that a malformed env value is
// recorded on the builder instead of being appended.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("RECOVERY_CODE_DIGITS", "six")

	b := newConfigBuilder()
	b.withEnv()

	require.Error(t, b.err)
	assert.Contains(t, b.err.Error(), "env: ")
	assert.Empty(t, b.layers)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	resetFlags(t, nil)

	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags())
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.add(sourceEnv, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.layers, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Auth.SessionIssuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.add(sourceFlags, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.layers, 2)
	assert.Equal(t, sourceJSON, b.layers[1].source)
	assert.Equal(t, "json-version", b.layers[1].cfg.App.Version)
	assert.Equal(t, "json-issuer", b.layers[1].cfg.Auth.SessionIssuer)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.add(sourceFlags, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	require.Error(t, b.err)
	assert.Contains(t, b.err.Error(), "json: ")
}

// TestWithJSON_SetsError_WhenMalformedJSON verifies that invalid JSON content
// sets b.err.
func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.add(sourceFlags, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_EnvPathWinsOverFlagPath verifies that the highest-priority
// layer naming a file decides which file is read.
func TestWithJSON_EnvPathWinsOverFlagPath(t *testing.T) {
	envPayload := StructuredJSONConfig{}
	envPayload.App.Version = "from-env-path"
	envPath := writeTempJSONConfig(t, envPayload)

	flagPayload := StructuredJSONConfig{}
	flagPayload.App.Version = "from-flag-path"
	flagPath := writeTempJSONConfig(t, flagPayload)

	b := newConfigBuilder()
	b.add(sourceEnv, &StructuredConfig{JSONFilePath: envPath}).
		add(sourceFlags, &StructuredConfig{JSONFilePath: flagPath})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.layers, 3)
	assert.Equal(t, "from-env-path", b.layers[2].cfg.App.Version)
}

// TestWithJSON_SkipsEmptyPaths verifies that layers without a path are
// ignored when looking for the file.
func TestWithJSON_SkipsEmptyPaths(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "flag-file"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.add(sourceEnv, &StructuredConfig{}).
		add(sourceFlags, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.layers, 3)
	assert.Equal(t, "flag-file", b.layers[2].cfg.App.Version)
}
