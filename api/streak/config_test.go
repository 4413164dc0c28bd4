package streak_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfrei/go-streak/api/streak"
)

// clearEnv unsets every variable ConfigFromEnv reads for the rest of the test.
// Tests using it cannot run in parallel.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		streak.EnvAPIKey, streak.EnvBaseURL, streak.EnvRetryCount,
		streak.EnvRetryWait, streak.EnvTimeout, streak.EnvRateLimit,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeDotenv(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "streak.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv(streak.EnvAPIKey, "env-key")
	t.Setenv(streak.EnvBaseURL, "https://staging.example/api")
	t.Setenv(streak.EnvRetryCount, "5")
	t.Setenv(streak.EnvRetryWait, "500ms")
	t.Setenv(streak.EnvTimeout, "10000")
	t.Setenv(streak.EnvRateLimit, "600")

	cfg, err := streak.ConfigFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://staging.example/api", cfg.BaseURL)
	assert.Equal(t, 5, cfg.RetryCount)
	assert.False(t, cfg.NoRetry)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryWait)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
}

func TestConfigFromEnvDotenvFile(t *testing.T) {
	clearEnv(t)

	path := writeDotenv(t, "STREAK_API_KEY=file-key\nSTREAK_RETRY_COUNT=0\nSTREAK_RETRY_WAIT=2s\n")

	cfg, err := streak.ConfigFromEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.True(t, cfg.NoRetry)
	assert.Equal(t, 2*time.Second, cfg.RetryWait)
	assert.Empty(t, cfg.BaseURL)
}

func TestConfigFromEnvPrefersEnvironment(t *testing.T) {
	clearEnv(t)

	t.Setenv(streak.EnvAPIKey, "env-key")
	path := writeDotenv(t, "STREAK_API_KEY=file-key\n")

	cfg, err := streak.ConfigFromEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestConfigFromEnvMissingKey(t *testing.T) {
	clearEnv(t)

	_, err := streak.ConfigFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, streak.ErrMissingAPIKey)
}

func TestConfigFromEnvInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{streak.EnvRetryCount, "many"},
		{streak.EnvRetryCount, "-1"},
		{streak.EnvRetryWait, "soon"},
		{streak.EnvRetryWait, "-5"},
		{streak.EnvTimeout, "-1s"},
		{streak.EnvRateLimit, "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(streak.EnvAPIKey, "env-key")
			t.Setenv(tt.key, tt.value)

			_, err := streak.ConfigFromEnv(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestConfigFromEnvBuildsClient(t *testing.T) {
	clearEnv(t)
	t.Setenv(streak.EnvAPIKey, "env-key")

	cfg, err := streak.ConfigFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	client, err := streak.NewWithConfig(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
}
