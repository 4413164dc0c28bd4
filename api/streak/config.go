package streak

import (
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvAPIKey     = "STREAK_API_KEY"
	EnvBaseURL    = "STREAK_BASE_URL"
	EnvRetryCount = "STREAK_RETRY_COUNT"
	EnvRetryWait  = "STREAK_RETRY_WAIT"
	EnvTimeout    = "STREAK_TIMEOUT"
	EnvRateLimit  = "STREAK_RATE_LIMIT"
)

// ConfigFromEnv builds a ClientConfig from the environment.
//
// files are dotenv files loaded first (".env" when none are given). Missing
// files are skipped, and variables already set in the environment win over
// file contents.
//
// STREAK_RETRY_COUNT=0 disables retries. STREAK_RETRY_WAIT and STREAK_TIMEOUT
// take a Go duration ("500ms", "1m") or a bare number of milliseconds.
// STREAK_RATE_LIMIT is in requests per minute.
func ConfigFromEnv(files ...string) (*ClientConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, errors.Wrapf(err, "failed to load %s", file)
		}
	}

	cfg := &ClientConfig{
		APIKey:  strings.TrimSpace(os.Getenv(EnvAPIKey)),
		BaseURL: strings.TrimSpace(os.Getenv(EnvBaseURL)),
	}
	if cfg.APIKey == "" {
		return nil, errors.Wrapf(ErrMissingAPIKey, "%s is not set", EnvAPIKey)
	}

	if v, ok := lookup(EnvRetryCount); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.Newf("invalid %s %q: want a non-negative integer", EnvRetryCount, v)
		}
		cfg.RetryCount = n
		cfg.NoRetry = n == 0
	}

	if v, ok := lookup(EnvRetryWait); ok {
		d, err := parseDuration(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", EnvRetryWait)
		}
		cfg.RetryWait = d
	}

	if v, ok := lookup(EnvTimeout); ok {
		d, err := parseDuration(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", EnvTimeout)
		}
		cfg.Timeout = d
	}

	if v, ok := lookup(EnvRateLimit); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.Newf("invalid %s %q: want requests per minute", EnvRateLimit, v)
		}
		cfg.RateLimitPerMinute = n
	}

	return cfg, nil
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// parseDuration accepts a time.Duration string or a bare integer of milliseconds.
func parseDuration(v string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		if ms < 0 {
			return 0, errors.Newf("negative duration %q", v)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "duration %q", v)
	}
	if d < 0 {
		return 0, errors.Newf("negative duration %q", v)
	}
	return d, nil
}
