package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/session"
)

const (
	EnvBaseURL            = "ELEMENTOPIA_BASE_URL"
	EnvRequestTimeout     = "ELEMENTOPIA_REQUEST_TIMEOUT"
	EnvDataDir            = "ELEMENTOPIA_DATA_DIR"
	EnvUnauthorizedPolicy = "ELEMENTOPIA_UNAUTHORIZED_POLICY"
	EnvRetryMax           = "ELEMENTOPIA_RETRY_MAX"
	EnvRetryBase          = "ELEMENTOPIA_RETRY_BASE"
	EnvValidateOnStart    = "ELEMENTOPIA_VALIDATE_ON_START"
	EnvLogLevel           = "ELEMENTOPIA_LOG_LEVEL"
)

// parseEnv overlays cfg with ELEMENTOPIA_* variables. Values already in
// the process environment win over the same keys in envFile; a missing
// envFile is not an error.
func parseEnv(cfg *Config, envFile string, lookup func(string) (string, bool)) error {
	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := get(EnvBaseURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := get(EnvDataDir); ok {
		cfg.DataDir = v
	}
	if v, ok := get(EnvUnauthorizedPolicy); ok {
		cfg.UnauthorizedPolicy = session.Policy(v)
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := get(EnvRetryBase); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetryBase, err)
		}
		cfg.RetryBase = d
	}
	if v, ok := get(EnvRetryMax); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetryMax, err)
		}
		cfg.RetryMax = n
	}
	if v, ok := get(EnvValidateOnStart); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvValidateOnStart, err)
		}
		cfg.ValidateOnStart = b
	}
	return nil
}
