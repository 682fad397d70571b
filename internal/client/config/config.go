package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/session"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
)

const (
	DefaultBaseURL        = "https://elementopia.onrender.com/api"
	DefaultRequestTimeout = 15 * time.Second
	DefaultDataDir        = ".elementopia"
	DefaultEnvFile        = ".env"
)

// Config holds runtime settings for the Elementopia client.
//
// Units: RequestTimeout and RetryBase are time.Duration values; the -t flag
// takes whole seconds.
type Config struct {
	BaseURL            string
	RequestTimeout     time.Duration
	DataDir            string
	UnauthorizedPolicy session.Policy
	RetryMax           int
	RetryBase          time.Duration
	ValidateOnStart    bool
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.RequestTimeout = DefaultRequestTimeout
	c.DataDir = DefaultDataDir
	c.UnauthorizedPolicy = session.PolicyLogout
	c.RetryMax = 2
	c.RetryBase = 300 * time.Millisecond
	c.ValidateOnStart = true
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, the environment (including a
// .env file in the working directory), an optional JSON file and the
// command line, in that order. Later sources take precedence.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], DefaultEnvFile, os.LookupEnv)
}

func load(args []string, envFile string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, envFile, lookup); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.UnauthorizedPolicy, _ = session.ParsePolicy(string(cfg.UnauthorizedPolicy))
	return cfg, nil
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.BaseURL)
	switch {
	case c.BaseURL == "":
		errs = append(errs, errors.New("base URL is empty"))
	case err != nil:
		errs = append(errs, fmt.Errorf("base URL: %w", err))
	case u.Scheme != "http" && u.Scheme != "https", u.Host == "":
		errs = append(errs, fmt.Errorf("base URL %q must be an absolute http(s) URL", c.BaseURL))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data dir is empty"))
	}
	if _, err := session.ParsePolicy(string(c.UnauthorizedPolicy)); err != nil {
		errs = append(errs, err)
	}
	if c.RetryMax < 0 {
		errs = append(errs, fmt.Errorf("retry max must not be negative, got %d", c.RetryMax))
	}
	if c.RetryMax > 0 && c.RetryBase <= 0 {
		errs = append(errs, fmt.Errorf("retry base must be positive, got %s", c.RetryBase))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Level is LogLevel as a slog level; Validate has already vetted it.
func (c *Config) Level() slog.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}
