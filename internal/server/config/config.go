// Package config handles configuration for the development server,
// including defaults, the environment, a JSON overlay and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
)

const DefaultEnvFile = ".env"

// Config holds runtime settings for the development server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps accounts in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - TokenValidity: lifetime of an issued token.
//   - Seed: create the demo roster on start.
//   - LogLevel: debug, info, warn or error.
//   - PasswordCost: bcrypt cost; zero means bcrypt.DefaultCost.
type Config struct {
	ListenAddr    string
	DatabaseDSN   string
	SecretKey     string
	TokenValidity time.Duration
	Seed          bool
	LogLevel      string
	PasswordCost  int
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.Seed = true
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the environment (and .env), then an
// optional JSON file and finally command-line flags.
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
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen address is empty"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	if c.TokenValidity <= 0 {
		errs = append(errs, fmt.Errorf("token validity must be positive, got %s", c.TokenValidity))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) Level() slog.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}
