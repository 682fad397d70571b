package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvListenAddr    = "ELEMENTOPIA_SERVER_ADDR"
	EnvDatabaseDSN   = "ELEMENTOPIA_DATABASE_DSN"
	EnvSecretKey     = "ELEMENTOPIA_JWT_SECRET"
	EnvTokenValidity = "ELEMENTOPIA_TOKEN_VALIDITY"
	EnvSeed          = "ELEMENTOPIA_SEED"
	EnvLogLevel      = "ELEMENTOPIA_LOG_LEVEL"
)

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

	if v, ok := get(EnvListenAddr); ok {
		cfg.ListenAddr = v
	}
	if v, ok := get(EnvDatabaseDSN); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := get(EnvSecretKey); ok {
		cfg.SecretKey = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvTokenValidity); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenValidity, err)
		}
		cfg.TokenValidity = d
	}
	if v, ok := get(EnvSeed); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = b
	}
	return nil
}
