package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/flagx"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/timex"
)

// JsonConfig is the on-disk shape read via -c/-config. TokenValidity
// accepts "24h" or integer nanoseconds.
type JsonConfig struct {
	ListenAddr    string          `json:"listen_addr"`
	DatabaseDSN   string          `json:"database_dsn"`
	SecretKey     string          `json:"secret_key"`
	TokenValidity *timex.Duration `json:"token_validity"`
	Seed          *bool           `json:"seed"`
	LogLevel      string          `json:"log_level"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidity != nil {
		cfg.TokenValidity = time.Duration(jc.TokenValidity.Duration)
	}
	if jc.Seed != nil {
		cfg.Seed = *jc.Seed
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
