package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/session"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/flagx"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields leave the corresponding Config value alone.
type JsonConfig struct {
	BaseURL            string          `json:"base_url"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	DataDir            string          `json:"data_dir"`
	UnauthorizedPolicy string          `json:"unauthorized_policy"`
	RetryMax           *int            `json:"retry_max"`
	RetryBase          *timex.Duration `json:"retry_base"`
	ValidateOnStart    *bool           `json:"validate_on_start"`
	LogLevel           string          `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.UnauthorizedPolicy != "" {
		cfg.UnauthorizedPolicy = session.Policy(jc.UnauthorizedPolicy)
	}
	if jc.RetryMax != nil {
		cfg.RetryMax = *jc.RetryMax
	}
	if jc.RetryBase != nil {
		cfg.RetryBase = time.Duration(jc.RetryBase.Duration)
	}
	if jc.ValidateOnStart != nil {
		cfg.ValidateOnStart = *jc.ValidateOnStart
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
