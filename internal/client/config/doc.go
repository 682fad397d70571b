// Package config loads runtime configuration for the Elementopia client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. ELEMENTOPIA_* environment variables, with a .env file in the working
//     directory filling in whatever the real environment does not set.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything before them.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-d string   data directory
//	-p string   unauthorized policy (logout | fail-call)
//	-r int      connection retries
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "https://elementopia.onrender.com/api",
//	  "request_timeout": "15s",
//	  "data_dir": ".elementopia",
//	  "unauthorized_policy": "logout",
//	  "retry_max": 2,
//	  "retry_base": "300ms",
//	  "validate_on_start": true,
//	  "log_level": "info"
//	}
package config
