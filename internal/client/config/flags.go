package config

import (
	"flag"
	"io"
	"time"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/session"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   API base URL, e.g. https://host/api
//	-t int      request timeout (seconds)
//	-d string   directory for the local credential stores
//	-p string   what a 401 does: "logout" or "fail-call"
//	-r int      retries of a failed connection on idempotent requests
//	-l string   log level
//
// Arguments are filtered with flagx.FilterArgs so -c/-config and anything
// else on the command line do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-p", "-r", "-l"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	policy := string(cfg.UnauthorizedPolicy)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&policy, "p", policy, "unauthorized policy: logout or fail-call")
	fs.IntVar(&cfg.RetryMax, "r", cfg.RetryMax, "connection retries for idempotent requests")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	cfg.UnauthorizedPolicy = session.Policy(policy)
	return nil
}
