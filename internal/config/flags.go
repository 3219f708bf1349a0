package config

import (
	"flag"
	"os"
	"time"

	"github.com/slackconnect/cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend API
//	-t int      request timeout in seconds
//	-d string   path of the client-local database
//	-i int      token validity check interval in seconds
//	-np         do not persist the bearer token to disk
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-i", "-np"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the backend API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the client database")
	interval := fs.Int("i", int(cfg.TokenCheckInterval.Seconds()), "token check interval (in seconds)")
	fs.BoolVar(&cfg.NoPersist, "np", cfg.NoPersist, "keep the bearer token in memory only")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.TokenCheckInterval = time.Duration(*interval) * time.Second
}
