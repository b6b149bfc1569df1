package config

import (
	"flag"
	"os"

	"github.com/trustlayerlabs/academy/internal/flagx"
)

var knownFlags = []string{"-a", "-k", "-s", "-d", "-r", "-t", "-l"}

// parseFlags populates selected Config fields from command-line flags. Only
// the flags listed in knownFlags are looked at.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("academy", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the academy API")
	fs.StringVar(&cfg.PaymentKeyID, "k", cfg.PaymentKeyID, "payment gateway key id")
	fs.StringVar(&cfg.StoreType, "s", cfg.StoreType, "session store: sqlite, redis or memory")
	fs.StringVar(&cfg.StorePath, "d", cfg.StorePath, "sqlite session database file")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address for the redis session store")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "API request timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	return fs.Parse(args)
}
