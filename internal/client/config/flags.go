package config

import (
	"flag"
	"os"
	"time"

	"github.com/jitensha/sharebox/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags:
//
//	-a string   base URL of the file-sharing service
//	-t int      request timeout in seconds
//	-d string   path to the local cache database
//	-l int      dashboard page size
//
// Arguments are pre-filtered so flags owned by other stages (like -c) do
// not interfere.
func parseFlags(cfg *Config) {
	args := flagx.Filter(os.Args[1:], []string{"-a", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the file-sharing service")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.CacheDBPath, "d", cfg.CacheDBPath, "path to the local cache database")
	fs.IntVar(&cfg.PageLimit, "l", cfg.PageLimit, "dashboard page size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}
