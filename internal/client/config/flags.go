package config

import (
	"flag"
	"os"
	"time"

	"socialctl/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-b string   backend base URL
//	-u string   upload-ticket broker base URL
//	-o int      avatar output size in pixels
//	-t int      request timeout in seconds
//	-d string   local cache sqlite DSN
//
// os.Args is filtered through flagx.FilterArgs so flags owned by other
// components (like -c/-config) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-u", "-o", "-t", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendBaseURL, "b", cfg.BackendBaseURL, "backend base URL")
	fs.StringVar(&cfg.BrokerBaseURL, "u", cfg.BrokerBaseURL, "upload-ticket broker base URL")
	fs.IntVar(&cfg.AvatarOutputSize, "o", cfg.AvatarOutputSize, "avatar output size (pixels)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (seconds)")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "local cache sqlite DSN")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
