package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/tokenauth/internal/flagx"
)

func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-s", "-f", "-r", "-t", "-i"})

	fs := flag.NewFlagSet("authctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	timeout := int(config.RequestTimeout / time.Second)
	interval := int(config.OnlineCheckInterval / time.Second)

	fs.StringVar(&config.ServerURL, "s", config.ServerURL, "server base URL")
	fs.StringVar(&config.DatabasePath, "f", config.DatabasePath, "session database path")
	fs.IntVar(&config.MaxRetries, "r", config.MaxRetries, "request retries")
	fs.IntVar(&timeout, "t", timeout, "request timeout (seconds)")
	fs.IntVar(&interval, "i", interval, "online status check interval (seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.RequestTimeout = time.Duration(timeout) * time.Second
	config.OnlineCheckInterval = time.Duration(interval) * time.Second
	return nil
}
