package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/tokenauth/internal/flagx"
)

// parseFlags overlays command-line flags:
//
//	-a string   HTTP bind address (":8080")
//	-g string   gRPC health bind address (":50051", "" disables)
//	-m string   storage driver: postgres | memory
//	-d string   PostgreSQL DSN
//	-b int      bcrypt cost
//	-t int      token secret size in bytes
//	-o string   comma separated CORS origins
//	-l string   log level
//
// Unknown flags (for example -c) are filtered out beforehand.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-m", "-d", "-b", "-t", "-o", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address")
	fs.StringVar(&config.Storage, "m", config.Storage, "storage driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.TokenBytes, "t", config.TokenBytes, "token secret bytes")
	fs.StringVar(&config.CORSAllowedOrigins, "o", config.CORSAllowedOrigins, "CORS allowed origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(args)
}
