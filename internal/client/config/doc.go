// Package config loads runtime configuration for the authctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string   base URL of the auth server
//	-f string   path of the local session database
//	-r int      retries of GET requests on connection errors and 5xx responses
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "database_path": "/home/me/.authctl.db",
//	  "max_retries": 2,
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s"
//	}
package config
