package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tokenauth/internal/flagx"
	"github.com/dmitrijs2005/tokenauth/internal/timex"
)

// JsonConfig mirrors Config for decoding the JSON file. Pointer fields tell
// "absent" apart from zero values so that only keys present in the file
// override what is already set.
type JsonConfig struct {
	HTTPAddr           *string         `json:"http_addr"`
	EndpointAddrGRPC   *string         `json:"endpoint_addr_grpc"`
	Storage            *string         `json:"storage"`
	DatabaseDSN        *string         `json:"database_dsn"`
	BcryptCost         *int            `json:"bcrypt_cost"`
	TokenBytes         *int            `json:"token_bytes"`
	CORSAllowedOrigins *string         `json:"cors_allowed_origins"`
	GinMode            *string         `json:"gin_mode"`
	LogLevel           *string         `json:"log_level"`
	ShutdownTimeout    *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file named by -c/-config. Without the
// flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	setIf(&config.HTTPAddr, c.HTTPAddr)
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.Storage, c.Storage)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.TokenBytes, c.TokenBytes)
	setIf(&config.CORSAllowedOrigins, c.CORSAllowedOrigins)
	setIf(&config.GinMode, c.GinMode)
	setIf(&config.LogLevel, c.LogLevel)
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}

	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
