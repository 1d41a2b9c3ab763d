package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tokenauth/internal/flagx"
	"github.com/dmitrijs2005/tokenauth/internal/timex"
)

type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	DatabasePath        *string         `json:"database_path"`
	MaxRetries          *int            `json:"max_retries"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
}

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

	if c.ServerURL != nil {
		config.ServerURL = *c.ServerURL
	}
	if c.DatabasePath != nil {
		config.DatabasePath = *c.DatabasePath
	}
	if c.MaxRetries != nil {
		config.MaxRetries = *c.MaxRetries
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.OnlineCheckInterval != nil {
		config.OnlineCheckInterval = c.OnlineCheckInterval.Duration
	}

	return nil
}
