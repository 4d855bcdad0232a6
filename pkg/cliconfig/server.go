package cliconfig

import (
	"fmt"
	"slices"

	"github.com/mockario/mockario/pkg/config"
)

// Validate checks ranges that would otherwise fail at server start.
func (c *CLIConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range (0-65535)", c.Port)
	}
	if c.ReadTimeout < 0 || c.ReadTimeout > 3600 {
		return fmt.Errorf("readTimeout %d is out of range (0-3600)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 || c.WriteTimeout > 3600 {
		return fmt.Errorf("writeTimeout %d is out of range (0-3600)", c.WriteTimeout)
	}
	if c.MaxLogEntries < 0 || c.MaxLogEntries > 100000 {
		return fmt.Errorf("maxLogEntries %d is out of range (0-100000)", c.MaxLogEntries)
	}
	return nil
}

// ServerConfiguration converts the CLI settings into a server configuration.
// Value checks beyond ranges happen in config.ServerConfiguration.Validate.
func (c *CLIConfig) ServerConfiguration() *config.ServerConfiguration {
	cfg := config.DefaultServerConfiguration()
	cfg.Port = c.Port
	cfg.Host = c.Host
	if c.ReadTimeout > 0 {
		cfg.ReadTimeout = c.ReadTimeout
	}
	if c.WriteTimeout > 0 {
		cfg.WriteTimeout = c.WriteTimeout
	}
	if c.MaxLogEntries > 0 {
		cfg.MaxLogEntries = c.MaxLogEntries
	}
	if len(c.CORSOrigins) > 0 {
		cfg.CORS.AllowOrigins = slices.Clone(c.CORSOrigins)
	}
	if c.PasswordHasher != "" {
		cfg.PasswordHasher = c.PasswordHasher
	}
	if c.TokenCodec != "" {
		cfg.TokenCodec = c.TokenCodec
	}
	if c.Store != "" {
		cfg.Store = c.Store
	}
	cfg.StoreDSN = c.StoreDSN
	cfg.Load = slices.Clone(c.Load)
	return cfg
}
