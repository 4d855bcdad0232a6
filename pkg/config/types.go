package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// ServerConfiguration is the runtime configuration of a mockario server.
type ServerConfiguration struct {
	// Port is the HTTP port serving both the mock surface and /api.
	Port int `json:"port" yaml:"port" validate:"min=0,max=65535"`
	// Host is the bind address. Empty listens on all interfaces.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	// ReadTimeout is the HTTP read timeout in seconds
	ReadTimeout int `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty" validate:"min=0"`
	// WriteTimeout is the HTTP write timeout in seconds
	WriteTimeout int `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty" validate:"min=0"`
	// MaxLogEntries caps the request log ring buffer.
	MaxLogEntries int `json:"maxLogEntries,omitempty" yaml:"maxLogEntries,omitempty" validate:"min=0"`
	// CORS configures Cross-Origin Resource Sharing. Default allows any origin.
	CORS *CORSConfig `json:"cors,omitempty" yaml:"cors,omitempty"`
	// PasswordHasher is "bcrypt" or "legacy".
	PasswordHasher string `json:"passwordHasher,omitempty" yaml:"passwordHasher,omitempty" validate:"omitempty,oneof=bcrypt legacy"`
	// TokenCodec is "hmac" or "legacy".
	TokenCodec string `json:"tokenCodec,omitempty" yaml:"tokenCodec,omitempty" validate:"omitempty,oneof=hmac legacy"`
	// Store selects the snapshot backend.
	Store string `json:"store,omitempty" yaml:"store,omitempty" validate:"omitempty,oneof=memory file redis postgres"`
	// StoreDSN is the file path, redis URL or postgres connection string.
	StoreDSN string `json:"storeDsn,omitempty" yaml:"storeDsn,omitempty"`
	// Load lists seed files or glob patterns applied at startup.
	Load []string `json:"load,omitempty" yaml:"load,omitempty"`
}

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	// AllowOrigins lists allowed origins. "*" allows any origin.
	AllowOrigins []string `json:"allowOrigins,omitempty" yaml:"allowOrigins,omitempty"`
	// AllowMethods lists allowed HTTP methods.
	AllowMethods []string `json:"allowMethods,omitempty" yaml:"allowMethods,omitempty"`
	// AllowHeaders lists allowed request headers.
	AllowHeaders []string `json:"allowHeaders,omitempty" yaml:"allowHeaders,omitempty"`
	// AllowCredentials indicates whether credentials are allowed.
	AllowCredentials bool `json:"allowCredentials,omitempty" yaml:"allowCredentials,omitempty"`
	// MaxAge is the preflight cache duration in seconds.
	MaxAge int `json:"maxAge,omitempty" yaml:"maxAge,omitempty"`
}

// DefaultServerConfiguration returns a ServerConfiguration with default values.
func DefaultServerConfiguration() *ServerConfiguration {
	return &ServerConfiguration{
		Port:           3001,
		ReadTimeout:    30,
		WriteTimeout:   30,
		MaxLogEntries:  1000,
		CORS:           DefaultCORSConfig(),
		PasswordHasher: "bcrypt",
		TokenCodec:     "hmac",
		Store:          StoreMemory,
	}
}

// DefaultCORSConfig returns a CORSConfig that allows any origin, which is
// what the bundled web UI expects when served from another port.
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		MaxAge:       86400,
	}
}

// Address returns the listen address.
func (c *ServerConfiguration) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ReadTimeoutDuration returns ReadTimeout as a duration.
func (c *ServerConfiguration) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns WriteTimeout as a duration.
func (c *ServerConfiguration) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// Validate checks the configuration values.
func (c *ServerConfiguration) Validate() error {
	if c == nil {
		return errors.New("server configuration is nil")
	}
	if err := validateStruct(c); err != nil {
		return err
	}
	if c.Store != "" && c.Store != StoreMemory && c.StoreDSN == "" {
		return &ValidationError{Field: "storeDsn", Message: fmt.Sprintf("required for store %q", c.Store)}
	}
	return nil
}
