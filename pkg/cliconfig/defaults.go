package cliconfig

import "strconv"

// DefaultPort is the default HTTP port.
const DefaultPort = 3001

// DefaultReadTimeout is the default read timeout in seconds.
const DefaultReadTimeout = 30

// DefaultWriteTimeout is the default write timeout in seconds.
const DefaultWriteTimeout = 30

// DefaultMaxLogEntries is the default maximum request log entries.
const DefaultMaxLogEntries = 1000

// Defaults for the pluggable auth primitives and persistence.
const (
	DefaultPasswordHasher = "bcrypt"
	DefaultTokenCodec     = "hmac"
	DefaultStore          = "memory"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// DefaultServerURL returns the URL client commands use for a server on port.
func DefaultServerURL(port int) string {
	if port == 0 {
		port = DefaultPort
	}
	return "http://localhost:" + strconv.Itoa(port)
}

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Port:           DefaultPort,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		MaxLogEntries:  DefaultMaxLogEntries,
		CORSOrigins:    []string{"*"},
		PasswordHasher: DefaultPasswordHasher,
		TokenCodec:     DefaultTokenCodec,
		Store:          DefaultStore,
		ServerURL:      DefaultServerURL(DefaultPort),
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		Sources:        make(map[string]string),
	}

	for _, key := range []string{
		"port", "readTimeout", "writeTimeout", "maxLogEntries", "corsOrigins",
		"passwordHasher", "tokenCodec", "store", "serverUrl", "logLevel", "logFormat",
	} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}
