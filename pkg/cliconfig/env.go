package cliconfig

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvPort          = "MOCKARIO_PORT"
	EnvHost          = "MOCKARIO_HOST"
	EnvStore         = "MOCKARIO_STORE"
	EnvStoreDSN      = "MOCKARIO_STORE_DSN"
	EnvMaxLogEntries = "MOCKARIO_MAX_LOG_ENTRIES"
	EnvLogLevel      = "MOCKARIO_LOG_LEVEL"
	EnvLogFormat     = "MOCKARIO_LOG_FORMAT"
	EnvServerURL     = "MOCKARIO_SERVER_URL"
	EnvJSON          = "MOCKARIO_JSON"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment; malformed
// numbers are ignored.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
			cfg.Sources["port"] = SourceEnv
		}
	}
	if v := os.Getenv(EnvMaxLogEntries); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxLogEntries = n
			cfg.Sources["maxLogEntries"] = SourceEnv
		}
	}

	for _, s := range []struct {
		env, key string
		dst      *string
	}{
		{EnvHost, "host", &cfg.Host},
		{EnvStore, "store", &cfg.Store},
		{EnvStoreDSN, "storeDsn", &cfg.StoreDSN},
		{EnvLogLevel, "logLevel", &cfg.LogLevel},
		{EnvLogFormat, "logFormat", &cfg.LogFormat},
		{EnvServerURL, "serverUrl", &cfg.ServerURL},
	} {
		if v := os.Getenv(s.env); v != "" {
			*s.dst = v
			cfg.Sources[s.key] = SourceEnv
		}
	}

	if v := os.Getenv(EnvJSON); v != "" {
		cfg.JSON = parseBool(v)
		cfg.Sources["json"] = SourceEnv
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
