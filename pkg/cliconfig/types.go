// Package cliconfig provides configuration types and loading for the mockario CLI.
package cliconfig

// CLIConfig represents the complete configuration for the mockario CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.mockariorc.yaml in current directory)
// 4. Global config file ($XDG_CONFIG_HOME/mockario/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Server settings
	Port          int    `yaml:"port" json:"port"`
	Host          string `yaml:"host,omitempty" json:"host,omitempty"`
	ReadTimeout   int    `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout  int    `yaml:"writeTimeout" json:"writeTimeout"`
	MaxLogEntries int    `yaml:"maxLogEntries" json:"maxLogEntries"`

	// CORSOrigins lists the origins allowed by CORS.
	CORSOrigins []string `yaml:"corsOrigins,omitempty" json:"corsOrigins,omitempty"`

	PasswordHasher string `yaml:"passwordHasher" json:"passwordHasher"`
	TokenCodec     string `yaml:"tokenCodec" json:"tokenCodec"`

	// Persistence settings
	Store    string `yaml:"store" json:"store"`
	StoreDSN string `yaml:"storeDsn,omitempty" json:"storeDsn,omitempty"`

	// Load lists seed files or globs applied at startup.
	Load []string `yaml:"load,omitempty" json:"load,omitempty"`

	// Client settings
	ServerURL string `yaml:"serverUrl" json:"serverUrl"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records the keys present in a loaded file, so that an
	// explicit false can override an earlier true.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)
