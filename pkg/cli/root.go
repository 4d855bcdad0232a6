package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mockario/mockario/pkg/cliconfig"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootOptions carries the persistent flags and the resolved configuration
// shared by every subcommand.
type rootOptions struct {
	serverURL string
	logLevel  string
	logFormat string
	json      bool

	cfg *cliconfig.CLIConfig
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mockario",
		Short: "mockario is a mock REST API server",
		Long: `mockario serves user-defined HTTP endpoints that answer with canned JSON.
Responses may contain {{faker.*}} placeholders that are replaced with fake
data on every request, and endpoints can be protected with basic, bearer,
JWT or API-key authentication.

Configuration can be provided via flags, MOCKARIO_* environment variables,
.mockariorc.yaml in the current directory, or the global config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.serverURL, "server-url", cliconfig.DefaultServerURL(cliconfig.DefaultPort), "Base URL of a running mockario server")
	flags.StringVar(&opts.logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	flags.BoolVar(&opts.json, "json", false, "Output command results in JSON format")

	cmd.AddCommand(
		newServeCommand(opts),
		newEndpointsCommand(opts),
		newLogsCommand(opts),
		newGenerateCommand(),
		newVersionCommand(opts),
	)
	return cmd
}

// resolve loads the layered configuration and applies the persistent flags
// the user set explicitly.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("server-url") {
		cfg.ServerURL = o.serverURL
		cfg.Sources["serverUrl"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
		cfg.Sources["logLevel"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
		cfg.Sources["logFormat"] = cliconfig.SourceFlag
	}
	if flags.Changed("json") {
		cfg.JSON = o.json
		cfg.Sources["json"] = cliconfig.SourceFlag
	}
	o.cfg = cfg
	return nil
}

func (o *rootOptions) client() *Client {
	return NewClient(o.cfg.ServerURL)
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	os.Exit(Main())
}

// Main runs the root command against os.Args and returns the exit code.
func Main() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
