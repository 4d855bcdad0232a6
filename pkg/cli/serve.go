package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mockario/mockario/pkg/cliconfig"
	"github.com/mockario/mockario/pkg/engine"
	"github.com/mockario/mockario/pkg/logging"
)

type serveFlags struct {
	port           int
	host           string
	load           []string
	store          string
	storeDSN       string
	maxLogEntries  int
	corsOrigins    []string
	passwordHasher string
	tokenCodec     string
}

func newServeCommand(root *rootOptions) *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the mock server",
		Long: `Start the mock server in the foreground.

The admin API is served under /api and every other path is matched against
the registered endpoints. Press Ctrl+C to stop.`,
		Example: `  # Start with defaults on port 3001
  mockario serve

  # Seed endpoints from YAML files and persist state between runs
  mockario serve --load 'seeds/*.yaml' --store file --store-dsn mockario.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(cmd, root.cfg)
			return runServe(cmd, root.cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.port, "port", "p", cliconfig.DefaultPort, "Port to listen on (0 picks a free port)")
	flags.StringVar(&f.host, "host", "", "Interface to bind (default all)")
	flags.StringSliceVar(&f.load, "load", nil, "Seed files or glob patterns to apply at startup")
	flags.StringVar(&f.store, "store", cliconfig.DefaultStore, "State backend (memory, file, postgres, redis)")
	flags.StringVar(&f.storeDSN, "store-dsn", "", "Backend location: file path, postgres DSN or redis URL")
	flags.IntVar(&f.maxLogEntries, "max-log-entries", cliconfig.DefaultMaxLogEntries, "Request log capacity")
	flags.StringSliceVar(&f.corsOrigins, "cors-origins", nil, "Allowed CORS origins")
	flags.StringVar(&f.passwordHasher, "password-hasher", cliconfig.DefaultPasswordHasher, "Password hasher (bcrypt, legacy)")
	flags.StringVar(&f.tokenCodec, "token-codec", cliconfig.DefaultTokenCodec, "JWT codec (hmac, legacy)")
	return cmd
}

// apply copies explicitly set flags over the layered configuration.
func (f *serveFlags) apply(cmd *cobra.Command, cfg *cliconfig.CLIConfig) {
	flags := cmd.Flags()
	set := func(name, key string, assign func()) {
		if flags.Changed(name) {
			assign()
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}
	set("port", "port", func() { cfg.Port = f.port })
	set("host", "host", func() { cfg.Host = f.host })
	set("load", "load", func() { cfg.Load = f.load })
	set("store", "store", func() { cfg.Store = f.store })
	set("store-dsn", "storeDsn", func() { cfg.StoreDSN = f.storeDSN })
	set("max-log-entries", "maxLogEntries", func() { cfg.MaxLogEntries = f.maxLogEntries })
	set("cors-origins", "corsOrigins", func() { cfg.CORSOrigins = f.corsOrigins })
	set("password-hasher", "passwordHasher", func() { cfg.PasswordHasher = f.passwordHasher })
	set("token-codec", "tokenCodec", func() { cfg.TokenCodec = f.tokenCodec })
}

func runServe(cmd *cobra.Command, cfg *cliconfig.CLIConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})

	srv, err := engine.NewServer(cfg.ServerConfiguration(),
		engine.WithLogger(log),
		engine.WithVersion(Version))
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "mockario listening on http://%s\n", srv.Addr())
	fmt.Fprintf(out, "Admin API at http://%s/api\n", srv.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(out, "\nShutting down...")
	if err := srv.Stop(); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	fmt.Fprintln(out, "Server stopped")
	return nil
}
