package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mockario/mockario/pkg/cli/internal/output"
	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/value"
)

func newEndpointsCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"endpoint", "ep"},
		Short:   "Manage the endpoints of a running server",
	}
	cmd.AddCommand(
		newEndpointsListCommand(root),
		newEndpointsAddCommand(root),
		newEndpointsDeleteCommand(root),
	)
	return cmd
}

func newEndpointsListCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered endpoints",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eps, err := root.client().ListEndpoints(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if root.cfg.JSON {
				return output.JSON(out, eps)
			}
			if len(eps) == 0 {
				fmt.Fprintln(out, "No endpoints registered")
				return nil
			}
			tw := output.Table(out)
			fmt.Fprintln(tw, "ID\tMETHOD\tPATH\tDELAY\tAUTH")
			for _, ep := range eps {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%dms\t%s\n",
					ep.ID, ep.Method, ep.Path, ep.Delay, strconv.FormatBool(ep.AuthRequired))
			}
			return tw.Flush()
		},
	}
}

type addFlags struct {
	path         string
	method       string
	response     string
	responseFile string
	delay        int
	authRequired bool
}

func newEndpointsAddCommand(root *rootOptions) *cobra.Command {
	f := &addFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new endpoint",
		Example: `  mockario endpoints add --path /users --method GET \
    --response '[{"id":"{{faker.uuid}}","name":"{{faker.name}}"}]'

  mockario endpoints add --path /slow --response-file body.json --delay 500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := f.input()
			if err != nil {
				return err
			}
			ep, err := root.client().CreateEndpoint(cmd.Context(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if root.cfg.JSON {
				return output.JSON(out, ep)
			}
			fmt.Fprintf(out, "Created endpoint %s: %s %s\n", ep.ID, ep.Method, ep.Path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.path, "path", "", "URL path to match")
	flags.StringVarP(&f.method, "method", "m", endpoint.MethodGet, "HTTP method")
	flags.StringVar(&f.response, "response", "", "Response body as JSON")
	flags.StringVar(&f.responseFile, "response-file", "", "Read the response body from a JSON file")
	flags.IntVar(&f.delay, "delay", 0, "Delay before responding, in milliseconds")
	flags.BoolVar(&f.authRequired, "auth-required", false, "Require authentication when auth is enabled")
	_ = cmd.MarkFlagRequired("path")
	cmd.MarkFlagsMutuallyExclusive("response", "response-file")
	cmd.MarkFlagsOneRequired("response", "response-file")
	return cmd
}

func (f *addFlags) input() (endpoint.Input, error) {
	raw := []byte(f.response)
	if f.responseFile != "" {
		data, err := os.ReadFile(f.responseFile)
		if err != nil {
			return endpoint.Input{}, fmt.Errorf("read response file: %w", err)
		}
		raw = data
	}
	body, err := value.ParseJSON(raw)
	if err != nil {
		return endpoint.Input{}, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if f.delay < 0 {
		return endpoint.Input{}, errors.New("delay must be non-negative")
	}
	return endpoint.Input{
		Path:         f.path,
		Method:       strings.ToUpper(f.method),
		Response:     body,
		Delay:        f.delay,
		AuthRequired: f.authRequired,
	}, nil
}

func newEndpointsDeleteCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an endpoint",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := root.client().DeleteEndpoint(cmd.Context(), id); err != nil {
				if IsNotFound(err) {
					return fmt.Errorf("endpoint %s not found", id)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted endpoint %s\n", id)
			return nil
		},
	}
}
