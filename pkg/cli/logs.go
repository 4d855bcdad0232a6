package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mockario/mockario/pkg/cli/internal/output"
	"github.com/mockario/mockario/pkg/requestlog"
)

func newLogsCommand(root *rootOptions) *cobra.Command {
	var (
		q      LogQuery
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show requests received by the mock surface",
		Example: `  # Last 20 requests
  mockario logs

  # Only failed POSTs to /users, then keep streaming
  mockario logs --method POST --path /users --follow`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q.Method = strings.ToUpper(q.Method)
			client := root.client()
			out := cmd.OutOrStdout()

			if follow {
				enc := json.NewEncoder(out)
				return client.StreamLogs(cmd.Context(), func(e *requestlog.Entry) error {
					if !q.matches(e) {
						return nil
					}
					if root.cfg.JSON {
						return enc.Encode(e)
					}
					printEntry(out, e)
					return nil
				})
			}

			entries, err := client.ListLogs(cmd.Context(), q)
			if err != nil {
				return err
			}
			if root.cfg.JSON {
				return output.JSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No requests logged")
				return nil
			}
			// Oldest first reads naturally in a terminal.
			for i := len(entries) - 1; i >= 0; i-- {
				printEntry(out, entries[i])
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&q.Limit, "limit", "n", 20, "Maximum entries to show")
	flags.StringVar(&q.Method, "method", "", "Only show this HTTP method")
	flags.StringVar(&q.Path, "path", "", "Only show paths with this prefix")
	flags.StringVar(&q.EndpointID, "endpoint", "", "Only show requests matched to this endpoint ID")
	flags.BoolVarP(&follow, "follow", "f", false, "Stream new requests as they arrive")
	return cmd
}

// matches applies the query to streamed entries, which the server does not
// filter.
func (q LogQuery) matches(e *requestlog.Entry) bool {
	if q.Method != "" && e.Method != q.Method {
		return false
	}
	if q.Path != "" && !strings.HasPrefix(e.Path, q.Path) {
		return false
	}
	if q.EndpointID != "" && e.EndpointID != q.EndpointID {
		return false
	}
	return true
}

func printEntry(w io.Writer, e *requestlog.Entry) {
	fmt.Fprintf(w, "%s  %-6s %s  %d  %dms\n",
		e.Timestamp.Local().Format(time.DateTime), e.Method, e.Path, e.Status, e.ResponseTime)
}
