package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mockario/mockario/pkg/cli/internal/output"
)

// VersionInfo is the JSON form of the version command.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func newVersionCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := VersionInfo{
				Version:   Version,
				Commit:    Commit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			out := cmd.OutOrStdout()
			if root.cfg.JSON {
				return output.JSON(out, info)
			}
			fmt.Fprintf(out, "mockario %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildDate)
			fmt.Fprintf(out, "%s %s\n", info.GoVersion, info.Platform)
			return nil
		},
	}
}
