package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"asls/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show asls build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "pretty":
				fmt.Fprintln(out, version.Info())
				return nil
			case "json":
				return writeJSON(out, versionPayload{
					Tool:      "asls",
					Version:   version.Version,
					GitCommit: version.GitCommit,
					BuildDate: version.BuildDate,
				})
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
