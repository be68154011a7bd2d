package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wu/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "text", "output format (text|json)")
	versionCmd.Flags().Bool("full", false, "include commit hash and build date")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	full, _ := cmd.Flags().GetBool("full")

	switch format {
	case "text":
		fmt.Fprintf(os.Stdout, "wu %s\n", version.Version)
		if full {
			if version.GitCommit != "" {
				fmt.Fprintf(os.Stdout, "commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(os.Stdout, "built:  %s\n", version.BuildDate)
			}
		}
		return nil
	case "json":
		payload := versionPayload{Tool: "wu", Version: version.Version}
		if full {
			payload.GitCommit = version.GitCommit
			payload.BuildDate = version.BuildDate
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
