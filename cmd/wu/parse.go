package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wu/internal/diagfmt"
	"wu/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.wu",
	Short: "Parse a wu source file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}

	switch format {
	case "tree":
		return diagfmt.FormatASTPretty(os.Stdout, result.Builder, result.FileID, result.FileSet)
	case "json":
		return diagfmt.FormatASTJSON(os.Stdout, result.Builder, result.FileID)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
