package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wu/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "wu",
	Short: "Wu language frontend and toolchain",
	Long:  `Wu is a small programming language; this tool lexes, parses, and checks Wu source files`,
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the persistent --color flag against the stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
