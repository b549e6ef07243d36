package main

import (
	"log/slog"

	"github.com/praetorian-inc/sigscan"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	quiet     bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "sigscan",
	Short: "sigscan - wildcard byte pattern scanner",
	Long: `sigscan finds byte signatures such as "48 8B ? ? 89" in files and memory dumps.
Patterns are hex bytes separated by whitespace; "?" or "??" matches any byte.
Large buffers are split across a bounded pool of workers.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Diagnostic log format on stderr: text, json")

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(signaturesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the diagnostic logger for cmd, writing to its stderr.
func newLogger(cmd *cobra.Command) *sigscan.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	if logFormat == "json" {
		return sigscan.NewJSONLogger(cmd.ErrOrStderr(), level)
	}
	return sigscan.NewTextLogger(cmd.ErrOrStderr(), level)
}
