// Package cli wires the command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	rootCmd := &cobra.Command{
		Use:   "tabledeck",
		Short: "Upload, validate, and preview delimited text files",
		Long: `tabledeck parses delimited text files (comma or semicolon separated),
checks every row against the header, and renders a bounded preview.
It runs as a browser-facing HTTP server or inspects files directly
from the terminal.`,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(inspectCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
