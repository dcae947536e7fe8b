// curiectl is a CLI tool for querying a running curieconsole server.
//
// Usage:
//
//	curiectl branches
//	curiectl select devops
//	curiectl search -m tags china
//	curiectl refresh
//	curiectl link urlmaps __default__
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	serverURL string
	outputFmt string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "curiectl",
		Short: "Query the curieconsole document index",
		Long: `curiectl is a CLI tool for interacting with curieconsole.

It queries the console's HTTP API for branches, faceted document search
results, and document edit links.`,
		Version: version,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8000", "Base URL of the curieconsole server")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json")

	// Add subcommands
	rootCmd.AddCommand(branchesCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(selectCmd())
	rootCmd.AddCommand(refreshCmd())
	rootCmd.AddCommand(linkCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
