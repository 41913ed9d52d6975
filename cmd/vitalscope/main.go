// Package main provides the vitalscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "vitalscope",
		Short: "Core Web Vitals analysis for any URL",
		Long: `Vitalscope audits a URL against a performance-audit service, rates and
scores its Core Web Vitals, and keeps a bounded local history for trends.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newEntriesCmd(),
		newHistoryCmd(),
		newClearCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
