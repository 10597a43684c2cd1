// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-metrics",
	Short: "A CLI tool to report GitHub pull request time-to-merge metrics.",
	Long: `github-metrics fetches the closed pull requests of a GitHub repository,
computes how long each one took to merge, and writes the records plus
optional daily/weekly aggregate tables as CSV. Fetched API pages are cached
on disk, so a re-run only hits the network for pages it has not seen.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
