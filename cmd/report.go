// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakubvalenta/github-metrics/internal/cache"
	"github.com/jakubvalenta/github-metrics/internal/config"
	"github.com/jakubvalenta/github-metrics/internal/domain"
	"github.com/jakubvalenta/github-metrics/internal/gateway"
	"github.com/jakubvalenta/github-metrics/internal/report"
	"github.com/jakubvalenta/github-metrics/internal/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetches merged pull requests and outputs time-to-merge CSV",
	Long: `Fetches every closed pull request of a repository, keeps the merged ones,
and writes one CSV row per pull request with its time to merge in minutes.
Daily and weekly aggregate tables can be written alongside.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Flags win over the config file; the cache dir falls back to the
		// XDG cache home.
		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")
		cacheDir, _ := cmd.Flags().GetString("cache-dir")
		if owner == "" {
			owner = cfg.Owner
		}
		if repo == "" {
			repo = cfg.Repo
		}
		if cacheDir == "" {
			cacheDir = cfg.CacheDir
		}
		if cacheDir == "" {
			cacheDir = config.DefaultCacheDir()
		}
		if owner == "" || repo == "" {
			fmt.Fprintln(os.Stderr, "Error: --owner and --repo are required (as flags or in the config file).")
			os.Exit(1)
		}

		token := config.Token()
		if token == "" {
			fmt.Fprintln(os.Stderr, "Error: GITHUB_TOKEN (or ACCESS_TOKEN) environment variable is not set.")
			os.Exit(1)
		}

		// Inject dependencies and run the main business logic.
		store := cache.NewFileStore(cacheDir)
		githubGateway := gateway.NewGateway(token, store, logger)
		collector := usecase.NewCollector(githubGateway, logger)

		records, err := collector.Collect(ctx, owner, repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to collect pull requests: %v\n", err)
			os.Exit(1)
		}

		outPath, _ := cmd.Flags().GetString("output")
		if err := writeRecords(outPath, records); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
			os.Exit(1)
		}

		for _, agg := range []struct {
			flag        string
			granularity domain.Granularity
		}{
			{"daily", domain.Daily},
			{"weekly", domain.Weekly},
		} {
			path, _ := cmd.Flags().GetString(agg.flag)
			if path == "" {
				continue
			}
			rows := usecase.Aggregate(records, agg.granularity)
			if err := writeAggregates(path, rows, agg.granularity); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write %s aggregates: %v\n", agg.granularity, err)
				os.Exit(1)
			}
		}
	},
}

// writeRecords writes the per-pull-request CSV to path, or to stdout when
// path is empty or "-".
func writeRecords(path string, records []domain.PullRequest) error {
	if path == "" || path == "-" {
		return report.WritePullRequests(os.Stdout, records)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WritePullRequests(f, records)
}

func writeAggregates(path string, rows []domain.AggregateRow, granularity domain.Granularity) error {
	if path == "-" {
		return report.WriteAggregates(os.Stdout, rows, granularity)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteAggregates(f, rows, granularity)
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("owner", "o", "", "Repository owner (required unless set in the config file)")
	reportCmd.Flags().StringP("repo", "r", "", "Repository name (required unless set in the config file)")
	reportCmd.Flags().String("cache-dir", "", "Directory for cached API pages (default: XDG cache home)")
	reportCmd.Flags().String("config", "", "Path to the config file")
	reportCmd.Flags().String("output", "", "Write the per-pull-request CSV to this file (default: stdout)")
	reportCmd.Flags().String("daily", "", "Write the daily aggregate CSV to this file (\"-\" for stdout)")
	reportCmd.Flags().String("weekly", "", "Write the weekly aggregate CSV to this file (\"-\" for stdout)")
}
