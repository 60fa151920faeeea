package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/glabrego/remy/internal/app"
	"github.com/glabrego/remy/internal/config"
)

func newFetchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Refresh the entry cache from the feed list",
		Long:  `Fetch downloads every feed in the feed list, stores the entries in the cache and prints a per-feed report.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
}

func runFetch(ctx context.Context, opts *rootOptions, out io.Writer) error {
	logger := loggerFromContext(ctx)
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(ctx, refreshTimeout(s.cfg.FetchTimeout))
	defer cancel()

	report, err := s.service.Refresh(ctx)
	if err != nil {
		return err
	}
	printReport(out, report)
	return nil
}

func printReport(out io.Writer, report app.Report) {
	failed := make([]string, 0, len(report.Failed))
	for url := range report.Failed {
		failed = append(failed, url)
	}
	sort.Strings(failed)
	for _, url := range failed {
		fmt.Fprintf(out, "FAIL %s: %v\n", url, report.Failed[url])
	}
	fmt.Fprintf(out, "%d feeds fetched, %d failed, %d entries cached (%s)\n",
		report.Feeds, len(report.Failed), len(report.Entries), report.Duration.Round(time.Millisecond))
	if report.CacheErr != nil {
		fmt.Fprintf(out, "warning: cache not updated: %v\n", report.CacheErr)
	}
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}
