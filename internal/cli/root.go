// Package cli implements the remy command-line interface.
//
// The root command opens the two-pane reader. The fetch subcommand refreshes
// the entry cache without a terminal UI, and render prints an HTML fragment
// the way the reader's content pane shows it.
package cli

import (
	"context"
	"fmt"
	"net/http"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glabrego/remy/internal/app"
	"github.com/glabrego/remy/internal/config"
	"github.com/glabrego/remy/internal/feed"
	"github.com/glabrego/remy/internal/storage"
)

var version = "dev"

// SetVersion sets the version shown by --version.
func SetVersion(v string) {
	version = v
}

type rootOptions struct {
	configPath string
	verbose    bool
}

func (o *rootOptions) level() charmlog.Level {
	if o.verbose {
		return charmlog.DebugLevel
	}
	return charmlog.InfoLevel
}

// Execute runs the remy CLI.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "remy",
		Short:        "A terminal feed reader",
		Long:         `remy reads a list of RSS and Atom feeds, caches their entries and shows them in a two-pane terminal reader with styled article text.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), opts.level()))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReader(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.toml (default $XDG_CONFIG_HOME/remy/config.toml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newFetchCmd(opts))
	root.AddCommand(newRenderCmd())

	return root
}

// session holds what every feed-touching command needs.
type session struct {
	cfg     config.Config
	repo    *storage.Repository
	service *app.Service
}

func (s *session) Close() error {
	return s.repo.Close()
}

// openSession loads configuration and opens the cache. A cache that cannot be
// initialized is only logged: refreshes still work and the reader starts
// empty.
func openSession(ctx context.Context, cfg config.Config, logger *charmlog.Logger) (*session, error) {
	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := repo.Init(ctx); err != nil {
		logger.Warn("cache schema unavailable", "path", cfg.DBPath, "err", err)
	} else if err := repo.CheckWritable(ctx); err != nil {
		logger.Warn("cache is read-only, refreshed entries will not be saved", "path", cfg.DBPath, "err", err)
	}

	fetcher := feed.NewFetcher(&http.Client{Timeout: cfg.FetchTimeout}, cfg.Concurrency, logger)
	service := app.NewService(fetcher, repo, cfg.FeedsPath, cfg.CacheLimit, logger)
	return &session{cfg: cfg, repo: repo, service: service}, nil
}
