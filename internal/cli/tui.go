package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	article "github.com/glabrego/remy/internal/render/article"
	"github.com/glabrego/remy/internal/tui"
)

func runReader(ctx context.Context, opts *rootOptions) error {
	startupLogger := loggerFromContext(ctx)
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := openLogFile(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, opts.level())
	startupLogger.Debug("logging to file", "path", cfg.LogPath)

	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	cacheLoadStart := time.Now()
	entries := s.service.LoadStartup(ctx)
	logger.Info("cache loaded", "entries", len(entries), "took", time.Since(cacheLoadStart).Round(time.Millisecond))

	model := tui.NewModel(s.service, entries, tui.Options{
		SeparatorPercent: s.cfg.SeparatorPercent,
		Cleanup:          s.cfg.Cleanup,
		RefreshTimeout:   refreshTimeout(s.cfg.FetchTimeout),
		Render:           article.DefaultOptions,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// refreshTimeout bounds a whole refresh: a few rounds of per-feed timeouts.
func refreshTimeout(fetchTimeout time.Duration) time.Duration {
	return 4 * fetchTimeout
}
