package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/glabrego/remy/internal/feed"
)

type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) (feed.Result, error)
}

type Repository interface {
	SaveFeeds(ctx context.Context, feeds []feed.Feed) error
	ListEntries(ctx context.Context, limit int) ([]feed.Entry, error)
}

// Report summarizes one refresh.
type Report struct {
	Entries  []feed.Entry
	Feeds    int
	Failed   map[string]error
	Duration time.Duration
	// CacheErr is set when fetched feeds could not be written to the cache.
	// Entries then come straight from the fetch.
	CacheErr error
}

type Service struct {
	fetcher   Fetcher
	repo      Repository
	feedsPath string
	limit     int
	logger    *log.Logger
}

func NewService(fetcher Fetcher, repo Repository, feedsPath string, limit int, logger *log.Logger) *Service {
	if limit < 1 {
		limit = 500
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{fetcher: fetcher, repo: repo, feedsPath: feedsPath, limit: limit, logger: logger}
}

// Refresh reads the feed list, fetches every feed, stores the result and
// returns the newest cached entries. Individual feed failures are reported,
// not returned.
func (s *Service) Refresh(ctx context.Context) (Report, error) {
	start := time.Now()

	urls, err := feed.ReadList(s.feedsPath)
	if err != nil {
		return Report{}, fmt.Errorf("load feed list: %w", err)
	}

	result, err := s.fetcher.FetchAll(ctx, urls)
	if err != nil {
		return Report{}, fmt.Errorf("fetch feeds: %w", err)
	}

	report := Report{Feeds: len(result.Feeds), Failed: result.Failed}
	if err := s.repo.SaveFeeds(ctx, result.Feeds); err != nil {
		s.logger.Warn("cache write failed, showing fetched entries only", "err", err)
		report.CacheErr = err
		report.Entries = limitEntries(feed.Merge(result.Feeds), s.limit)
		report.Duration = time.Since(start)
		return report, nil
	}

	report.Entries, err = s.repo.ListEntries(ctx, s.limit)
	if err != nil {
		return Report{}, fmt.Errorf("load entries from cache: %w", err)
	}
	report.Duration = time.Since(start)
	s.logger.Info("refresh finished", "feeds", report.Feeds, "failed", len(report.Failed), "entries", len(report.Entries), "took", report.Duration.Round(time.Millisecond))
	return report, nil
}

func (s *Service) ListCached(ctx context.Context) ([]feed.Entry, error) {
	entries, err := s.repo.ListEntries(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("load entries from cache: %w", err)
	}
	return entries, nil
}

// LoadStartup returns cached entries, or an empty list when the cache cannot
// be read.
func (s *Service) LoadStartup(ctx context.Context) []feed.Entry {
	entries, err := s.ListCached(ctx)
	if err != nil {
		s.logger.Warn("cache unavailable, starting empty", "err", err)
		return nil
	}
	return entries
}

func limitEntries(entries []feed.Entry, limit int) []feed.Entry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
