package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const maxFeedBytes = 10 << 20

// Fetcher downloads and parses feeds.
type Fetcher struct {
	http        *http.Client
	concurrency int
	logger      *log.Logger
}

// Result is the outcome of fetching a set of feeds. Feeds keeps the order of
// the requested URLs with failed feeds left out.
type Result struct {
	Feeds  []Feed
	Failed map[string]error
}

func NewFetcher(httpClient *http.Client, concurrency int, logger *log.Logger) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{http: httpClient, concurrency: concurrency, logger: logger}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Feed{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/feed+json, application/xml;q=0.9, */*;q=0.8")
	req.Header.Set("User-Agent", "remy feed reader")

	resp, err := f.http.Do(req)
	if err != nil {
		return Feed{}, fmt.Errorf("fetch feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Feed{}, fmt.Errorf("fetch feed failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return Parse(url, io.LimitReader(resp.Body, maxFeedBytes))
}

// Parse reads an RSS, Atom or JSON feed document fetched from url.
func Parse(url string, r io.Reader) (Feed, error) {
	parsed, err := newParser().Parse(r)
	if err != nil {
		return Feed{}, fmt.Errorf("parse feed: %w", err)
	}
	return fromParsed(url, parsed), nil
}

// FetchAll fetches urls concurrently. A failing feed is logged, recorded in
// Result.Failed and omitted; only cancellation of ctx fails the call.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) (Result, error) {
	feeds := make([]Feed, len(urls))
	errs := make([]error, len(urls))

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			start := time.Now()
			feed, err := f.Fetch(ctx, url)
			if err != nil {
				errs[i] = err
				f.logger.Warn("feed fetch failed", "url", url, "err", err)
				return nil
			}
			f.logger.Debug("feed fetched", "url", url, "entries", len(feed.Entries), "took", time.Since(start).Round(time.Millisecond))
			feeds[i] = feed
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("fetch feeds: %w", err)
	}

	result := Result{Feeds: make([]Feed, 0, len(urls)), Failed: make(map[string]error)}
	for i, url := range urls {
		if errs[i] != nil {
			result.Failed[url] = errs[i]
			continue
		}
		result.Feeds = append(result.Feeds, feeds[i])
	}
	return result, nil
}
