package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/remy/internal/feed"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS feeds (
  url TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  author TEXT NOT NULL DEFAULT '',
  fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
  id TEXT NOT NULL,
  feed_url TEXT NOT NULL REFERENCES feeds(url) ON DELETE CASCADE,
  title TEXT NOT NULL,
  link TEXT NOT NULL,
  author TEXT NOT NULL,
  body TEXT NOT NULL,
  published_at TEXT NOT NULL DEFAULT '',
  updated_at TEXT NOT NULL DEFAULT '',
  sort_key INTEGER NOT NULL,
  fetched_at TEXT NOT NULL,
  PRIMARY KEY (feed_url, id)
);
CREATE INDEX IF NOT EXISTS idx_entries_sort_key ON entries(sort_key DESC);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable fails when the cache cannot take writes, for example a
// read-only file or a database locked by another process.
func (r *Repository) CheckWritable(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM feeds WHERE 0`); err != nil {
		return fmt.Errorf("cache is not writable: %w", err)
	}
	return nil
}

// SaveFeeds upserts feeds and their entries in one transaction.
func (r *Repository) SaveFeeds(ctx context.Context, feeds []feed.Feed) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	feedStmt, err := tx.PrepareContext(ctx, `
INSERT INTO feeds (url, title, author, fetched_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
  title=excluded.title,
  author=excluded.author,
  fetched_at=excluded.fetched_at
`)
	if err != nil {
		return fmt.Errorf("prepare feed statement: %w", err)
	}
	defer feedStmt.Close()

	entryStmt, err := tx.PrepareContext(ctx, `
INSERT INTO entries (id, feed_url, title, link, author, body, published_at, updated_at, sort_key, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(feed_url, id) DO UPDATE SET
  title=excluded.title,
  link=excluded.link,
  author=excluded.author,
  body=excluded.body,
  published_at=excluded.published_at,
  updated_at=excluded.updated_at,
  sort_key=excluded.sort_key,
  fetched_at=excluded.fetched_at
`)
	if err != nil {
		return fmt.Errorf("prepare entry statement: %w", err)
	}
	defer entryStmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, f := range feeds {
		if _, err := feedStmt.ExecContext(ctx, f.URL, f.Title, f.Author, now); err != nil {
			return fmt.Errorf("save feed %s: %w", f.URL, err)
		}
		for _, entry := range f.Entries {
			_, err := entryStmt.ExecContext(
				ctx,
				entry.ID,
				f.URL,
				entry.Title,
				entry.Link,
				entry.Author,
				entry.Body,
				formatTime(entry.Published),
				formatTime(entry.Updated),
				sortKey(entry),
				now,
			)
			if err != nil {
				return fmt.Errorf("save entry %q: %w", entry.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) ListEntries(ctx context.Context, limit int) ([]feed.Entry, error) {
	if limit < 1 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT e.id, e.feed_url, f.title, e.title, e.link, e.author, e.body, e.published_at, e.updated_at
FROM entries e
JOIN feeds f ON f.url = e.feed_url
ORDER BY e.sort_key DESC, e.title COLLATE NOCASE ASC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]feed.Entry, 0, limit)
	for rows.Next() {
		var entry feed.Entry
		var publishedAt, updatedAt string
		if err := rows.Scan(
			&entry.ID,
			&entry.FeedURL,
			&entry.FeedTitle,
			&entry.Title,
			&entry.Link,
			&entry.Author,
			&entry.Body,
			&publishedAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		if entry.Published, err = parseTime(publishedAt); err != nil {
			return nil, fmt.Errorf("parse entry published_at %q: %w", publishedAt, err)
		}
		if entry.Updated, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("parse entry updated_at %q: %w", updatedAt, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return entries, nil
}

func sortKey(entry feed.Entry) int64 {
	t := entry.SortTime()
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixNano()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, raw)
}
