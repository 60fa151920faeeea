// Package feed reads the subscription list, downloads and parses
// syndication feeds, and flattens them into a single entry list.
package feed

import (
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const unknownAuthor = "Unknown Author"

// Feed is one parsed subscription.
type Feed struct {
	URL     string
	Title   string
	Author  string
	Entries []Entry
}

// Entry is a single item of a feed with its author already resolved.
type Entry struct {
	ID        string
	FeedURL   string
	FeedTitle string
	Title     string
	Link      string
	Author    string
	Body      string
	Published time.Time
	Updated   time.Time
}

// SortTime is the timestamp entries are ordered by.
func (e Entry) SortTime() time.Time {
	if !e.Updated.IsZero() {
		return e.Updated
	}
	return e.Published
}

// Merge flattens feeds into one list, newest first.
func Merge(feeds []Feed) []Entry {
	total := 0
	for _, f := range feeds {
		total += len(f.Entries)
	}
	entries := make([]Entry, 0, total)
	for _, f := range feeds {
		entries = append(entries, f.Entries...)
	}
	SortEntries(entries)
	return entries
}

func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entries[i].SortTime(), entries[j].SortTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return strings.ToLower(entries[i].Title) < strings.ToLower(entries[j].Title)
	})
}

func fromParsed(url string, parsed *gofeed.Feed) Feed {
	out := Feed{
		URL:    url,
		Title:  strings.TrimSpace(parsed.Title),
		Author: firstPersonName(parsed.Authors),
	}
	if out.Title == "" {
		out.Title = url
	}
	out.Entries = make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		out.Entries = append(out.Entries, entryFromItem(out, item))
	}
	return out
}

func entryFromItem(f Feed, item *gofeed.Item) Entry {
	entry := Entry{
		FeedURL:   f.URL,
		FeedTitle: f.Title,
		Title:     strings.TrimSpace(item.Title),
		Link:      strings.TrimSpace(item.Link),
		Author:    resolveAuthor(item, f.Author),
		Body:      item.Content,
	}
	if strings.TrimSpace(entry.Body) == "" {
		entry.Body = item.Description
	}
	if entry.Link == "" && len(item.Links) > 0 {
		entry.Link = strings.TrimSpace(item.Links[0])
	}
	if item.PublishedParsed != nil {
		entry.Published = item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		entry.Updated = item.UpdatedParsed.UTC()
	}
	entry.ID = entryID(item.GUID, entry.Link, f.URL, entry.Title)
	return entry
}

// resolveAuthor prefers the item's own authors, then its first contributor,
// then the feed's author.
func resolveAuthor(item *gofeed.Item, feedAuthor string) string {
	if name := firstPersonName(item.Authors); name != "" {
		return name
	}
	if name := strings.TrimSpace(item.Custom[contributorKey]); name != "" {
		return name
	}
	if feedAuthor != "" {
		return feedAuthor
	}
	return unknownAuthor
}

func firstPersonName(people []*gofeed.Person) string {
	for _, p := range people {
		if p == nil {
			continue
		}
		if name := strings.TrimSpace(p.Name); name != "" {
			return name
		}
	}
	return ""
}

func entryID(guid, link, feedURL, title string) string {
	if guid = strings.TrimSpace(guid); guid != "" {
		return guid
	}
	if link != "" {
		return link
	}
	return feedURL + "#" + title
}
