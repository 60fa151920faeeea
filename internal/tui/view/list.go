package view

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/remy/internal/feed"
	tuistate "github.com/glabrego/remy/internal/tui/state"
	tuitheme "github.com/glabrego/remy/internal/tui/theme"
)

type ListParams struct {
	Entries []feed.Entry
	Cursor  int
	Width   int
	Height  int
	Focused bool
	Loading bool
}

// ListLines renders the visible window of the entry list, keeping the cursor
// centered where possible. Every line is padded to Width.
func ListLines(p ListParams, th tuitheme.Theme) []string {
	if p.Width < 1 || p.Height < 1 {
		return nil
	}
	if len(p.Entries) == 0 {
		msg := "No entries available."
		if p.Loading {
			msg = "Loading entries..."
		}
		return []string{padRight(truncateRunes(msg, p.Width), p.Width)}
	}

	start, end := tuistate.CenteredWindow(len(p.Entries), p.Cursor, p.Height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		label := padRight(truncateRunes(" "+EntryLabel(p.Entries[i]), p.Width), p.Width)
		lines = append(lines, th.RenderListLine(i == p.Cursor, p.Focused, label))
	}
	return lines
}

func EntryLabel(entry feed.Entry) string {
	title := strings.Join(strings.Fields(entry.Title), " ")
	if title == "" {
		return "(untitled)"
	}
	return title
}

func RelativeTimeLabel(now, then time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	if then.IsZero() {
		return "unknown"
	}
	if then.After(now) {
		return "just now"
	}
	d := now.Sub(then)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", n)
	}
	if d < 24*time.Hour {
		n := int(d / time.Hour)
		if n == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", n)
	}
	n := int(d / (24 * time.Hour))
	if n == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", n)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
