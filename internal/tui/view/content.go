package view

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/remy/internal/feed"
	article "github.com/glabrego/remy/internal/render/article"
	tuitheme "github.com/glabrego/remy/internal/tui/theme"
)

const noContent = "No Content"

type ContentOptions struct {
	Width   int
	Raw     bool
	Cleanup bool
	Render  article.Options
	Now     time.Time
}

// Content is the scrollable text of the content pane.
type Content struct {
	Lines []string
	// Fallback is set when the body could not be rendered and raw text is
	// shown instead.
	Fallback bool
	Err      error
}

func (c Content) String() string {
	return strings.Join(c.Lines, "\n")
}

// EntryContent builds the header and body lines for one entry.
func EntryContent(entry feed.Entry, opts ContentOptions, th tuitheme.Theme) Content {
	width := opts.Width
	if width < 1 {
		width = 1
	}
	lines := HeaderLines(entry, width, opts.Now, th)
	lines = append(lines, "")

	body, err := BodyLines(entry, opts)
	out := Content{Err: err}
	if err != nil {
		out.Fallback = true
		lines = append(lines, th.RawNotice.Render(truncateRunes(FallbackNotice(err), width)), "")
		body = RawLines(entry.Body)
	}
	lines = append(lines, wrapLines(body, width)...)
	out.Lines = lines
	return out
}

func HeaderLines(entry feed.Entry, width int, now time.Time, th tuitheme.Theme) []string {
	lines := make([]string, 0, 8)
	lines = append(lines, wrapLines([]string{th.EntryTitle.Render(EntryLabel(entry))}, width)...)

	meta := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		lines = append(lines, wrapLines([]string{th.MetaLabel.Render(label+": ") + th.MetaValue.Render(value)}, width)...)
	}
	meta("Author", entry.Author)
	meta("Feed", entry.FeedTitle)
	if t := entry.SortTime(); !t.IsZero() {
		meta("Date", t.UTC().Format("2006-01-02 15:04")+" ("+RelativeTimeLabel(now, t)+")")
	}
	meta("Link", entry.Link)
	return lines
}

// BodyLines renders the entry body as styled terminal lines, or returns raw
// text lines in raw mode. An error means rendering failed and the caller
// should show raw text.
func BodyLines(entry feed.Entry, opts ContentOptions) ([]string, error) {
	if strings.TrimSpace(entry.Body) == "" {
		return []string{noContent}, nil
	}
	if opts.Raw {
		return RawLines(entry.Body), nil
	}

	lines, err := article.RenderHTML(entry.Body, opts.Render)
	if err != nil {
		return nil, err
	}
	if opts.Cleanup {
		lines = article.Cleanup(lines, entry.Link)
	}
	if len(lines) == 0 {
		return []string{noContent}, nil
	}
	return article.ANSILines(lines), nil
}

func RawLines(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\t", "    ")
	if strings.TrimSpace(body) == "" {
		return []string{noContent}
	}
	return strings.Split(strings.TrimRight(body, "\n"), "\n")
}

// FallbackNotice explains why an entry is shown as raw text.
func FallbackNotice(err error) string {
	if errors.Is(err, article.ErrLimitExceeded) {
		return "Article too large to render, showing raw text"
	}
	return "Could not render article, showing raw text"
}

// wrapLines soft-wraps styled lines to width.
func wrapLines(lines []string, width int) []string {
	if width < 1 {
		return lines
	}
	wrap := lipgloss.NewStyle().Width(width)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" || lipgloss.Width(line) <= width {
			out = append(out, line)
			continue
		}
		out = append(out, strings.Split(wrap.Render(line), "\n")...)
	}
	return out
}
