// Package article turns feed entry HTML into styled terminal lines.
//
// Render walks a markup tree depth first, keeping the open tag stack, the
// current list depth and an in-progress line. Block elements break lines,
// text runs are whitespace-normalized and styled from the tag stack, and the
// finished lines are returned for the terminal layer to wrap and display.
package article

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glabrego/remy/internal/markup"
)

// ErrLimitExceeded is returned when input nests deeper or renders longer
// than Options allow. Callers should fall back to showing raw text.
var ErrLimitExceeded = errors.New("render limit exceeded")

type Options struct {
	// MaxDepth bounds element nesting.
	MaxDepth int
	// MaxLines bounds the number of output lines.
	MaxLines int
}

var DefaultOptions = Options{
	MaxDepth: 256,
	MaxLines: 20000,
}

func withDefaults(opts Options) Options {
	out := opts
	if out.MaxDepth < 1 {
		out.MaxDepth = DefaultOptions.MaxDepth
	}
	if out.MaxLines < 1 {
		out.MaxLines = DefaultOptions.MaxLines
	}
	return out
}

type htmlArticleRenderer struct {
	opts      Options
	stack     []string
	listDepth int
	line      []Segment
	// tailCollapsed is set when the last buffered segment came from
	// collapsed (non-preformatted) text.
	tailCollapsed bool
	// pendingPrefix is set while the buffer holds only a list item prefix.
	pendingPrefix bool
	out           []Line
}

// Render renders root with DefaultOptions. A list item's bullet shares its
// line with the item's first block, so <li><p>x</p></li> renders as "  • x".
func Render(root *markup.Node) ([]Line, error) {
	return RenderWithOptions(root, DefaultOptions)
}

func RenderWithOptions(root *markup.Node, opts Options) ([]Line, error) {
	if root == nil {
		return nil, nil
	}
	r := &htmlArticleRenderer{opts: withDefaults(opts)}
	if err := r.walk(root, 1); err != nil {
		return nil, err
	}
	r.flush()
	return r.finish(), nil
}

// RenderHTML parses an entry body and renders it. Blank input yields no
// lines.
func RenderHTML(raw string, opts Options) ([]Line, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	root, err := markup.ParseString(raw)
	if err != nil {
		return nil, err
	}
	return RenderWithOptions(root, opts)
}

func (r *htmlArticleRenderer) walk(node *markup.Node, depth int) error {
	if node == nil {
		return nil
	}
	if node.Kind == markup.TextNode {
		r.text(node.Text)
		return r.checkLines()
	}
	if depth > r.opts.MaxDepth {
		return fmt.Errorf("%w: nesting deeper than %d elements", ErrLimitExceeded, r.opts.MaxDepth)
	}

	tag := strings.ToLower(node.Tag)
	class := classify(tag)
	if class.has(classBlock) {
		r.breakBefore(class)
	}
	if class.has(classList) {
		r.listDepth++
	}
	if class.has(classListItem) {
		r.appendSegment(Segment{Text: listItemPrefix(r.listDepth)}, false)
		r.pendingPrefix = true
	}

	r.stack = append(r.stack, tag)
	for _, child := range node.Children {
		if err := r.walk(child, depth+1); err != nil {
			return err
		}
	}
	r.stack = r.stack[:len(r.stack)-1]

	if class.has(classList) && r.listDepth > 0 {
		r.listDepth--
	}
	if class.has(classBlock) {
		r.flush()
		if class.has(classSpaced) {
			r.spacer()
		}
	}
	if class.has(classBreak) {
		r.flush()
	}
	return r.checkLines()
}

func (r *htmlArticleRenderer) text(raw string) {
	style := ResolveStyle(r.stack)
	if preserving(r.stack) {
		raw = strings.ReplaceAll(raw, "\r\n", "\n")
		for i, fragment := range strings.Split(Normalize(raw, true), "\n") {
			if i > 0 {
				r.newline()
			}
			if fragment == "" {
				continue
			}
			r.appendSegment(Segment{Text: fragment, Style: style}, false)
		}
		return
	}

	text := Normalize(raw, false)
	if r.atWordBoundary() {
		text = strings.TrimLeft(text, " ")
	}
	if text == "" {
		return
	}
	r.appendSegment(Segment{Text: text, Style: style}, true)
}

// atWordBoundary reports whether a collapsed space would be redundant here:
// at the start of a line or right after a space.
func (r *htmlArticleRenderer) atWordBoundary() bool {
	if len(r.line) == 0 {
		return true
	}
	last := r.line[len(r.line)-1].Text
	return last == "" || isHTMLSpace(rune(last[len(last)-1]))
}

func (r *htmlArticleRenderer) appendSegment(seg Segment, collapsed bool) {
	r.line = append(r.line, seg)
	r.tailCollapsed = collapsed
	r.pendingPrefix = false
}

// breakBefore starts a block on a fresh line. A list item prefix with no
// text yet stays buffered so the item's first block shares its line; nested
// lists and items still get their own line.
func (r *htmlArticleRenderer) breakBefore(class tagClass) {
	if r.pendingPrefix && !class.has(classList|classListItem) {
		return
	}
	r.flush()
}

// newline ends a preformatted line. A newline on an empty buffer is a blank
// line in the source and becomes its own spacer, so runs of blank lines keep
// their length.
func (r *htmlArticleRenderer) newline() {
	if len(r.line) == 0 {
		r.spacer()
		return
	}
	r.flush()
}

// flush freezes the buffered segments into a line. Collapsed text never ends
// a line with a space.
func (r *htmlArticleRenderer) flush() {
	if len(r.line) == 0 {
		return
	}
	segments := r.line
	r.line = nil
	r.pendingPrefix = false
	if r.tailCollapsed {
		last := segments[len(segments)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text == "" {
			segments = segments[:len(segments)-1]
		} else {
			segments[len(segments)-1] = last
		}
	}
	r.tailCollapsed = false
	if len(segments) == 0 {
		return
	}
	r.out = append(r.out, Line{Segments: segments})
}

// spacer adds one blank line. Output never starts with a spacer; nested
// spaced blocks each add their own.
func (r *htmlArticleRenderer) spacer() {
	if len(r.out) == 0 {
		return
	}
	r.out = append(r.out, Line{Spacer: true})
}

func (r *htmlArticleRenderer) checkLines() error {
	if len(r.out) > r.opts.MaxLines {
		return fmt.Errorf("%w: more than %d lines", ErrLimitExceeded, r.opts.MaxLines)
	}
	return nil
}

// finish drops lines without visible text. Spacers are kept.
func (r *htmlArticleRenderer) finish() []Line {
	if len(r.out) == 0 {
		return nil
	}
	out := make([]Line, 0, len(r.out))
	for _, line := range r.out {
		if line.Spacer {
			out = append(out, Line{Spacer: true})
			continue
		}
		if !line.hasText() {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
