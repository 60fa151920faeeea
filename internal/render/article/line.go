package article

import "strings"

type Color int

const (
	ColorDefault Color = iota
	ColorYellow
	ColorGreen
	ColorBlue
)

func (c Color) String() string {
	switch c {
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	default:
		return "default"
	}
}

// Style is the set of terminal attributes applied to a run of text.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
	Color     Color
}

// Segment is a run of text with a uniform style.
type Segment struct {
	Text string
	Style
}

// Line is one output row. Spacer lines are deliberate vertical whitespace
// between blocks and never carry segments.
type Line struct {
	Segments []Segment
	Spacer   bool
}

func (l Line) Text() string {
	if len(l.Segments) == 1 {
		return l.Segments[0].Text
	}
	var b strings.Builder
	for _, seg := range l.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

func (l Line) hasText() bool {
	for _, seg := range l.Segments {
		if seg.Text != "" {
			return true
		}
	}
	return false
}

// PlainLines drops styling and returns each line's text.
func PlainLines(lines []Line) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Text()
	}
	return out
}
