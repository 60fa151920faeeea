package article

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cpYellow = lipgloss.Color("#f9e2af")
	cpGreen  = lipgloss.Color("#a6e3a1")
	cpBlue   = lipgloss.Color("#89b4fa")
)

type styleRule struct {
	Style
	// colorRank orders competing color rules; ties go to the innermost tag.
	colorRank int
}

var styleRules = map[string]styleRule{
	"b":      {Style: Style{Bold: true}},
	"strong": {Style: Style{Bold: true}},
	"i":      {Style: Style{Italic: true}},
	"em":     {Style: Style{Italic: true}},
	"u":      {Style: Style{Underline: true}},
	"pre":    {Style: Style{Color: ColorGreen}, colorRank: 1},
	"code":   {Style: Style{Color: ColorGreen}, colorRank: 1},
	"h1":     {Style: Style{Bold: true, Color: ColorYellow}, colorRank: 1},
	"h2":     {Style: Style{Bold: true, Color: ColorYellow}, colorRank: 1},
	"h3":     {Style: Style{Bold: true, Color: ColorYellow}, colorRank: 1},
	"h4":     {Style: Style{Bold: true, Color: ColorYellow}, colorRank: 1},
	"h5":     {Style: Style{Bold: true, Color: ColorYellow}, colorRank: 1},
	"h6":     {Style: Style{Bold: true, Color: ColorYellow}, colorRank: 1},
	"a":      {Style: Style{Underline: true, Color: ColorBlue}, colorRank: 2},
}

// ResolveStyle folds the open tag stack, outermost first, into one Style.
// Attributes only accumulate. A link anywhere on the stack colors its text
// blue; otherwise the innermost color-bearing tag wins.
func ResolveStyle(stack []string) Style {
	var out Style
	rank := 0
	for _, tag := range stack {
		rule, ok := styleRules[strings.ToLower(tag)]
		if !ok {
			continue
		}
		out.Bold = out.Bold || rule.Bold
		out.Italic = out.Italic || rule.Italic
		out.Underline = out.Underline || rule.Underline
		if rule.Color != ColorDefault && rule.colorRank >= rank {
			out.Color = rule.Color
			rank = rule.colorRank
		}
	}
	return out
}

func (s Style) terminalStyle() lipgloss.Style {
	st := lipgloss.NewStyle().Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
	switch s.Color {
	case ColorYellow:
		st = st.Foreground(cpYellow)
	case ColorGreen:
		st = st.Foreground(cpGreen)
	case ColorBlue:
		st = st.Foreground(cpBlue)
	}
	return st
}

// ANSILines renders each line as a terminal string. Spacer lines become
// empty strings.
func ANSILines(lines []Line) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		for _, seg := range line.Segments {
			if seg.Style == (Style{}) {
				b.WriteString(seg.Text)
				continue
			}
			b.WriteString(seg.terminalStyle().Render(seg.Text))
		}
		out[i] = b.String()
	}
	return out
}
