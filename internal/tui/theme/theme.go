package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title      lipgloss.Style
	ActiveLine lipgloss.Style
	// IdleCursor marks the selected entry while the content pane has focus.
	IdleCursor lipgloss.Style
	EntryTitle lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	Separator  lipgloss.Style
	Dragging   lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
	HelpBox    lipgloss.Style
	HelpKey    lipgloss.Style
	RawNotice  lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay0 := lipgloss.Color("#6c7086")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ActiveLine: lipgloss.NewStyle().Reverse(true),
		IdleCursor: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		EntryTitle: lipgloss.NewStyle().Bold(true).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		Separator:  lipgloss.NewStyle().Foreground(cpOverlay0),
		Dragging:   lipgloss.NewStyle().Foreground(cpLavender),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cpLavender).
			Padding(0, 2),
		HelpKey:   lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		RawNotice: lipgloss.NewStyle().Italic(true).Foreground(cpPeach),
	}
}

// RenderListLine highlights the selected entry: reversed while the list has
// focus, a muted background otherwise.
func (t Theme) RenderListLine(selected, focused bool, line string) string {
	switch {
	case !selected:
		return line
	case focused:
		return t.ActiveLine.Render(line)
	default:
		return t.IdleCursor.Render(line)
	}
}

func (t Theme) RenderSeparator(dragging bool) string {
	if dragging {
		return t.Dragging.Render("┃")
	}
	return t.Separator.Render("│")
}
