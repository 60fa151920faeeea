package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tuistate "github.com/glabrego/remy/internal/tui/state"
	tuitheme "github.com/glabrego/remy/internal/tui/theme"
)

func Toolbar(focus tuistate.Window) string {
	switch focus {
	case tuistate.EntryContent:
		return "j/k scroll | h list | enter open | y copy | r raw | ? help"
	case tuistate.HelpPopup:
		return "esc/? close help"
	default:
		return "j/k move | l content | enter open | R refresh | ? help"
	}
}

type StatusParams struct {
	Loading bool
	Warning string
	Status  string
	Shown   int
	Focus   tuistate.Window
	Raw     bool
}

func StatusBar(p StatusParams, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	main := "Ready"
	switch {
	case p.Warning != "":
		state = "warning"
		stateLabel = th.StateWarn.Render("state")
		main = p.Warning
	case p.Loading:
		state = "loading"
		stateLabel = th.StateLoad.Render("state")
		main = "Refreshing feeds..."
	}
	if p.Status != "" {
		main = p.Status
	}

	mode := "rendered"
	if p.Raw {
		mode = "raw"
	}
	parts := []string{
		fmt.Sprintf("%s: %s", stateLabel, state),
		th.MetaValue.Render(main),
		th.MetaLabel.Render("focus") + " " + th.MetaValue.Render(p.Focus.String()),
		th.MetaLabel.Render("view") + " " + th.MetaValue.Render(mode),
		th.MetaValue.Render(fmt.Sprintf("%d entries", p.Shown)),
	}
	return strings.Join(parts, " • ")
}

var helpBindings = [][2]string{
	{"up/k, down/j", "move in list or scroll content"},
	{"left/h, right/l", "focus list or content"},
	{"pgup, pgdown", "page up or down"},
	{"g, G", "jump to top or bottom"},
	{"enter", "open entry link in browser"},
	{"y", "copy entry link"},
	{"r", "toggle raw HTML"},
	{"R", "refresh feeds"},
	{"mouse drag", "move the pane separator"},
	{"?, esc", "close this help"},
	{"q, ctrl+c", "quit"},
}

func HelpLines(th tuitheme.Theme) []string {
	keyWidth := 0
	for _, b := range helpBindings {
		if w := lipgloss.Width(b[0]); w > keyWidth {
			keyWidth = w
		}
	}
	lines := make([]string, 0, len(helpBindings)+2)
	lines = append(lines, th.Title.Render("Keys"), "")
	for _, b := range helpBindings {
		lines = append(lines, th.HelpKey.Render(padRight(b[0], keyWidth))+"  "+b[1])
	}
	return lines
}

// HelpPopup centers the boxed key reference in a width x height area.
func HelpPopup(width, height int, th tuitheme.Theme) string {
	box := th.HelpBox.Render(strings.Join(HelpLines(th), "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
