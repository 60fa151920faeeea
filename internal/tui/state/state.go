package state

import "github.com/glabrego/remy/internal/feed"

// Window is the part of the screen that receives navigation keys.
type Window int

const (
	EntryList Window = iota
	EntryContent
	HelpPopup
)

func (w Window) String() string {
	switch w {
	case EntryContent:
		return "content"
	case HelpPopup:
		return "help"
	default:
		return "list"
	}
}

// Focus tracks the active window and the pane that was active before the
// help popup opened.
type Focus struct {
	Current  Window
	Previous Window
}

func (f Focus) Left() Focus {
	if f.Current == HelpPopup {
		return f
	}
	return Focus{Current: EntryList, Previous: f.Current}
}

func (f Focus) Right() Focus {
	if f.Current == HelpPopup {
		return f
	}
	return Focus{Current: EntryContent, Previous: f.Current}
}

// ToggleHelp opens the help popup, or closes it and restores the pane that
// had focus before.
func (f Focus) ToggleHelp() Focus {
	if f.Current == HelpPopup {
		return Focus{Current: f.Previous, Previous: HelpPopup}
	}
	return Focus{Current: HelpPopup, Previous: f.Current}
}

const (
	minSeparatorPercent = 10
	maxSeparatorPercent = 90
)

// Separator is the draggable boundary between the list and content panes,
// stored as a percentage of the terminal width.
type Separator struct {
	Percent  int
	Dragging bool
}

func NewSeparator(percent int) Separator {
	return Separator{Percent: clampPercent(percent)}
}

// Column is the zero-based terminal column of the separator.
func (s Separator) Column(width int) int {
	if width <= 0 {
		return 0
	}
	return width * s.Percent / 100
}

// Press starts a drag when x is within one column of the separator.
func (s Separator) Press(x, width int) Separator {
	col := s.Column(width)
	if x >= col-1 && x <= col+1 {
		s.Dragging = true
	}
	return s
}

func (s Separator) Drag(x, width int) Separator {
	if !s.Dragging || width <= 0 {
		return s
	}
	s.Percent = clampPercent(x * 100 / width)
	return s
}

func (s Separator) Release() Separator {
	s.Dragging = false
	return s
}

func clampPercent(p int) int {
	if p < minSeparatorPercent {
		return minSeparatorPercent
	}
	if p > maxSeparatorPercent {
		return maxSeparatorPercent
	}
	return p
}

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// PageStep is the number of rows a page key moves inside a pane of the given
// height.
func PageStep(height int) int {
	if height <= 0 {
		return 10
	}
	step := height - 2
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

func EntryIndexByID(entries []feed.Entry, entryID string) int {
	if entryID == "" {
		return -1
	}
	for i, entry := range entries {
		if entry.ID == entryID {
			return i
		}
	}
	return -1
}
