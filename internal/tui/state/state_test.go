package state

import (
	"testing"

	"github.com/glabrego/remy/internal/feed"
)

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
	if got := ClampCursor(5, 0); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0); got != 10 {
		t.Fatalf("expected default step 10, got %d", got)
	}
	if got := PageStep(12); got != 10 {
		t.Fatalf("expected step 10, got %d", got)
	}
	if got := PageStep(4); got != 3 {
		t.Fatalf("expected minimum step 3, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	cases := []struct {
		total, cursor, height int
		start, end            int
	}{
		{total: 0, cursor: 0, height: 5, start: 0, end: 0},
		{total: 3, cursor: 2, height: 5, start: 0, end: 3},
		{total: 20, cursor: 0, height: 5, start: 0, end: 5},
		{total: 20, cursor: 10, height: 5, start: 8, end: 13},
		{total: 20, cursor: 19, height: 5, start: 15, end: 20},
	}
	for _, tc := range cases {
		start, end := CenteredWindow(tc.total, tc.cursor, tc.height)
		if start != tc.start || end != tc.end {
			t.Fatalf("CenteredWindow(%d, %d, %d) = (%d, %d), want (%d, %d)", tc.total, tc.cursor, tc.height, start, end, tc.start, tc.end)
		}
	}
}

func TestFocusTransitions(t *testing.T) {
	f := Focus{Current: EntryList}

	f = f.Right()
	if f.Current != EntryContent {
		t.Fatalf("expected content focus, got %s", f.Current)
	}

	f = f.ToggleHelp()
	if f.Current != HelpPopup {
		t.Fatalf("expected help popup, got %s", f.Current)
	}
	if moved := f.Left(); moved.Current != HelpPopup {
		t.Fatalf("expected help popup to swallow focus moves, got %s", moved.Current)
	}

	f = f.ToggleHelp()
	if f.Current != EntryContent {
		t.Fatalf("expected focus restored to content, got %s", f.Current)
	}

	f = f.Left()
	if f.Current != EntryList {
		t.Fatalf("expected list focus, got %s", f.Current)
	}
}

func TestSeparator_PressDragRelease(t *testing.T) {
	s := NewSeparator(50)
	if col := s.Column(100); col != 50 {
		t.Fatalf("expected column 50, got %d", col)
	}

	if s.Press(40, 100).Dragging {
		t.Fatal("press away from the separator should not start a drag")
	}
	if s.Drag(30, 100).Percent != 50 {
		t.Fatal("drag without press should not move the separator")
	}

	s = s.Press(51, 100)
	if !s.Dragging {
		t.Fatal("press within one column should start a drag")
	}
	s = s.Drag(30, 100)
	if s.Percent != 30 {
		t.Fatalf("expected 30%%, got %d", s.Percent)
	}
	s = s.Release()
	if s.Dragging {
		t.Fatal("release should end the drag")
	}
}

func TestSeparator_Clamps(t *testing.T) {
	s := NewSeparator(50).Press(50, 100)
	if got := s.Drag(2, 100).Percent; got != 10 {
		t.Fatalf("expected clamp to 10, got %d", got)
	}
	if got := s.Drag(99, 100).Percent; got != 90 {
		t.Fatalf("expected clamp to 90, got %d", got)
	}
	if got := NewSeparator(0).Percent; got != 10 {
		t.Fatalf("expected constructor clamp to 10, got %d", got)
	}
}

func TestEntryIndexByID(t *testing.T) {
	entries := []feed.Entry{{ID: "a"}, {ID: "b"}}
	if got := EntryIndexByID(entries, "b"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if got := EntryIndexByID(entries, "zzz"); got != -1 {
		t.Fatalf("expected -1 for missing id, got %d", got)
	}
	if got := EntryIndexByID(entries, ""); got != -1 {
		t.Fatalf("expected -1 for empty id, got %d", got)
	}
}
