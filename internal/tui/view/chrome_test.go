package view

import (
	"regexp"
	"strings"
	"testing"

	tuistate "github.com/glabrego/remy/internal/tui/state"
	tuitheme "github.com/glabrego/remy/internal/tui/theme"
)

var ansiStrip = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiStrip.ReplaceAllString(s, "")
}

func TestToolbar(t *testing.T) {
	if got := Toolbar(tuistate.EntryList); !strings.Contains(got, "j/k move") {
		t.Fatalf("unexpected list toolbar: %q", got)
	}
	if got := Toolbar(tuistate.EntryContent); !strings.Contains(got, "j/k scroll") {
		t.Fatalf("unexpected content toolbar: %q", got)
	}
	if got := Toolbar(tuistate.HelpPopup); !strings.Contains(got, "close help") {
		t.Fatalf("unexpected help toolbar: %q", got)
	}
}

func TestStatusBar(t *testing.T) {
	th := tuitheme.Default()

	idle := stripANSI(StatusBar(StatusParams{Shown: 3, Focus: tuistate.EntryList}, th))
	if !strings.Contains(idle, "state: idle") || !strings.Contains(idle, "Ready") || !strings.Contains(idle, "3 entries") {
		t.Fatalf("unexpected idle status bar: %q", idle)
	}

	loading := stripANSI(StatusBar(StatusParams{Loading: true, Raw: true}, th))
	if !strings.Contains(loading, "state: loading") || !strings.Contains(loading, "view raw") {
		t.Fatalf("unexpected loading status bar: %q", loading)
	}

	warning := stripANSI(StatusBar(StatusParams{Warning: "refresh failed", Status: "Copied"}, th))
	if !strings.Contains(warning, "state: warning") || !strings.Contains(warning, "Copied") {
		t.Fatalf("unexpected warning status bar: %q", warning)
	}
}

func TestHelpPopup_ListsBindings(t *testing.T) {
	popup := stripANSI(HelpPopup(80, 24, tuitheme.Default()))
	for _, want := range []string{"Keys", "toggle raw HTML", "refresh feeds", "quit"} {
		if !strings.Contains(popup, want) {
			t.Fatalf("expected %q in help popup, got:\n%s", want, popup)
		}
	}
	if lines := strings.Split(popup, "\n"); len(lines) != 24 {
		t.Fatalf("expected popup placed in 24 rows, got %d", len(lines))
	}
}
