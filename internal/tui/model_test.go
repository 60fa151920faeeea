package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/remy/internal/app"
	"github.com/glabrego/remy/internal/feed"
	article "github.com/glabrego/remy/internal/render/article"
	tuiactions "github.com/glabrego/remy/internal/tui/actions"
	tuistate "github.com/glabrego/remy/internal/tui/state"
)

type fakeRefresher struct {
	report app.Report
	err    error
}

func (f fakeRefresher) Refresh(context.Context) (app.Report, error) {
	if f.err != nil {
		return app.Report{}, f.err
	}
	return f.report, nil
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sampleEntries() []feed.Entry {
	now := time.Date(2026, 2, 11, 16, 0, 0, 0, time.UTC)
	return []feed.Entry{
		{ID: "1", Title: "First Entry", FeedTitle: "Feed A", Author: "Ann", Link: "https://example.com/1", Body: "<p>Hello <b>world</b></p>", Published: now},
		{ID: "2", Title: "Second Entry", FeedTitle: "Feed B", Author: "Bob", Link: "https://example.com/2", Body: "<pre>code  here</pre>", Published: now.Add(-time.Hour)},
		{ID: "3", Title: "Third Entry", FeedTitle: "Feed B", Link: "not a url", Published: now.Add(-2 * time.Hour)},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestModelView_ShowsListAndContent(t *testing.T) {
	m := NewModel(nil, sampleEntries(), Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})

	view := m.View()
	for _, want := range []string{"remy", "First Entry", "Second Entry", "Author: Ann", "Feed: Feed A", "Hello world", "state: idle"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestModelView_EmptyList(t *testing.T) {
	m := NewModel(nil, nil, Options{})
	if view := m.View(); !strings.Contains(view, "No entries available.") {
		t.Fatalf("expected empty list message, got:\n%s", view)
	}
}

func TestModelUpdate_NavigateList(t *testing.T) {
	m := NewModel(nil, sampleEntries(), Options{})

	m, _ = update(t, m, keyRune('j'))
	if m.cursor != 1 || m.selectedID != "2" {
		t.Fatalf("expected cursor at 1 / id 2, got %d / %q", m.cursor, m.selectedID)
	}
	if !strings.Contains(m.content.View(), "code  here") {
		t.Fatalf("expected content pane to follow selection, got:\n%s", m.content.View())
	}

	m, _ = update(t, m, keyRune('G'))
	if m.cursor != 2 {
		t.Fatalf("expected cursor at bottom, got %d", m.cursor)
	}
	m, _ = update(t, m, keyRune('j'))
	if m.cursor != 2 {
		t.Fatalf("expected cursor clamped at bottom, got %d", m.cursor)
	}
	m, _ = update(t, m, keyRune('g'))
	if m.cursor != 0 {
		t.Fatalf("expected cursor at top, got %d", m.cursor)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatalf("expected cursor clamped at top, got %d", m.cursor)
	}
}

func TestModelUpdate_ContentFocusScrollsInsteadOfMoving(t *testing.T) {
	entries := sampleEntries()
	var body strings.Builder
	for i := 0; i < 60; i++ {
		body.WriteString("<p>paragraph</p>")
	}
	entries[0].Body = body.String()

	m := NewModel(nil, entries, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 12})
	m, _ = update(t, m, keyRune('l'))
	if m.focus.Current != tuistate.EntryContent {
		t.Fatalf("expected content focus, got %s", m.focus.Current)
	}

	m, _ = update(t, m, keyRune('j'))
	if m.cursor != 0 {
		t.Fatalf("expected list cursor unchanged, got %d", m.cursor)
	}
	if m.content.YOffset != 1 {
		t.Fatalf("expected content scrolled by one line, got offset %d", m.content.YOffset)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if m.content.YOffset <= 1 {
		t.Fatalf("expected page down to scroll further, got offset %d", m.content.YOffset)
	}

	m, _ = update(t, m, keyRune('g'))
	if m.content.YOffset != 0 {
		t.Fatalf("expected scroll to top, got offset %d", m.content.YOffset)
	}

	m, _ = update(t, m, keyRune('h'))
	m, _ = update(t, m, keyRune('j'))
	if m.cursor != 1 {
		t.Fatalf("expected list move after focusing list, got %d", m.cursor)
	}
}

func TestModelUpdate_HelpPopupSwallowsNavigation(t *testing.T) {
	m := NewModel(nil, sampleEntries(), Options{})

	m, _ = update(t, m, keyRune('?'))
	if m.focus.Current != tuistate.HelpPopup {
		t.Fatalf("expected help popup, got %s", m.focus.Current)
	}
	if view := m.View(); !strings.Contains(view, "toggle raw HTML") {
		t.Fatalf("expected help text in view, got:\n%s", view)
	}

	m, _ = update(t, m, keyRune('j'))
	m, _ = update(t, m, keyRune('r'))
	if m.cursor != 0 || m.raw {
		t.Fatalf("expected keys swallowed by help popup, cursor=%d raw=%v", m.cursor, m.raw)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus.Current != tuistate.EntryList {
		t.Fatalf("expected list focus restored, got %s", m.focus.Current)
	}
}

func TestModelUpdate_ToggleRaw(t *testing.T) {
	m := NewModel(nil, sampleEntries(), Options{})

	m, cmd := update(t, m, keyRune('r'))
	if !m.raw || cmd == nil {
		t.Fatalf("expected raw mode with status clear command, raw=%v", m.raw)
	}
	if !strings.Contains(m.content.View(), "<b>world</b>") {
		t.Fatalf("expected raw markup in content, got:\n%s", m.content.View())
	}

	m, _ = update(t, m, keyRune('r'))
	if m.raw || strings.Contains(m.content.View(), "<b>") {
		t.Fatalf("expected rendered content after toggling back, got:\n%s", m.content.View())
	}
}

func TestModelUpdate_RenderLimitFallsBackToRaw(t *testing.T) {
	m := NewModel(nil, sampleEntries(), Options{Render: article.Options{MaxDepth: 2}})
	if !strings.Contains(m.content.View(), "<p>Hello <b>world</b></p>") {
		t.Fatalf("expected raw fallback content, got:\n%s", m.content.View())
	}
	if m.status != "Article too large to render, showing raw text" {
		t.Fatalf("expected fallback status, got %q", m.status)
	}
	if m.Init() == nil {
		t.Fatal("expected startup fallback notice to expire")
	}

	m, _ = update(t, m, keyRune('j'))
	m, cmd := update(t, m, keyRune('k'))
	if cmd == nil {
		t.Fatal("expected fallback notice to expire after reselecting the entry")
	}
	m, _ = update(t, m, tuiactions.ClearStatusMsg{ID: m.statusID})
	if m.status != "" {
		t.Fatalf("expected fallback notice cleared, got %q", m.status)
	}
}

func TestModelUpdate_RefreshKeepsSelectionByID(t *testing.T) {
	entries := sampleEntries()
	m := NewModel(nil, entries, Options{})
	m, _ = update(t, m, keyRune('j'))

	fresh := append([]feed.Entry{{ID: "0", Title: "Brand New"}}, entries...)
	m, cmd := update(t, m, tuiactions.RefreshSuccessMsg{Report: app.Report{Entries: fresh, Feeds: 2, Failed: map[string]error{"x": errors.New("boom")}}})
	if m.selectedID != "2" || m.cursor != 2 {
		t.Fatalf("expected selection kept on id 2 at index 2, got %q at %d", m.selectedID, m.cursor)
	}
	if cmd == nil || !strings.Contains(m.status, "2 feeds") || !strings.Contains(m.status, "1 failed") {
		t.Fatalf("unexpected refresh status %q", m.status)
	}

	m, _ = update(t, m, tuiactions.RefreshSuccessMsg{Report: app.Report{Entries: fresh[:1]}})
	if m.cursor != 0 || m.selectedID != "0" {
		t.Fatalf("expected clamped selection when entry disappears, got %q at %d", m.selectedID, m.cursor)
	}
}

func TestModelUpdate_RefreshFlow(t *testing.T) {
	report := app.Report{Entries: sampleEntries()[:1], Feeds: 1}
	m := NewModel(fakeRefresher{report: report}, nil, Options{})
	if !m.loading {
		t.Fatal("expected loading state while the startup refresh runs")
	}
	initCmd := m.Init()
	if initCmd == nil {
		t.Fatal("expected startup refresh command")
	}
	m, _ = update(t, m, initCmd())
	if m.loading || len(m.entries) != 1 {
		t.Fatalf("expected refreshed entries, loading=%v entries=%d", m.loading, len(m.entries))
	}

	m, cmd := update(t, m, keyRune('R'))
	if cmd == nil || !m.loading {
		t.Fatal("expected manual refresh command")
	}
	if _, again := update(t, m, keyRune('R')); again != nil {
		t.Fatal("expected no second refresh while one is running")
	}
}

func TestModelUpdate_RefreshError(t *testing.T) {
	m := NewModel(fakeRefresher{err: errors.New("network")}, sampleEntries(), Options{})

	msg := m.Init()()
	m, _ = update(t, m, msg)
	if m.err == nil || m.loading {
		t.Fatalf("expected refresh error, err=%v loading=%v", m.err, m.loading)
	}
	if len(m.entries) != 3 {
		t.Fatalf("expected cached entries kept, got %d", len(m.entries))
	}
	if view := m.View(); !strings.Contains(view, "network") {
		t.Fatalf("expected error in status bar, got:\n%s", view)
	}
}

func TestModelUpdate_OpenAndCopyURL(t *testing.T) {
	m := NewModel(nil, sampleEntries(), Options{})
	var opened, copied string
	m.openURLFn = func(u string) error { opened = u; return nil }
	m.copyURLFn = func(u string) error { copied = u; return nil }

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected open command")
	}
	m, _ = update(t, m, cmd())
	if opened != "https://example.com/1" || m.status != "Opened URL in browser" {
		t.Fatalf("unexpected open result: opened=%q status=%q", opened, m.status)
	}

	m, cmd = update(t, m, keyRune('y'))
	m, _ = update(t, m, cmd())
	if copied != "https://example.com/1" || m.status != "URL copied to clipboard" {
		t.Fatalf("unexpected copy result: copied=%q status=%q", copied, m.status)
	}

	m, _ = update(t, m, keyRune('G'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.status, "unsupported URL scheme") && !strings.Contains(m.status, "invalid URL") {
		t.Fatalf("expected URL validation status, got %q", m.status)
	}
}

func TestModelUpdate_ClearStatus(t *testing.T) {
	m := NewModel(nil, sampleEntries(), Options{})
	m, _ = update(t, m, keyRune('r'))
	stale := m.statusID - 1

	m, _ = update(t, m, tuiactions.ClearStatusMsg{ID: stale})
	if m.status == "" {
		t.Fatal("stale clear should not drop the current status")
	}
	m, _ = update(t, m, tuiactions.ClearStatusMsg{ID: m.statusID})
	if m.status != "" {
		t.Fatalf("expected status cleared, got %q", m.status)
	}
}

func TestModelUpdate_DragSeparator(t *testing.T) {
	m := NewModel(nil, sampleEntries(), Options{SeparatorPercent: 50})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	before := m.content.Width

	m, _ = update(t, m, tea.MouseMsg{X: 50, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.separator.Dragging {
		t.Fatal("expected drag to start on the separator")
	}
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.separator.Percent != 30 {
		t.Fatalf("expected separator at 30%%, got %d", m.separator.Percent)
	}
	if m.content.Width <= before {
		t.Fatalf("expected wider content pane, got %d (was %d)", m.content.Width, before)
	}
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.separator.Dragging {
		t.Fatal("expected drag to end on release")
	}

	m, _ = update(t, m, tea.MouseMsg{X: 80, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.separator.Dragging || m.focus.Current != tuistate.EntryContent {
		t.Fatalf("expected click in content pane to focus it, dragging=%v focus=%s", m.separator.Dragging, m.focus.Current)
	}
}

func TestModelUpdate_Quit(t *testing.T) {
	m := NewModel(nil, sampleEntries(), Options{})
	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
}
