package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/remy/internal/app"
	"github.com/glabrego/remy/internal/feed"
	article "github.com/glabrego/remy/internal/render/article"
	tuiactions "github.com/glabrego/remy/internal/tui/actions"
	tuiplatform "github.com/glabrego/remy/internal/tui/platform"
	tuistate "github.com/glabrego/remy/internal/tui/state"
	tuitheme "github.com/glabrego/remy/internal/tui/theme"
	tuiview "github.com/glabrego/remy/internal/tui/view"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeLines is the title bar plus the status bar.
	chromeLines = 2
	statusTTL   = 4 * time.Second
)

type Options struct {
	SeparatorPercent int
	Cleanup          bool
	RefreshTimeout   time.Duration
	Render           article.Options
}

type Model struct {
	service        tuiactions.Service
	entries        []feed.Entry
	cursor         int
	selectedID     string
	focus          tuistate.Focus
	separator      tuistate.Separator
	content        viewport.Model
	contentEntryID string
	raw            bool
	cleanup        bool
	renderOpts     article.Options
	refreshTimeout time.Duration
	width          int
	height         int
	loading        bool
	status         string
	statusID       int
	err            error
	openURLFn      func(string) error
	copyURLFn      func(string) error
	nowFn          func() time.Time
	theme          tuitheme.Theme
}

func NewModel(service tuiactions.Service, entries []feed.Entry, opts Options) Model {
	if opts.RefreshTimeout <= 0 {
		opts.RefreshTimeout = 60 * time.Second
	}
	if opts.SeparatorPercent == 0 {
		opts.SeparatorPercent = 50
	}
	m := Model{
		service:        service,
		entries:        append([]feed.Entry(nil), entries...),
		focus:          tuistate.Focus{Current: tuistate.EntryList},
		separator:      tuistate.NewSeparator(opts.SeparatorPercent),
		cleanup:        opts.Cleanup,
		renderOpts:     opts.Render,
		refreshTimeout: opts.RefreshTimeout,
		width:          defaultWidth,
		height:         defaultHeight,
		loading:        service != nil,
		openURLFn:      tuiplatform.OpenURLInBrowser,
		copyURLFn:      tuiplatform.CopyURLToClipboard,
		nowFn:          time.Now,
		theme:          tuitheme.Default(),
	}
	if len(m.entries) > 0 {
		m.selectedID = m.entries[0].ID
	}
	m.content = viewport.New(m.contentWidth(), m.bodyHeight())
	m.syncContent(true)
	return m
}

// Init starts the background refresh and expires any startup notice.
func (m Model) Init() tea.Cmd {
	var refresh tea.Cmd
	if m.service != nil {
		refresh = tuiactions.RefreshCmd(m.service, m.refreshTimeout, "init")
	}
	if m.status == "" {
		return refresh
	}
	expire := tuiactions.ClearStatusCmd(m.statusID, statusTTL)
	if refresh == nil {
		return expire
	}
	return tea.Batch(refresh, expire)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.syncContent(false)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tuiactions.RefreshSuccessMsg:
		m.loading = false
		m.err = nil
		m.entries = msg.Report.Entries
		m.restoreSelection()
		m.syncContent(true)
		return m.setStatus(refreshStatus(msg.Report))
	case tuiactions.RefreshErrorMsg:
		m.loading = false
		m.status = ""
		m.err = msg.Err
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		m.err = nil
		return m.setStatus(msg.Status)
	case tuiactions.OpenURLErrorMsg:
		m.status = ""
		m.err = msg.Err
		return m, nil
	case tuiactions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.focus = m.focus.ToggleHelp()
		return m, nil
	}

	if m.focus.Current == tuistate.HelpPopup {
		if msg.String() == "esc" {
			m.focus = m.focus.ToggleHelp()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch msg.String() {
	case "left", "h":
		m.focus = m.focus.Left()
	case "right", "l":
		m.focus = m.focus.Right()
	case "up", "k":
		cmd = m.moveBy(-1)
	case "down", "j":
		cmd = m.moveBy(1)
	case "pgup", "ctrl+b":
		cmd = m.moveBy(-tuistate.PageStep(m.bodyHeight()))
	case "pgdown", "ctrl+f":
		cmd = m.moveBy(tuistate.PageStep(m.bodyHeight()))
	case "g", "home":
		if m.focus.Current == tuistate.EntryContent {
			m.content.GotoTop()
		} else {
			cmd = m.selectIndex(0)
		}
	case "G", "end":
		if m.focus.Current == tuistate.EntryContent {
			m.content.GotoBottom()
		} else {
			cmd = m.selectIndex(len(m.entries) - 1)
		}
	case "enter":
		return m.openCurrentURL()
	case "y":
		return m.copyCurrentURL()
	case "r":
		m.raw = !m.raw
		m.syncContent(false)
		if m.raw {
			return m.setStatus("Raw view: on")
		}
		return m.setStatus("Raw view: off")
	case "R":
		if m.service == nil || m.loading {
			return m, nil
		}
		m.loading = true
		m.status = ""
		m.err = nil
		return m, tuiactions.RefreshCmd(m.service, m.refreshTimeout, "manual")
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.separator = m.separator.Press(msg.X, m.width)
		if !m.separator.Dragging && m.focus.Current != tuistate.HelpPopup {
			if msg.X < m.separator.Column(m.width) {
				m.focus = m.focus.Left()
			} else {
				m.focus = m.focus.Right()
			}
		}
	case msg.Action == tea.MouseActionMotion && m.separator.Dragging:
		m.separator = m.separator.Drag(msg.X, m.width)
		cmd = m.syncContent(false)
	case msg.Action == tea.MouseActionRelease:
		m.separator = m.separator.Release()
	case msg.Button == tea.MouseButtonWheelUp:
		m.content.SetYOffset(m.content.YOffset - 3)
	case msg.Button == tea.MouseButtonWheelDown:
		m.content.SetYOffset(m.content.YOffset + 3)
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("remy"))
	b.WriteString("  ")
	b.WriteString(m.theme.MetaLabel.Render(tuiview.Toolbar(m.focus.Current)))
	b.WriteString("\n")

	if m.focus.Current == tuistate.HelpPopup {
		b.WriteString(tuiview.HelpPopup(m.width, m.bodyHeight(), m.theme))
	} else {
		b.WriteString(m.panes())
	}
	b.WriteString("\n")

	warning := ""
	if m.err != nil {
		warning = m.err.Error()
	}
	b.WriteString(tuiview.StatusBar(tuiview.StatusParams{
		Loading: m.loading,
		Warning: warning,
		Status:  m.status,
		Shown:   len(m.entries),
		Focus:   m.focus.Current,
		Raw:     m.raw,
	}, m.theme))
	return b.String()
}

func (m Model) panes() string {
	height := m.bodyHeight()
	listLines := tuiview.ListLines(tuiview.ListParams{
		Entries: m.entries,
		Cursor:  m.cursor,
		Width:   m.listWidth(),
		Height:  height,
		Focused: m.focus.Current == tuistate.EntryList,
		Loading: m.loading,
	}, m.theme)
	list := lipgloss.NewStyle().Width(m.listWidth()).Height(height).Render(strings.Join(listLines, "\n"))

	sep := make([]string, height)
	for i := range sep {
		sep[i] = m.theme.RenderSeparator(m.separator.Dragging)
	}

	content := lipgloss.NewStyle().PaddingLeft(1).Render(m.content.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, list, strings.Join(sep, "\n"), content)
}

func (m *Model) moveBy(delta int) tea.Cmd {
	if m.focus.Current == tuistate.EntryContent {
		m.content.SetYOffset(m.content.YOffset + delta)
		return nil
	}
	return m.selectIndex(m.cursor + delta)
}

func (m *Model) selectIndex(i int) tea.Cmd {
	if len(m.entries) == 0 {
		return nil
	}
	m.cursor = tuistate.ClampCursor(i, len(m.entries))
	m.selectedID = m.entries[m.cursor].ID
	return m.syncContent(false)
}

// restoreSelection keeps the selected entry across list replacements,
// falling back to a clamped cursor when it disappeared.
func (m *Model) restoreSelection() {
	if len(m.entries) == 0 {
		m.cursor = 0
		m.selectedID = ""
		return
	}
	if idx := tuistate.EntryIndexByID(m.entries, m.selectedID); idx >= 0 {
		m.cursor = idx
	} else {
		m.cursor = tuistate.ClampCursor(m.cursor, len(m.entries))
	}
	m.selectedID = m.entries[m.cursor].ID
}

// syncContent resizes the content pane and re-renders the selected entry.
// The scroll position resets when a different entry is shown. When the entry
// falls back to raw text the returned command expires the notice.
func (m *Model) syncContent(force bool) tea.Cmd {
	m.content.Width = m.contentWidth()
	m.content.Height = m.bodyHeight()

	entry, ok := m.currentEntry()
	if !ok {
		m.contentEntryID = ""
		m.content.SetContent("")
		return nil
	}

	c := tuiview.EntryContent(entry, tuiview.ContentOptions{
		Width:   m.content.Width,
		Raw:     m.raw,
		Cleanup: m.cleanup,
		Render:  m.renderOpts,
		Now:     m.nowFn(),
	}, m.theme)
	m.content.SetContent(c.String())
	if force || entry.ID != m.contentEntryID {
		m.content.GotoTop()
	}
	m.contentEntryID = entry.ID
	if c.Fallback {
		return m.noteStatus(tuiview.FallbackNotice(c.Err))
	}
	return nil
}

func (m Model) currentEntry() (feed.Entry, bool) {
	if len(m.entries) == 0 || m.cursor < 0 || m.cursor >= len(m.entries) {
		return feed.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m Model) openCurrentURL() (tea.Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m, nil
	}
	validURL, err := tuiplatform.ValidateEntryURL(entry.Link)
	if err != nil {
		m.err = nil
		return m.setStatus(err.Error())
	}
	return m, tuiactions.OpenURLCmd(validURL, m.openURLFn, m.copyURLFn)
}

func (m Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m, nil
	}
	validURL, err := tuiplatform.ValidateEntryURL(entry.Link)
	if err != nil {
		m.err = nil
		return m.setStatus(err.Error())
	}
	return m, tuiactions.CopyURLCmd(validURL, m.copyURLFn)
}

func (m Model) setStatus(status string) (tea.Model, tea.Cmd) {
	cmd := m.noteStatus(status)
	return m, cmd
}

func (m *Model) noteStatus(status string) tea.Cmd {
	m.status = status
	m.statusID++
	return tuiactions.ClearStatusCmd(m.statusID, statusTTL)
}

func refreshStatus(report app.Report) string {
	status := fmt.Sprintf("Refreshed %d feeds in %s", report.Feeds, report.Duration.Round(time.Millisecond))
	if n := len(report.Failed); n > 0 {
		status += fmt.Sprintf(", %d failed", n)
	}
	if report.CacheErr != nil {
		status += ", cache not updated"
	}
	return status
}

func (m Model) bodyHeight() int {
	h := m.height - chromeLines
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) listWidth() int {
	w := m.separator.Column(m.width)
	if w < 1 {
		return 1
	}
	return w
}

// contentWidth excludes the separator column and the left padding.
func (m Model) contentWidth() int {
	w := m.width - m.listWidth() - 2
	if w < 1 {
		return 1
	}
	return w
}
