// Package tui is an interactive terminal front end for a search session.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/poiesic/docseek/session"
)

// SessionFactory builds a session with the given extra options.
// (*docseek.Workspace).NewSession satisfies it.
type SessionFactory func(opts ...session.Option) (*session.Session, error)

// Model represents the UI state
type Model struct {
	ctx       context.Context
	session   *session.Session
	input     textinput.Model
	help      help.Model
	styles    *Styles
	navigator session.Navigator
	logger    *slog.Logger

	width    int
	lastPath string // path of the most recent commit
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithNavigator forwards committed paths to navigator in addition to showing
// them in the status line.
func WithNavigator(navigator session.Navigator) Option {
	return func(m *Model) {
		m.navigator = navigator
	}
}

// WithStyles replaces the default styles.
func WithStyles(styles *Styles) Option {
	return func(m *Model) {
		if styles != nil {
			m.styles = styles
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
	}
}

// NewModel creates a new UI model with a fresh session from newSession.
func NewModel(ctx context.Context, newSession SessionFactory, opts ...Option) (*Model, error) {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Search documentation"
	input.CharLimit = 256

	m := &Model{
		ctx:    ctx,
		input:  input,
		help:   help.New(),
		styles: NewStyles(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.input.PromptStyle = m.styles.Prompt

	s, err := newSession(session.WithNavigator(session.NavigatorFunc(m.navigate)))
	if err != nil {
		return nil, err
	}
	m.session = s

	return m, nil
}

// Session returns the underlying session.
func (m *Model) Session() *session.Session {
	return m.session
}

// LastPath returns the path of the most recent commit, if any.
func (m *Model) LastPath() string {
	return m.lastPath
}

func (m *Model) navigate(path string) {
	m.lastPath = path
	m.logger.Info("navigating", "path", path)
	if m.navigator != nil {
		m.navigator.Navigate(path)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	// Session bindings, the toggle above all, win over the keys below.
	if m.session.HandleKey(m.ctx, k) {
		return m, m.syncInput()
	}

	if k == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.session.IsOpen() {
		if k == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		if q, ok := m.recentForKey(k); ok {
			m.session.SelectRecent(q)
			return m, m.syncInput()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.session.Query() {
		m.session.SetQuery(m.input.Value())
	}
	return m, cmd
}

// recentForKey maps "1".."5" to the recent query list.
func (m *Model) recentForKey(k string) (string, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return "", false
	}
	recent := m.session.RecentQueries()
	idx := int(k[0] - '1')
	if idx >= len(recent) {
		return "", false
	}
	return recent[idx], true
}

// syncInput makes the text field mirror the session after a transition.
func (m *Model) syncInput() tea.Cmd {
	if !m.session.IsOpen() {
		m.input.Reset()
		m.input.Blur()
		return nil
	}

	if m.input.Value() != m.session.Query() {
		m.input.SetValue(m.session.Query())
	}
	if !m.input.Focused() {
		return m.input.Focus()
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("docseek"))
	b.WriteString("\n")

	snap := m.session.Snapshot()
	switch snap.State {
	case session.StateClosed:
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("Press %s to search.", m.toggleLabel())))
		b.WriteString("\n")
		m.renderRecent(&b, snap.RecentQueries, true)
		if m.lastPath != "" {
			b.WriteString(m.styles.Status.Render("Opened " + m.lastPath))
			b.WriteString("\n")
		}

	case session.StateOpenEmpty:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		m.renderRecent(&b, snap.RecentQueries, false)

	case session.StateOpenResults:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		m.renderResults(&b, snap)
	}

	b.WriteString(m.styles.Help.Render(m.help.ShortHelpView(m.bindings(snap.State))))
	return b.String()
}

func (m *Model) renderRecent(b *strings.Builder, recent []string, numbered bool) {
	if len(recent) == 0 {
		return
	}
	b.WriteString(m.styles.Section.Render("Recent searches"))
	b.WriteString("\n")
	for i, q := range recent {
		if numbered {
			fmt.Fprintf(b, "  %d  %s\n", i+1, q)
		} else {
			fmt.Fprintf(b, "  %s\n", q)
		}
	}
}

func (m *Model) renderResults(b *strings.Builder, snap session.Snapshot) {
	if len(snap.Results) == 0 {
		b.WriteString(m.styles.Empty.Render(fmt.Sprintf("No results for %q", snap.Query)))
		b.WriteString("\n")
		return
	}

	for i, r := range snap.Results {
		cursor := "  "
		titleStyle := m.styles.Dim.UnsetFaint()
		if i == snap.SelectedIndex {
			cursor = m.styles.Selected.Render("› ")
			titleStyle = m.styles.Selected
		}

		line := cursor + highlight(r.Title, snap.Query, m.styles.Highlight, titleStyle)
		if r.Section != "" {
			line += "  " + m.styles.Section.Render(r.Section)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if r.Excerpt != "" {
			b.WriteString(m.styles.Excerpt.Render(r.Excerpt))
			b.WriteString("\n")
		}
	}
}

func (m *Model) toggleLabel() string {
	toggle := m.session.KeyMap().Toggle
	if len(toggle) == 0 {
		return "the toggle key"
	}
	return toggle[0]
}

// bindings describes the keys available in state for the help line.
func (m *Model) bindings(state session.State) []key.Binding {
	keys := m.session.KeyMap()
	toggle := key.NewBinding(key.WithKeys(keys.Toggle...), key.WithHelp(m.toggleLabel(), "toggle search"))

	if state == session.StateClosed {
		return []key.Binding{
			toggle,
			key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "recent")),
			key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		}
	}

	return []key.Binding{
		key.NewBinding(key.WithKeys(keys.Up...), key.WithHelp("↑", "up")),
		key.NewBinding(key.WithKeys(keys.Down...), key.WithHelp("↓", "down")),
		key.NewBinding(key.WithKeys(keys.Commit...), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys(keys.Close...), key.WithHelp("esc", "close")),
		toggle,
	}
}
