// Package tui provides the full-screen terminal front end using Bubble Tea.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quocvuong92/gitterm/internal/constants"
	"github.com/quocvuong92/gitterm/internal/display"
	"github.com/quocvuong92/gitterm/internal/terminal"
)

// Layout
const (
	headerHeight  = 4
	footerHeight  = 4
	detailsWidth  = 44
	minViewHeight = 3
)

// Model is the Bubble Tea model over a terminal session
type Model struct {
	session  *terminal.Session
	renderer *display.Renderer

	input    textinput.Model
	viewport viewport.Model

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a model driving session
func New(session *terminal.Session, renderer *display.Renderer) Model {
	ti := textinput.New()
	ti.Placeholder = constants.InputPlaceholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()
	ti.SetValue(session.Input())

	m := Model{
		session:  session,
		renderer: renderer,
		input:    ti,
		viewport: viewport.New(80, 20),
	}
	m.refreshTranscript()
	return m
}

// Run starts the program on the alternate screen and blocks until quit
func Run(session *terminal.Session, renderer *display.Renderer) error {
	_, err := tea.NewProgram(New(session, renderer), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the TUI
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			m.session.Submit(m.input.Value())
			m.syncInput()
			m.refreshTranscript()
			return m, nil

		case "up":
			m.session.NavigateHistory(terminal.Previous)
			m.syncInput()
			return m, nil

		case "down":
			m.session.NavigateHistory(terminal.Next)
			m.syncInput()
			return m, nil

		case "tab":
			m.session.AutocompleteFirst(m.input.Value())
			m.syncInput()
			return m, nil

		case "ctrl+l":
			m.session.Reset()
			m.refreshTranscript()
			return m, nil

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if i, ok := suggestionIndex(msg.String()); ok {
			if suggestions := m.session.Suggestions(); i < len(suggestions) {
				m.session.SelectSuggestion(suggestions[i])
				m.syncInput()
				m.refreshTranscript()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.refreshTranscript()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.session.SetInput(after)
	}
	return m, cmd
}

// suggestionIndex maps alt+1 .. alt+9 to a suggestion position
func suggestionIndex(key string) (int, bool) {
	digit, ok := strings.CutPrefix(key, "alt+")
	if !ok || len(digit) != 1 || digit[0] < '1' || digit[0] > '9' {
		return 0, false
	}
	return int(digit[0] - '1'), true
}

// syncInput copies the session's input buffer into the text field
func (m *Model) syncInput() {
	m.input.SetValue(m.session.Input())
	m.input.CursorEnd()
}

func (m *Model) refreshTranscript() {
	if m.ready {
		m.resize()
	}
	m.viewport.SetContent(m.renderer.Entries(m.session.Entries()))
	m.viewport.GotoBottom()
}

func (m *Model) resize() {
	width := m.width - 2
	if _, ok := m.session.Current(); ok && m.width > detailsWidth*2 {
		width -= detailsWidth
	}
	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(m.height-headerHeight-footerHeight-4, minViewHeight)
	m.input.Width = max(m.viewport.Width-4, 10)
}

// Session returns the driven session
func (m Model) Session() *terminal.Session {
	return m.session
}

// Input returns the text field contents
func (m Model) Input() string {
	return m.input.Value()
}
