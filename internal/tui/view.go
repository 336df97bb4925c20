package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quocvuong92/gitterm/internal/display"
)

const (
	title       = "Git Command Terminal"
	welcome     = "Welcome to Git Command Terminal! Type any git command to learn how to use it."
	keyHelp     = "enter: run │ ↑/↓: history │ tab: complete │ alt+1-9: pick │ ctrl+l: clear │ esc: quit"
	loadingText = "Loading..."
	goodbye     = "Goodbye!\n"
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return goodbye
	}
	if !m.ready {
		return "\n  " + loadingText
	}

	styles := m.renderer.Styles()
	var b strings.Builder

	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(m.renderer.Theme().Name))
	b.WriteString("\n\n")

	main := m.viewport.View()
	if len(m.session.Entries()) == 0 {
		main = styles.Muted.Render(welcome)
	}
	terminalBox := m.renderer.Panel(main, m.viewport.Width+2)

	if spec, ok := m.session.Current(); ok && m.width > detailsWidth*2 {
		details := m.renderer.Panel(m.renderer.Details(spec), detailsWidth-2)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, terminalBox, details))
	} else {
		b.WriteString(terminalBox)
	}
	b.WriteString("\n")

	b.WriteString(styles.Prompt.Render(m.session.Prompt() + " "))
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if row := m.renderer.Suggestions(m.session.Suggestions(), m.relatedCount()); row != "" {
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(strings.Join(display.Tips(), " • ")))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(keyHelp))

	return b.String()
}

// relatedCount is how many leading suggestions are related commands
func (m Model) relatedCount() int {
	if strings.TrimSpace(m.session.Input()) != "" {
		return 0
	}
	spec, ok := m.session.Current()
	if !ok {
		return 0
	}
	return len(spec.RelatedCommands)
}
