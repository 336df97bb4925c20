package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/quocvuong92/gitterm/internal/constants"
)

// Output streams, replaced in tests
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f14d4c")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e97c48")).Bold(true)
)

// ShowError prints an error message to stderr
func ShowError(msg string) {
	fmt.Fprintf(stderr, "%s %s\n", errorStyle.Render("Error:"), msg)
}

// ShowWarning prints a warning message to stderr
func ShowWarning(msg string) {
	fmt.Fprintf(stderr, "%s %s\n", warningStyle.Render("Warning:"), msg)
}

// ShowContent prints text to stdout
func ShowContent(content string) {
	fmt.Fprintln(stdout, content)
}

// tips are shown by the interactive front ends
var tips = []string{
	"Use ↑/↓ arrows for history",
	"Press Tab for command autocomplete",
	"Pick a related command to explore",
	"Your history is saved between sessions",
	"Type clear to reset the terminal",
}

// Tips returns the help lines
func Tips() []string {
	return append([]string(nil), tips...)
}

// FormatTips renders the tips block under a title
func (r *Renderer) FormatTips() string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Tips"))
	for _, tip := range tips {
		b.WriteString("\n")
		b.WriteString(r.styles.Muted.Render("• " + tip))
	}
	return b.String()
}

// Spinner shows progress on stderr while the terminal is busy
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a stopped spinner with a message
func NewSpinner(msg string) *Spinner {
	s := spinner.New(spinner.CharSets[14], constants.SpinnerDelay, spinner.WithWriter(stderr))
	s.Suffix = " " + msg
	return &Spinner{s: s}
}

// Start begins the animation
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop ends the animation and clears the line
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// UpdateMessage replaces the spinner text
func (sp *Spinner) UpdateMessage(msg string) {
	sp.s.Lock()
	sp.s.Suffix = " " + msg
	sp.s.Unlock()
}
