package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/quocvuong92/gitterm/internal/catalog"
	"github.com/quocvuong92/gitterm/internal/terminal"
)

// DetailsTitle heads the command details panel
const DetailsTitle = "Command Details"

// DefaultWordWrap is the markdown wrap width
const DefaultWordWrap = 80

// Renderer turns session state into styled terminal text
type Renderer struct {
	theme  Theme
	styles Styles
	md     *glamour.TermRenderer
}

// NewRenderer creates a renderer for a theme. Markdown is off until
// EnableMarkdown succeeds.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme, styles: NewStyles(theme)}
}

// EnableMarkdown sets up glamour rendering for command details
func (r *Renderer) EnableMarkdown(width int) error {
	if width <= 0 {
		width = DefaultWordWrap
	}
	style := "dark"
	if r.theme.ID == "light" {
		style = "light"
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	r.md = md
	return nil
}

// Markdown reports whether glamour rendering is enabled
func (r *Renderer) Markdown() bool {
	return r.md != nil
}

// Theme returns the renderer's theme
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Entry renders one transcript entry coloured by kind
func (r *Renderer) Entry(e terminal.Entry) string {
	switch e.Kind {
	case terminal.KindCommand:
		return r.styles.Command.Render(e.Content)
	case terminal.KindError:
		return r.styles.Error.Render(e.Content)
	default:
		return r.styles.Output.Render(e.Content)
	}
}

// Entries renders a transcript, one entry per line
func (r *Renderer) Entries(entries []terminal.Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = r.Entry(e)
	}
	return strings.Join(lines, "\n")
}

// Suggestions renders the suggestion row; the first related entries are
// highlighted as related commands.
func (r *Renderer) Suggestions(items []string, related int) string {
	if len(items) == 0 {
		return ""
	}
	chips := make([]string, len(items))
	for i, item := range items {
		if i < related {
			chips[i] = r.styles.Related.Render(item)
		} else {
			chips[i] = r.styles.Suggestion.Render(item)
		}
	}
	return strings.Join(chips, " ")
}

// Details renders the command details panel as styled text
func (r *Renderer) Details(spec catalog.CommandSpec) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(DetailsTitle))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Command.Render(spec.Command))
	b.WriteString("\n")
	b.WriteString(r.styles.Output.Render(spec.Description))
	b.WriteString("\n\n")

	b.WriteString(r.styles.Label.Render("Usage:"))
	b.WriteString("\n")
	b.WriteString(r.styles.Code.Render(spec.Usage))

	if len(spec.Examples) > 0 {
		b.WriteString("\n\n")
		b.WriteString(r.styles.Label.Render("Examples:"))
		for _, example := range spec.Examples {
			b.WriteString("\n")
			b.WriteString(r.styles.Code.Render(example))
		}
	}

	if len(spec.RelatedCommands) > 0 {
		b.WriteString("\n\n")
		b.WriteString(r.styles.Label.Render("Related:"))
		b.WriteString(" ")
		b.WriteString(r.Suggestions(spec.RelatedCommands, len(spec.RelatedCommands)))
	}

	return b.String()
}

// Panel wraps content in the themed border
func (r *Renderer) Panel(content string, width int) string {
	style := r.styles.Panel
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(content)
}

// RenderDetails renders details with glamour when enabled, falling back to
// the styled panel when markdown is off or fails.
func (r *Renderer) RenderDetails(spec catalog.CommandSpec) string {
	if r.md == nil {
		return r.Details(spec)
	}
	out, err := r.md.Render(DetailsMarkdown(spec))
	if err != nil {
		return r.Details(spec)
	}
	return strings.TrimRight(out, "\n")
}

// DetailsMarkdown formats a command's details as markdown
func DetailsMarkdown(spec catalog.CommandSpec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", spec.Command)
	fmt.Fprintf(&b, "%s\n\n", spec.Description)
	fmt.Fprintf(&b, "**Usage**\n\n```\n%s\n```\n", spec.Usage)

	if len(spec.Examples) > 0 {
		b.WriteString("\n**Examples**\n\n```sh\n")
		for _, example := range spec.Examples {
			b.WriteString(example)
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}

	if len(spec.RelatedCommands) > 0 {
		related := make([]string, len(spec.RelatedCommands))
		for i, c := range spec.RelatedCommands {
			related[i] = "`" + c + "`"
		}
		fmt.Fprintf(&b, "\n**Related:** %s\n", strings.Join(related, ", "))
	}

	return b.String()
}
