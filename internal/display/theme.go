package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrUnknownTheme is returned for a theme id that is not built in
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is a named terminal palette
type Theme struct {
	ID   string
	Name string

	Background      lipgloss.Color
	Foreground      lipgloss.Color
	Card            lipgloss.Color
	CardForeground  lipgloss.Color
	Primary         lipgloss.Color
	Accent          lipgloss.Color
	Destructive     lipgloss.Color
	Muted           lipgloss.Color
	MutedForeground lipgloss.Color
	Border          lipgloss.Color
}

var themes = []Theme{
	{
		ID:              "matrix",
		Name:            "Matrix Terminal",
		Background:      "#040c13",
		Foreground:      "#5bb661",
		Card:            "#09131a",
		CardForeground:  "#b3c0ca",
		Primary:         "#5bb661",
		Accent:          "#e97c48",
		Destructive:     "#f14d4c",
		Muted:           "#121c23",
		MutedForeground: "#76828b",
		Border:          "#19232a",
	},
	{
		ID:              "oceanic",
		Name:            "Oceanic Blue",
		Background:      "#00111c",
		Foreground:      "#8cdee2",
		Card:            "#001823",
		CardForeground:  "#b8e9eb",
		Primary:         "#00afbf",
		Accent:          "#00c4a3",
		Destructive:     "#ff1c5c",
		Muted:           "#00242f",
		MutedForeground: "#6b999b",
		Border:          "#012e3a",
	},
	{
		ID:              "sunset",
		Name:            "Sunset Orange",
		Background:      "#240301",
		Foreground:      "#ffd2a9",
		Card:            "#2c0805",
		CardForeground:  "#ffdcbd",
		Primary:         "#fe6a00",
		Accent:          "#ff8b00",
		Destructive:     "#ff000d",
		Muted:           "#39150f",
		MutedForeground: "#bb9679",
		Border:          "#47211b",
	},
	{
		ID:              "midnight",
		Name:            "Midnight Purple",
		Background:      "#050023",
		Foreground:      "#e1c9ff",
		Card:            "#08022b",
		CardForeground:  "#e6d3ff",
		Primary:         "#9a7bff",
		Accent:          "#e660ff",
		Destructive:     "#ff0050",
		Muted:           "#110e39",
		MutedForeground: "#9684b9",
		Border:          "#1c1a46",
	},
	{
		ID:              "light",
		Name:            "Light Terminal",
		Background:      "#fef8ea",
		Foreground:      "#00182a",
		Card:            "#ffffff",
		CardForeground:  "#000d1e",
		Primary:         "#004c8f",
		Accent:          "#007f90",
		Destructive:     "#df000d",
		Muted:           "#f0ebdc",
		MutedForeground: "#49677d",
		Border:          "#dcd7c9",
	},
	{
		ID:              "neon",
		Name:            "Neon Cyberpunk",
		Background:      "#020107",
		Foreground:      "#ffaeff",
		Card:            "#07040f",
		CardForeground:  "#ffbbff",
		Primary:         "#ea3aff",
		Accent:          "#00eab7",
		Destructive:     "#ff0043",
		Muted:           "#0f0a18",
		MutedForeground: "#c77dd8",
		Border:          "#1d1727",
	},
}

// Themes returns the built-in themes, default first
func Themes() []Theme {
	return append([]Theme(nil), themes...)
}

// DefaultTheme returns the matrix theme
func DefaultTheme() Theme {
	return themes[0]
}

// ThemeByID finds a built-in theme, ignoring case
func ThemeByID(id string) (Theme, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	for _, t := range themes {
		if t.ID == key {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, id, strings.Join(ThemeIDs(), ", "))
}

// ThemeIDs lists the built-in theme ids
func ThemeIDs() []string {
	ids := make([]string, len(themes))
	for i, t := range themes {
		ids[i] = t.ID
	}
	return ids
}

// Styles are the lipgloss styles derived from a theme
type Styles struct {
	Command    lipgloss.Style
	Output     lipgloss.Style
	Error      lipgloss.Style
	Prompt     lipgloss.Style
	Suggestion lipgloss.Style
	Related    lipgloss.Style
	Title      lipgloss.Style
	Label      lipgloss.Style
	Code       lipgloss.Style
	Muted      lipgloss.Style
	Panel      lipgloss.Style
}

// NewStyles builds the styles for a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Command:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Output:     lipgloss.NewStyle().Foreground(t.CardForeground),
		Error:      lipgloss.NewStyle().Foreground(t.Destructive),
		Prompt:     lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Suggestion: lipgloss.NewStyle().Foreground(t.Foreground).Background(t.Muted).Padding(0, 1),
		Related:    lipgloss.NewStyle().Foreground(t.Accent).Background(t.Muted).Padding(0, 1),
		Title:      lipgloss.NewStyle().Foreground(t.Foreground).Bold(true),
		Label:      lipgloss.NewStyle().Foreground(t.MutedForeground).Bold(true),
		Code:       lipgloss.NewStyle().Foreground(t.MutedForeground).Background(t.Muted),
		Muted:      lipgloss.NewStyle().Foreground(t.MutedForeground),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}
