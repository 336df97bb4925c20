package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/gitterm/internal/catalog"
	"github.com/quocvuong92/gitterm/internal/config"
	"github.com/quocvuong92/gitterm/internal/display"
	"github.com/quocvuong92/gitterm/internal/history"
	"github.com/quocvuong92/gitterm/internal/terminal"
)

// commandTable renders specs as a bordered table in the app theme
func (app *App) commandTable(specs []catalog.CommandSpec) string {
	theme := app.renderer.Theme()
	header := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("COMMAND", "CATEGORY", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, spec := range specs {
		t.Row(spec.Command, string(spec.Category), spec.Description)
	}
	return t.Render()
}

func newListCmd(app *App) *cobra.Command {
	var category string
	var count bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the commands in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if count {
				for _, c := range catalog.Categories() {
					if n := len(app.catalog.ByCategory(c)); n > 0 {
						fmt.Fprintf(out, "%-12s %d\n", c, n)
					}
				}
				fmt.Fprintf(out, "%-12s %d\n", "total", app.catalog.Count())
				return nil
			}

			specs := app.catalog.All()
			if category != "" {
				c, err := catalog.ParseCategory(category)
				if err != nil {
					return err
				}
				specs = app.catalog.ByCategory(c)
			}
			fmt.Fprintln(out, app.commandTable(specs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list one category: main, ancillary, plumbing")
	cmd.Flags().BoolVar(&count, "count", false, "Show the number of commands per category")
	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find commands by name, description, or example",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			results := app.resolver.Search(query)
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No commands match %q\n", query)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.commandTable(results))
			return nil
		},
	}
}

func newRandomCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Explain a random command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, ok := app.catalog.Random()
			if !ok {
				return fmt.Errorf("the catalog has no commands")
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.renderer.RenderDetails(spec))
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the saved command history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if clear {
				return clearHistory(cmd.OutOrStdout(), store)
			}
			return printHistory(cmd.OutOrStdout(), store)
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Erase the transcript and command history")
	return cmd
}

func printHistory(w io.Writer, store history.Store) error {
	var commands []string
	if _, err := store.Load(history.KeyCommands, &commands); err != nil {
		return fmt.Errorf("failed to load command history: %w", err)
	}
	if len(commands) == 0 {
		fmt.Fprintln(w, "No commands in history")
		return nil
	}
	for i, c := range commands {
		fmt.Fprintf(w, "%4d  %s\n", i+1, c)
	}
	return nil
}

func clearHistory(w io.Writer, store history.Store) error {
	if err := store.Save(history.KeyCommands, []string{}); err != nil {
		return fmt.Errorf("failed to clear command history: %w", err)
	}
	if err := store.Save(history.KeyTranscript, []terminal.Entry{}); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	fmt.Fprintln(w, "History cleared")
	return nil
}

func newThemesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the colour themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := app.renderer.Theme().ID
			for _, t := range display.Themes() {
				marker := " "
				if t.ID == current {
					marker = "*"
				}
				swatch := lipgloss.NewStyle().Foreground(t.Primary).Background(t.Background).Render(" " + t.Name + " ")
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s %s\n", marker, t.ID, swatch)
			}
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		// A broken existing config must not block writing a new one
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.cfg
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "theme:            %s\n", c.Theme)
			fmt.Fprintf(out, "prompt:           %s\n", c.Prompt)
			fmt.Fprintf(out, "suggestion_limit: %d\n", c.SuggestionLimit)
			fmt.Fprintf(out, "catalog:          %s\n", valueOr(c.CatalogPath, "(built-in)"))
			fmt.Fprintf(out, "store:            %s\n", c.Store)
			fmt.Fprintf(out, "store_path:       %s\n", valueOr(c.StorePath, "(default)"))
			fmt.Fprintf(out, "log_level:        %s\n", c.LogLevel)
			fmt.Fprintf(out, "log_format:       %s\n", c.LogFormat)
			return nil
		},
	})

	return cmd
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
