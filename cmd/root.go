package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/gitterm/internal/catalog"
	"github.com/quocvuong92/gitterm/internal/config"
	"github.com/quocvuong92/gitterm/internal/constants"
	"github.com/quocvuong92/gitterm/internal/display"
	"github.com/quocvuong92/gitterm/internal/history"
	"github.com/quocvuong92/gitterm/internal/logging"
	"github.com/quocvuong92/gitterm/internal/resolver"
	"github.com/quocvuong92/gitterm/internal/terminal"
	"github.com/quocvuong92/gitterm/internal/tui"
)

// errNotFound marks a lookup miss whose message was already printed
var errNotFound = errors.New("command not found")

// App holds the application state
type App struct {
	cfg      *config.Config
	logger   *logging.Logger
	catalog  *catalog.Catalog
	resolver *resolver.Resolver
	renderer *display.Renderer
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg:    config.NewConfig(),
		logger: logging.DefaultLogger,
	}
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(NewApp()).Execute(); err != nil {
		if !errors.Is(err, errNotFound) {
			display.ShowError(err.Error())
		}
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree around app
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitterm [git command]",
		Short: "Learn git commands from an interactive terminal",
		Long: `gitterm explains git commands: type one and it shows what the command
does, how to call it, examples, and related commands.

Unknown commands get the closest matches from a catalog of the official git
commands. The transcript and command history are kept between sessions.

Examples:
  gitterm git rebase                  # Explain one command
  gitterm "git commit -m fix"         # Arguments are ignored for the lookup
  gitterm -i                          # Interactive line mode
  gitterm -t                          # Full-screen terminal
  gitterm search branch               # Find commands by keyword`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.cfg.ConfigPath, "config", "", "Config file (default: search .gitterm/ and ~/.config/gitterm/)")
	flags.StringVar(&app.cfg.Theme, "theme", "", "Colour theme: "+strings.Join(display.ThemeIDs(), ", "))
	flags.StringVar(&app.cfg.Store, "store", "", "History store: file, sqlite, or memory")
	flags.StringVar(&app.cfg.StorePath, "store-path", "", "History directory (file) or database (sqlite)")
	flags.StringVar(&app.cfg.CatalogPath, "catalog", "", "YAML command catalog replacing the built-in one")
	flags.StringVar(&app.cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error, or none")
	flags.StringVar(&app.cfg.LogFormat, "log-format", "", "Log format: text, json, or logfmt")
	flags.BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().BoolVarP(&app.cfg.Interactive, "interactive", "i", false, "Interactive line mode")
	rootCmd.Flags().BoolVarP(&app.cfg.TUI, "tui", "t", false, "Full-screen terminal")
	rootCmd.PersistentFlags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render command details as markdown")

	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newSearchCmd(app))
	rootCmd.AddCommand(newRandomCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newThemesCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))

	return rootCmd
}

// setup validates the configuration and builds the shared collaborators
func (app *App) setup() error {
	if err := app.cfg.Validate(); err != nil {
		return err
	}

	app.logger = logging.New(app.cfg.Logging())

	cat, err := app.loadCatalog()
	if err != nil {
		return err
	}
	app.catalog = cat
	app.resolver = resolver.New(cat)

	theme, err := display.ThemeByID(app.cfg.Theme)
	if err != nil {
		return err
	}
	app.renderer = display.NewRenderer(theme)
	if app.cfg.Render {
		if err := app.renderer.EnableMarkdown(display.DefaultWordWrap); err != nil {
			app.logger.Warn("Markdown rendering disabled", logging.Fields{"error": err.Error()})
		}
	}

	app.logger.Debug("Configuration loaded", logging.Fields{
		"theme":    app.cfg.Theme,
		"store":    app.cfg.Store,
		"commands": cat.Count(),
	})
	return nil
}

func (app *App) loadCatalog() (*catalog.Catalog, error) {
	if app.cfg.CatalogPath != "" {
		return catalog.LoadFile(app.cfg.CatalogPath)
	}
	return catalog.Default()
}

func (app *App) run(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) > 0:
		return app.lookup(cmd.OutOrStdout(), strings.Join(args, " "))
	case app.cfg.Interactive:
		return app.runInteractive(cmd.Context())
	case app.cfg.TUI:
		return app.runTUI(cmd.Context())
	default:
		return cmd.Help()
	}
}

// lookup explains one command line without touching the persisted history
func (app *App) lookup(w io.Writer, input string) error {
	if spec, ok := app.resolver.Resolve(input); ok {
		fmt.Fprintln(w, app.renderer.RenderDetails(spec))
		return nil
	}

	session := terminal.NewSession(app.resolver,
		terminal.WithLogger(app.logger),
		terminal.WithSuggestionLimit(app.cfg.SuggestionLimit))
	// One-shot mode has no transcript to reset, so the reset word is an
	// ordinary miss here
	session.SelectSuggestion(input)

	// The first entry echoes the input
	entries := session.Entries()
	if len(entries) > 1 {
		fmt.Fprintln(w, app.renderer.Entries(entries[1:]))
	}
	return errNotFound
}

// openStore opens the configured history store, giving up after a timeout
func (app *App) openStore(ctx context.Context) (history.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.StoreOpenTimeout)
	defer cancel()

	type result struct {
		store history.Store
		err   error
	}
	done := make(chan result, 1)
	go func() {
		s, err := history.Open(app.cfg.Store, app.cfg.StorePath)
		done <- result{s, err}
	}()

	select {
	case r := <-done:
		return r.store, r.err
	case <-ctx.Done():
		// Close a store that finishes opening after we gave up
		go func() {
			if r := <-done; r.store != nil {
				r.store.Close()
			}
		}()
		return nil, fmt.Errorf("opening %s store: %w", app.cfg.Store, ctx.Err())
	}
}

// newSession opens the store and restores a session from it. A store that
// cannot be opened degrades to memory so the terminal stays usable.
func (app *App) newSession(ctx context.Context) (*terminal.Session, history.Store) {
	sp := display.NewSpinner("Loading history...")
	sp.Start()
	store, err := app.openStore(ctx)
	if err != nil {
		sp.Stop()
		display.ShowWarning(fmt.Sprintf("History unavailable, using memory: %v", err))
		store = history.NewMemoryStore()
		sp.Start()
	}

	sp.UpdateMessage("Restoring session...")
	session := terminal.NewSession(app.resolver,
		terminal.WithStore(store),
		terminal.WithLogger(app.logger),
		terminal.WithPrompt(app.cfg.Prompt),
		terminal.WithSuggestionLimit(app.cfg.SuggestionLimit))
	sp.Stop()
	return session, store
}

func (app *App) runTUI(ctx context.Context) error {
	session, store := app.newSession(ctx)
	defer store.Close()

	app.logger.Debug("Starting full-screen terminal", logging.Fields{"history": len(session.History())})
	return tui.Run(session, app.renderer)
}
