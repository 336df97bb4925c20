package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/quocvuong92/gitterm/internal/display"
	"github.com/quocvuong92/gitterm/internal/logging"
	"github.com/quocvuong92/gitterm/internal/terminal"
)

const msgCleared = "Terminal cleared"

// Words that end the line REPL; they never reach the session
var exitWords = map[string]bool{"exit": true, "quit": true}

// InteractiveSession connects the line REPL to a terminal session.
// printed counts the transcript entries already written to stdout.
type InteractiveSession struct {
	app      *App
	session  *terminal.Session
	out      io.Writer
	exitFlag bool
	printed  int
}

// completer offers the session's live suggestions for the whole line
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()

	s.session.SetInput(text)
	items := s.session.Suggestions()

	suggestions := make([]prompt.Suggest, 0, len(items))
	for _, item := range items {
		desc := ""
		if spec, ok := s.app.catalog.Lookup(item); ok {
			desc = spec.Description
		}
		suggestions = append(suggestions, prompt.Suggest{Text: item, Description: desc})
	}
	return suggestions, 0, endIndex
}

// runInteractive starts the line REPL. Completion follows the session's
// suggestions and the prompt's own history is seeded from the stored one.
func (app *App) runInteractive(ctx context.Context) error {
	session, store := app.newSession(ctx)
	defer store.Close()

	display.ShowContent("Git Command Terminal - Interactive Mode")
	display.ShowContent(fmt.Sprintf("Commands: %d │ Theme: %s", app.catalog.Count(), app.renderer.Theme().Name))
	display.ShowContent("Type a git command to learn how to use it, clear to reset, exit to quit")
	display.ShowContent(app.renderer.FormatTips() + "\n")

	s := &InteractiveSession{
		app:     app,
		session: session,
		out:     os.Stdout,
		printed: len(session.Entries()),
	}
	if s.printed > 0 {
		display.ShowContent(fmt.Sprintf("(%d entries restored from the last session)\n", s.printed))
	}

	p := prompt.New(
		s.executor,
		prompt.WithCompleter(s.completer),
		prompt.WithPrefix(session.Prompt()+" "),
		prompt.WithTitle("gitterm"),
		prompt.WithHistory(session.History()),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkGray),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Green),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkGray),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithSelectedDescriptionBGColor(prompt.Green),
		prompt.WithSelectedDescriptionTextColor(prompt.Black),
		prompt.WithScrollbarBGColor(prompt.DarkGray),
		prompt.WithScrollbarThumbColor(prompt.White),
		prompt.WithMaxSuggestion(15),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return s.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Println("\nGoodbye!")
				s.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Println("Goodbye!")
					s.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
	return nil
}

// executor submits each line and prints what it added to the transcript
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}
	if exitWords[strings.ToLower(strings.TrimSpace(input))] {
		fmt.Fprintln(s.out, "Goodbye!")
		s.exitFlag = true
		return
	}

	if terminal.IsReserved(input) {
		s.session.Submit(input)
		fmt.Fprintln(s.out, s.app.renderer.Styles().Muted.Render(msgCleared))
		s.printed = 0
		return
	}

	s.session.Submit(input)
	s.flush()
}

// flush writes the transcript entries added since the last flush
func (s *InteractiveSession) flush() {
	entries := s.session.Entries()
	if len(entries) <= s.printed {
		return
	}

	for _, e := range entries[s.printed:] {
		if e.Kind == terminal.KindCommand {
			// go-prompt already echoed the line
			continue
		}
		fmt.Fprintln(s.out, s.app.renderer.Entry(e))
	}
	s.printed = len(entries)

	if spec, ok := s.session.Current(); ok && len(spec.RelatedCommands) > 0 {
		fmt.Fprintln(s.out, s.app.renderer.Styles().Label.Render("Related:")+" "+
			s.app.renderer.Suggestions(spec.RelatedCommands, len(spec.RelatedCommands)))
	}
	fmt.Fprintln(s.out)

	s.app.logger.Debug("Line processed", logging.Fields{"entries": s.printed})
}
