// Package cmd implements the CLI commands for gitterm.
//
// # Architecture
//
// This package is organized into the following logical groups:
//
// ## Core CLI
//
//   - root.go: Main entry point, App struct, cobra command setup, flags,
//     one-shot lookup and history store wiring
//   - commands.go: Catalog and maintenance subcommands (list, search, random,
//     history, themes, config)
//
// ## Interactive Modes
//
//   - interactive.go: Line REPL on go-prompt; completion comes from the
//     session's live suggestions
//   - The full-screen terminal lives in internal/tui and is started by runTUI
//
// # Key Components
//
// ## App
//
// The App struct holds the validated configuration and the shared catalog,
// resolver and renderer. It's created in Execute() and set up once by the
// root command's PersistentPreRunE.
//
// ## InteractiveSession
//
// Wraps a terminal.Session for the line REPL:
//   - Submits each line and prints only the entries it added
//   - Notices a reset transcript after "clear"
//   - exit, quit, Ctrl+C and Ctrl+D end the loop
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
