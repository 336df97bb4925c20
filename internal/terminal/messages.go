package terminal

// User-facing transcript text
const (
	DefaultPrompt = "$"

	// ReservedClear is intercepted by Submit before resolution
	ReservedClear = "clear"

	LabelCommand     = "Command"
	LabelDescription = "Description"
	LabelUsage       = "Usage"
	LabelExamples    = "Examples"

	MsgCommandNotFound  = "Command not found"
	MsgTryTheseCommands = "Try one of these commands:"
	MsgCommonCommands   = "git init, git add, git commit, git push, git pull, git status, git log, git branch"
	MsgDidYouMean       = "Did you mean:"

	// indent prefixes list items such as examples and suggestions
	indent = "  "
)
