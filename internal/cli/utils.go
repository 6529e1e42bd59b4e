package cli

import (
	"io"
	"os"
)

// writer is where prompts go; a function so tests can capture output.
func writer() io.Writer {
	return os.Stdout
}

// argOrPrompt returns the first argument if present, otherwise prompts
// the user for it.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, writer())
}
