package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if loc, err := a.location(context.Background()); err == nil {
		s = loc.Owner + "/" + loc.Repo
	}
	if a.isUnlocked() {
		s += " unlocked"
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", s)
	}
	return s
}

// Root runs the interactive loop until EOF or exit.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to gitnotes (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
