package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Diff(ctx context.Context, args []string) error
	Snapshot(ctx context.Context, args []string) error
	Restore(ctx context.Context, args []string) error
	Sync(ctx context.Context, args []string) error
	Queue(ctx context.Context) error
	SetToken(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the gitnotes CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands
//
//	help             — show available commands
//	list | l         — list documents
//	add              — create a document
//	show <id>        — print a document
//	edit <id>        — replace a document's content
//	delete <id>      — delete a document and its history
//	search <query>   — substring search over title, content and tags
//	history <id>     — list a document's snapshots
//	diff <ver>       — diff a snapshot against its predecessor
//	snapshot <id>    — take a manual snapshot (optional label)
//	restore <ver>    — restore a snapshot's content
//	sync <id>        — reconcile a document with GitHub now
//	queue            — drain the sync queue
//	settoken         — store the GitHub token (encrypted)
//	exit | quit      — leave the program
//
// Any errors returned by command handlers are printed here; handlers are
// free to print richer output themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		fmt.Printf("gitnotes %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, add, show, edit, delete, search, history, diff, snapshot, restore, sync, queue, settoken, exit")

		case "l", "list":
			err = a.List(ctx)

		case "add":
			err = a.Add(ctx)

		case "show":
			err = a.Show(ctx, args)

		case "edit":
			err = a.Edit(ctx, args)

		case "delete":
			err = a.Delete(ctx, args)

		case "search":
			err = a.Search(ctx, args)

		case "history":
			err = a.History(ctx, args)

		case "diff":
			err = a.Diff(ctx, args)

		case "snapshot":
			err = a.Snapshot(ctx, args)

		case "restore":
			err = a.Restore(ctx, args)

		case "sync":
			err = a.Sync(ctx, args)

		case "queue":
			err = a.Queue(ctx)

		case "settoken":
			err = a.SetToken(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
