// Package cli provides the interactive gitnotes command-line client.
//
// It wires configuration, the local SQLite store, the GitHub client and an
// interactive REPL. Typical flow: evict expired snapshots, start the
// background sync worker, and execute user commands.
//
// Key features:
//   - Create / edit / delete / search documents
//   - Snapshot history with line diffs and restore
//   - Push / pull reconciliation with a GitHub repository
//   - Durable sync queue drained on demand or in the background
//   - GitHub token stored encrypted under a passphrase
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartSyncWorker, and runREPL for details.
package cli
