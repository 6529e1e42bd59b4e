// Package config loads runtime configuration for the gitnotes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the local database file
//	-o string   GitHub repository owner
//	-r string   GitHub repository name
//	-b string   GitHub branch to sync with
//	-i int      auto-save debounce interval (seconds)
//	-s int      background sync interval (seconds)
//	-n int      retry ceiling for sync queue entries
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "db_path": "/home/me/.config/gitnotes/gitnotes.db",
//	  "owner": "octocat",
//	  "repo": "notes",
//	  "branch": "main",
//	  "auto_save_interval": "30s",
//	  "sync_interval": "5m",
//	  "queue_max_retries": 5,
//	  "retention_days": 30,
//	  "manual_snapshots": true
//	}
//
// retention_days of -1 keeps snapshots forever.
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values. The GitHub token is never part of
// the configuration; it lives encrypted in the local database.
package config
