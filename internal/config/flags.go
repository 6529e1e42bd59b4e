package config

import (
	"flag"
	"os"
	"time"

	"github.com/dsavelev/gitnotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local database file (default from Config)
//	-o string   GitHub repository owner
//	-r string   GitHub repository name
//	-b string   GitHub branch to sync with
//	-i int      auto-save debounce interval in seconds
//	-s int      background sync interval in seconds
//	-n int      retry ceiling for sync queue entries
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-o", "-r", "-b", "-i", "-s", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local database file")
	fs.StringVar(&cfg.Owner, "o", cfg.Owner, "GitHub repository owner")
	fs.StringVar(&cfg.Repo, "r", cfg.Repo, "GitHub repository name")
	fs.StringVar(&cfg.Branch, "b", cfg.Branch, "GitHub branch to sync with")
	autoSave := fs.Int("i", int(cfg.AutoSaveInterval.Seconds()), "auto-save debounce interval (in seconds)")
	syncEvery := fs.Int("s", int(cfg.SyncInterval.Seconds()), "background sync interval (in seconds)")
	fs.IntVar(&cfg.QueueMaxRetries, "n", cfg.QueueMaxRetries, "retry ceiling for sync queue entries")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AutoSaveInterval = time.Duration(*autoSave) * time.Second
	cfg.SyncInterval = time.Duration(*syncEvery) * time.Second
}
