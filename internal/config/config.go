package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dsavelev/gitnotes/internal/models"
)

// Config holds runtime settings for the gitnotes CLI.
//
// Fields:
//   - DBPath: location of the local SQLite database file.
//   - Owner, Repo, Branch: the GitHub repository documents sync to.
//   - AutoSaveInterval: debounce delay before an edit produces a snapshot.
//   - SyncInterval: how often the background worker drains the sync queue.
//   - QueueMaxRetries: failure count at which a queue entry is parked.
//   - Plan: snapshot retention and manual-snapshot entitlement.
type Config struct {
	DBPath           string
	Owner            string
	Repo             string
	Branch           string
	AutoSaveInterval time.Duration
	SyncInterval     time.Duration
	QueueMaxRetries  int
	Plan             models.Plan
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = defaultDBPath()
	c.Branch = "main"
	c.AutoSaveInterval = 30 * time.Second
	c.SyncInterval = 5 * time.Minute
	c.QueueMaxRetries = 5
	c.Plan = models.Plan{
		RetentionDays:   30,
		ManualSnapshots: true,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gitnotes.db"
	}
	return filepath.Join(dir, "gitnotes", "gitnotes.db")
}
