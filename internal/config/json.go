package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dsavelev/gitnotes/internal/flagx"
	"github.com/dsavelev/gitnotes/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "30s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DBPath           string         `json:"db_path"`
	Owner            string         `json:"owner"`
	Repo             string         `json:"repo"`
	Branch           string         `json:"branch"`
	AutoSaveInterval timex.Duration `json:"auto_save_interval"`
	SyncInterval     timex.Duration `json:"sync_interval"`
	QueueMaxRetries  int            `json:"queue_max_retries"`
	RetentionDays    *int           `json:"retention_days"`
	ManualSnapshots  *bool          `json:"manual_snapshots"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Fields absent from the JSON keep their earlier values, so a partial
// file only overrides what it names. Panics on read or unmarshal errors
// (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.Owner != "" {
		cfg.Owner = jc.Owner
	}
	if jc.Repo != "" {
		cfg.Repo = jc.Repo
	}
	if jc.Branch != "" {
		cfg.Branch = jc.Branch
	}
	if jc.AutoSaveInterval.Duration != 0 {
		cfg.AutoSaveInterval = time.Duration(jc.AutoSaveInterval.Duration)
	}
	if jc.SyncInterval.Duration != 0 {
		cfg.SyncInterval = time.Duration(jc.SyncInterval.Duration)
	}
	if jc.QueueMaxRetries != 0 {
		cfg.QueueMaxRetries = jc.QueueMaxRetries
	}
	if jc.RetentionDays != nil {
		cfg.Plan.RetentionDays = *jc.RetentionDays
	}
	if jc.ManualSnapshots != nil {
		cfg.Plan.ManualSnapshots = *jc.ManualSnapshots
	}
}
