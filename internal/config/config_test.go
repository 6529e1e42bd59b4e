package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsavelev/gitnotes/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.NotEmpty(t, c.DBPath)
	assert.Equal(t, "main", c.Branch)
	assert.Equal(t, 30*time.Second, c.AutoSaveInterval)
	assert.Equal(t, 5*time.Minute, c.SyncInterval)
	assert.Equal(t, 5, c.QueueMaxRetries)
	assert.Equal(t, models.Plan{RetentionDays: 30, ManualSnapshots: true}, c.Plan)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, 30*time.Second, cfg.AutoSaveInterval)
}
