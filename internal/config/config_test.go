package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Raids)
	assert.Equal(t, 4, cfg.Foxes)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, "vossim.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.False(t, cfg.NeverPass)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VOSSIM_RAIDS", "7")
	t.Setenv("VOSSIM_FOXES", "6")
	t.Setenv("VOSSIM_SEED", "12345")
	t.Setenv("VOSSIM_LOG_JSON", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Raids)
	assert.Equal(t, 6, cfg.Foxes)
	assert.Equal(t, uint64(12345), cfg.Seed)
	assert.True(t, cfg.LogJSON)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("VOSSIM_RAIDS", "0")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("VOSSIM_RAIDS", "10")
	t.Setenv("VOSSIM_FOXES", "1")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("VOSSIM_FOXES", "4")
	t.Setenv("VOSSIM_DB_PATH", "")
	_, err = Load()
	require.Error(t, err)
}
