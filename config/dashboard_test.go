package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDashboardMissing(t *testing.T) {
	d, err := LoadDashboard(filepath.Join(t.TempDir(), "dashboard_config.json"))
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestDashboardRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_config.json")

	require.NoError(t, UpdateDashboard(path, Dashboard{"spot": 101.5}))
	require.NoError(t, UpdateDashboard(path, Dashboard{"model": "Heston"}))

	d, err := LoadDashboard(path)
	require.NoError(t, err)
	assert.Equal(t, 101.5, d.Float("spot", 0))
	assert.Equal(t, "Heston", d.String("model", ""))
	assert.Equal(t, 7.0, d.Float("strike", 7))
	assert.Equal(t, "x", d.String("spot", "x"))
}

func TestLoadDashboardCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadDashboard(path)
	assert.Error(t, err)
	assert.Error(t, UpdateDashboard(path, Dashboard{"spot": 1.0}))
}
