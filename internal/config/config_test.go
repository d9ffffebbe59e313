package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	settings, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultDataPath, settings.Data.Path)
	assert.Equal(t, DefaultModelPath, settings.Model.Path)
	assert.Equal(t, DefaultTeamPath, settings.Team.Path)
	assert.Equal(t, "warn", settings.Log.Level)
	assert.Equal(t, 100, settings.Train.NTrees)
	assert.Equal(t, int64(42), settings.Train.Seed)
	assert.InDelta(t, 0.2, settings.Train.TestSize, 1e-9)
	assert.Equal(t, 0, settings.Train.CVFolds)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
data:
  path: /tmp/dex.csv
train:
  n_trees: 25
  cv_folds: 3
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/dex.csv", settings.Data.Path)
	assert.Equal(t, DefaultTeamPath, settings.Team.Path)
	assert.Equal(t, 25, settings.Train.NTrees)
	assert.Equal(t, 3, settings.Train.CVFolds)
	assert.Equal(t, "debug", settings.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEGENDARY_TEAM_PATH", "elsewhere/team.json")

	settings, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "elsewhere/team.json", settings.Team.Path)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	settings, err := Load(New(), "")
	require.NoError(t, err)

	bad := *settings
	bad.Train.TestSize = 1.5
	assert.Error(t, bad.Validate())

	bad = *settings
	bad.Train.CVFolds = 1
	assert.Error(t, bad.Validate())

	bad = *settings
	bad.Team.Path = ""
	assert.Error(t, bad.Validate())
}
