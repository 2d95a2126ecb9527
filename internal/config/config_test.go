package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().MaxFiles, cfg.MaxFiles)
	require.Equal(t, uint16(64), cfg.ThumbWidth)
	require.Equal(t, uint16(256), cfg.SmallWidth)
}

func TestLoadProjectConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	projectFile := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(projectFile, []byte(`{
		// project default capacity
		"max_files": 500,
	}`), 0o644))

	cfg, err := Load(LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, uint32(500), cfg.MaxFiles)
	require.Equal(t, projectFile, cfg.Sources.Project)
}

func TestLoadCLIOverrideWinsOverProjectConfig(t *testing.T) {
	dir := t.TempDir()
	projectFile := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(projectFile, []byte(`{"max_files": 500}`), 0o644))

	var override uint32 = 7
	cfg, err := Load(LoadInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
		Overrides:       Overrides{MaxFiles: &override},
	})
	require.NoError(t, err)
	require.Equal(t, uint32(7), cfg.MaxFiles)
}

func TestLoadRejectsOutOfRangeMaxFiles(t *testing.T) {
	dir := t.TempDir()
	var tooMany uint32 = 100_001
	_, err := Load(LoadInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
		Overrides:       Overrides{MaxFiles: &tooMany},
	})
	require.ErrorIs(t, err, ErrMaxFilesOutOfRange)
}

func TestLoadExplicitConfigPathMustExist(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(LoadInput{
		WorkDirOverride: dir,
		ConfigPath:      "missing.json",
		Env:             map[string]string{},
	})
	require.ErrorIs(t, err, ErrConfigFileNotFound)
}
