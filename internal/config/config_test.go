package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.DBPath, cfg.DBPath)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
}

func TestLoadFromMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	project := filepath.Join(dir, "project.yaml")
	writeFile(t, global, "db_path: /tmp/global.db\ntheme: dark\nlog:\n  level: info\n")
	writeFile(t, project, "theme: forest\ntimezone: UTC\n")

	cfg, err := LoadFrom(global, project)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/global.db", cfg.DBPath)
	assert.Equal(t, "forest", cfg.Theme)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "info", cfg.Log.Level)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "db_path: /tmp/file.db\n")
	t.Setenv("LIFEPLANNER_DB_PATH", "/tmp/env.db")
	t.Setenv("LIFEPLANNER_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromRejectsUnknownTimezone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "timezone: Mars/Olympus_Mons\n")
	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestLoadFromExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "db_path: ~/planner/data.db\n")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "planner", "data.db"), cfg.DBPath)
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), Dir, "config.yaml")
	in := Default()
	in.Theme = "dark"
	in.Timezone = "UTC"
	in.Log.File = "/tmp/lp.log"

	require.NoError(t, Write(path, in, false))
	assert.Error(t, Write(path, in, false), "second write without force must fail")
	require.NoError(t, Write(path, in, true))

	out, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
