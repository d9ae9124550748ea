package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
username: octocat
theme: dark
source: gcal
calendar_ids: [primary, team@example.com]
workers: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "octocat", cfg.Username)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, SourceGCal, cfg.Source)
	assert.Equal(t, []string{"primary", "team@example.com"}, cfg.CalendarIDs)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown source", "source: gitlab\n"},
		{"negative workers", "workers: -2\n"},
		{"bad log level", "log_level: loud\n"},
		{"empty output", "output: \"\"\n"},
		{"malformed yaml", "username: [unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDirUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", AppName), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)
}
