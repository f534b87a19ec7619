package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"export_dir: /tmp/notas\nlog_level: debug\nmax_displayed_errors: 10\n",
	), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/notas", s.ExportDir)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 10, s.MaxDisplayedErrors)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, "text", s.LogFormat)
	assert.Equal(t, "nfse_{kind}_{timestamp}", s.OutputNameFormat)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad log level", "log_level: loud\n"},
		{"bad log format", "log_format: xml\n"},
		{"negative error cap", "max_displayed_errors: -1\n"},
		{"empty export dir", "export_dir: \"\"\n"},
		{"broken yaml", "log_level: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
