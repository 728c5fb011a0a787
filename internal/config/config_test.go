package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/tmp/project")
	assert.Equal(t, "/tmp/project", cfg.Root)
	assert.Equal(t, "openapi.json", cfg.Output)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.False(t, cfg.AIEnabled)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routelens.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"title": "Billing API",
		"ai_enabled": true,
		"frameworks": ["express"],
		"max_files": 50
	}`), 0644))

	cfg := Default(".")
	require.NoError(t, Load(path, &cfg))

	assert.Equal(t, "Billing API", cfg.Title)
	assert.True(t, cfg.AIEnabled)
	assert.Equal(t, []string{"express"}, cfg.Frameworks)
	assert.Equal(t, 50, cfg.MaxFiles)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "openapi.json", cfg.Output)
}

func TestLoadErrors(t *testing.T) {
	cfg := Default(".")
	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.json"), &cfg))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	assert.Error(t, Load(bad, &cfg))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	valid := Default(dir)
	assert.NoError(t, valid.Validate())

	missing := Default(filepath.Join(dir, "nope"))
	assert.ErrorIs(t, missing.Validate(), ErrInvalidRoot)

	file := filepath.Join(dir, "file.js")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	notDir := Default(file)
	assert.ErrorIs(t, notDir.Validate(), ErrInvalidRoot)

	badFormat := Default(dir)
	badFormat.OutputFormat = "xml"
	assert.Error(t, badFormat.Validate())

	yaml := Default(dir)
	yaml.OutputFormat = "yaml"
	assert.NoError(t, yaml.Validate())
}
