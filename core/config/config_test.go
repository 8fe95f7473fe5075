package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
	assert.Equal(t, 1, cfg.Import.ControllerCount)
	assert.Equal(t, "default", cfg.Import.Mode)
	assert.False(t, cfg.Import.DeleteUnused)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "IMPORT_CONTROLLER_COUNT=3\nIMPORT_RULES=DB10.* | *.X0\nIMPORT_COMPARE_ADDRESSES=true\nDATABASE_DRIVER=sqlite\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"IMPORT_CONTROLLER_COUNT", "IMPORT_RULES", "IMPORT_COMPARE_ADDRESSES", "DATABASE_DRIVER"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Import.ControllerCount)
	assert.Equal(t, "DB10.* | *.X0", cfg.Import.Rules)
	assert.True(t, cfg.Import.CompareAddresses)
	assert.Equal(t, "sqlite", cfg.Database.Driver)

	s := cfg.Import.Settings()
	assert.Equal(t, 3, s.ControllerCount)
	assert.True(t, s.CompareAddresses)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	file := "server:\n  port: \"9090\"\nimport:\n  controller_count: 2\n  controller_index: 1\n  mode: silent\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tag-manager.yaml"), []byte(file), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Import.ControllerCount)
	assert.Equal(t, 1, cfg.Import.ControllerIndex)
	assert.Equal(t, "silent", cfg.Import.Mode)
	// Untouched keys keep their defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tag-manager.yaml"), []byte("import:\n  mode: silent\n"), 0o600))
	t.Setenv("IMPORT_MODE", "default")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Import.Mode)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "unknown mode", file: "import:\n  mode: loud\n"},
		{name: "controller out of range", file: "import:\n  controller_count: 2\n  controller_index: 2\n"},
		{name: "unknown driver", file: "database:\n  driver: oracle\n"},
		{name: "malformed yaml", file: "import: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "tag-manager.yaml"), []byte(tt.file), 0o600))

			_, err := LoadConfig(dir)
			assert.Error(t, err)
		})
	}
}
