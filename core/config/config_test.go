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
	assert.Equal(t, "file", cfg.Settings.Backend)
	assert.Equal(t, "RetroPass.xml", cfg.Volume.DocumentName)
	assert.Equal(t, 8, cfg.Volume.MarkerDepth)
	assert.True(t, cfg.Volume.Watch)
	assert.Contains(t, cfg.Volume.MountPrefixes, "/media/")
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "SERVER_PORT=9090\nVOLUME_ROOTS=/srv/a,/srv/b\nSETTINGS_BACKEND=database\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("VOLUME_ROOTS")
		os.Unsetenv("SETTINGS_BACKEND")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"/srv/a", "/srv/b"}, cfg.Volume.Roots)
	assert.Equal(t, "database", cfg.Settings.Backend)
}
