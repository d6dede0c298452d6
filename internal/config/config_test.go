package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "2020-12-31", cfg.Data.CurrentDate)
	assert.Equal(t, ".", cfg.Data.Dir)
	assert.Equal(t, 3, cfg.Resolver.Suggestions)
	assert.Equal(t, 4, cfg.Export.Workers)
	assert.Equal(t, 2*time.Minute, cfg.Export.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("ROADTRIP_BORDERS", "/data/borders.txt")
	t.Setenv("ROADTRIP_CURRENT_DATE", "2016-12-31")
	t.Setenv("EXPORT_WORKERS", "8")
	t.Setenv("EXPORT_TIMEOUT", "30s")
	t.Setenv("LOG_INCLUDE_CALLER", "true")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "/data/borders.txt", cfg.Data.Borders)
	assert.Equal(t, "2016-12-31", cfg.Data.CurrentDate)
	assert.Equal(t, 8, cfg.Export.Workers)
	assert.Equal(t, 30*time.Second, cfg.Export.Timeout)
	assert.True(t, cfg.Logging.IncludeCaller)
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("GRAPH_URI", "")
	path := filepath.Join(t.TempDir(), "roadtrip.env")
	require.NoError(t, os.WriteFile(path, []byte("ROADTRIP_OVERRIDES=/etc/roadtrip/overrides.yaml\nGRAPH_DATABASE=countries\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("ROADTRIP_OVERRIDES")
		os.Unsetenv("GRAPH_DATABASE")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/roadtrip/overrides.yaml", cfg.Resolver.OverridesPath)
	assert.Equal(t, "countries", cfg.Graph.Database)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("ROADTRIP_CURRENT_DATE", "yesterday")
	_, err := Load(missingEnvFile(t))
	assert.Error(t, err)

	t.Setenv("ROADTRIP_CURRENT_DATE", "2020-12-31")
	t.Setenv("EXPORT_TIMEOUT", "soon")
	_, err = Load(missingEnvFile(t))
	assert.Error(t, err)

	t.Setenv("EXPORT_TIMEOUT", "")
	t.Setenv("ROADTRIP_SUGGESTIONS", "-1")
	_, err = Load(missingEnvFile(t))
	assert.Error(t, err)
}
