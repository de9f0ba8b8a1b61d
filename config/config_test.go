package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetForTest clears key for the duration of the test, restoring it afterwards.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsToClassicPreset(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, galaxy.VariantClassic, cfg.Variant)
	assert.Equal(t, galaxy.PresetClassic(), cfg.Params)
	assert.Equal(t, WindowConfig{Width: 1280, Height: 720, Title: "Galaxy", VSync: true}, cfg.Window)
	assert.Zero(t, cfg.Seed)
	assert.Zero(t, cfg.Workers)
	assert.False(t, cfg.Profile)
}

func TestLoadVariantSelectsPreset(t *testing.T) {
	t.Setenv("GALAXY_VARIANT", "colored")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, galaxy.VariantColored, cfg.Variant)
	assert.Equal(t, galaxy.PresetColored(), cfg.Params)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GALAXY_COUNT", "2500")
	t.Setenv("GALAXY_INSIDE_COLOR", "#ffffff")
	t.Setenv("GALAXY_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2500, cfg.Params.Count)
	assert.Equal(t, "#ffffff", cfg.Params.InsideColor.Hex())
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeFile(t, "galaxy.yaml", "variant: colored\nbranches: 5\nspin: -2.5\nwidth: 800\n")

	cfg, err := Load(WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, galaxy.VariantColored, cfg.Variant)
	assert.Equal(t, 5, cfg.Params.Branches)
	assert.Equal(t, float32(-2.5), cfg.Params.Spin)
	assert.Equal(t, 100000, cfg.Params.Count)
	assert.Equal(t, 800, cfg.Window.Width)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoadFlagsBeatEnv(t *testing.T) {
	t.Setenv("GALAXY_SPIN", "3")
	t.Setenv("GALAXY_RADIUS", "7")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--spin=2", "--profile"}))

	cfg, err := Load(WithFlags(fs))
	require.NoError(t, err)
	assert.Equal(t, float32(2), cfg.Params.Spin)
	assert.Equal(t, float32(7), cfg.Params.Radius)
	assert.True(t, cfg.Profile)
}

func TestLoadEnvFile(t *testing.T) {
	unsetForTest(t, "GALAXY_RADIUS")
	path := writeFile(t, ".env", "GALAXY_RADIUS=9\n")

	cfg, err := Load(WithEnvFiles(filepath.Join(t.TempDir(), "absent.env"), path))
	require.NoError(t, err)
	assert.Equal(t, float32(9), cfg.Params.Radius)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"variant", "GALAXY_VARIANT", "spiral"},
		{"color", "GALAXY_COLOR", "not-a-color"},
		{"branches", "GALAXY_BRANCHES", "0"},
		{"size", "GALAXY_SIZE", "0"},
		{"window", "GALAXY_WIDTH", "-1"},
		{"workers", "GALAXY_WORKERS", "-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestBranchesErrorWrapsGalaxyError(t *testing.T) {
	t.Setenv("GALAXY_BRANCHES", "0")
	_, err := Load()
	assert.ErrorIs(t, err, galaxy.ErrInvalidParameter)
}
