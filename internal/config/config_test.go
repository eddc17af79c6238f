package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mvp-joe/layerlint/internal/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns a valid configuration with the documented defaults
// - Load() uses defaults when no config file exists
// - Load() reads .layerlint/config.yml and .layerlint/config.yaml
// - Load() merges a partial config file with defaults
// - .env values override the config file; real environment variables override both
// - Load() returns an error for malformed YAML and for invalid values
// - Validate() rejects bad casing, convention, ignore patterns, timeouts and cache sizes
// - Validate() reports every problem and each still matches its sentinel
// - Accessors convert settings into naming and rename types

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, DirName)
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, name), []byte(content), 0644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "pascal", cfg.Naming.Casing)
	assert.Equal(t, "atomic", cfg.Naming.Convention)
	assert.False(t, cfg.Filters.SkipLocked)
	assert.False(t, cfg.Filters.SkipHidden)
	assert.False(t, cfg.Filters.OnlyDefaultNames)
	assert.Empty(t, cfg.Filters.Ignore)
	assert.False(t, cfg.Preferences.TextRenameContent)
	assert.Equal(t, 3000, cfg.Styles.TimeoutMS)
	assert.Equal(t, 1000, cfg.Styles.CacheSize)
	assert.Equal(t, ".layerlint", cfg.Storage.PlansDir)
	assert.Equal(t, 500, cfg.Watch.DebounceMS)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Naming, cfg.Naming)
	assert.Equal(t, defaults.Styles, cfg.Styles)
	assert.Equal(t, defaults.Storage, cfg.Storage)
	assert.Equal(t, defaults.Watch, cfg.Watch)
	assert.Empty(t, cfg.Filters.Ignore)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	for _, name := range []string{"config.yml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, name, `
naming:
  casing: kebab
  convention: handoff
filters:
  skip_locked: true
  ignore:
    - "Header/**"
    - "**/Logo"
preferences:
  text_rename_content: true
styles:
  endpoint: https://styles.example.com
  timeout_ms: 1500
`)
			cfg, err := NewLoader(dir).Load()
			require.NoError(t, err)

			assert.Equal(t, "kebab", cfg.Naming.Casing)
			assert.Equal(t, "handoff", cfg.Naming.Convention)
			assert.True(t, cfg.Filters.SkipLocked)
			assert.False(t, cfg.Filters.SkipHidden)
			assert.Equal(t, []string{"Header/**", "**/Logo"}, cfg.Filters.Ignore)
			assert.True(t, cfg.Preferences.TextRenameContent)
			assert.Equal(t, "https://styles.example.com", cfg.Styles.Endpoint)
			assert.Equal(t, 1500, cfg.Styles.TimeoutMS)
			// Untouched sections keep their defaults.
			assert.Equal(t, 1000, cfg.Styles.CacheSize)
			assert.Equal(t, ".layerlint", cfg.Storage.PlansDir)
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yml", "naming:\n  casing: kebab\n  convention: semantic\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LAYERLINT_NAMING_CONVENTION=component\nLAYERLINT_NAMING_CASING=kebab\nLAYERLINT_STYLES_CACHE_SIZE=50\nUNRELATED=1\n"), 0644))

	t.Setenv("LAYERLINT_NAMING_CASING", "pascal")
	t.Setenv("LAYERLINT_FILTERS_SKIP_HIDDEN", "true")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "pascal", cfg.Naming.Casing, "process env beats .env")
	assert.Equal(t, "component", cfg.Naming.Convention, ".env beats config file")
	assert.Equal(t, 50, cfg.Styles.CacheSize)
	assert.True(t, cfg.Filters.SkipHidden)
}

func TestLoad_ReturnsErrorForMalformedYaml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yml", "naming: [unclosed\n")

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_ReturnsErrorForInvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yml", "naming:\n  casing: snake\n")

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCasing)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_RejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"casing", func(c *Config) { c.Naming.Casing = "camel" }, ErrInvalidCasing},
		{"convention", func(c *Config) { c.Naming.Convention = "bem" }, ErrInvalidConvention},
		{"pattern", func(c *Config) { c.Filters.Ignore = []string{"[oops"} }, ErrInvalidPattern},
		{"zero timeout", func(c *Config) { c.Styles.TimeoutMS = 0 }, ErrInvalidTimeout},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, ErrInvalidTimeout},
		{"cache size", func(c *Config) { c.Styles.CacheSize = -5 }, ErrInvalidCacheSize},
		{"plans dir", func(c *Config) { c.Storage.PlansDir = " " }, ErrEmptyPlansDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.want)
		})
	}
}

func TestValidate_ReturnsMultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Naming.Casing = "camel"
	cfg.Naming.Convention = "bem"
	cfg.Styles.CacheSize = 0

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.ErrorIs(t, err, ErrInvalidCasing)
	assert.ErrorIs(t, err, ErrInvalidConvention)
	assert.ErrorIs(t, err, ErrInvalidCacheSize)
}

func TestConfig_Accessors(t *testing.T) {
	cfg := Default()
	cfg.Naming.Casing = "Kebab"
	cfg.Naming.Convention = "semantic"
	cfg.Filters.SkipLocked = true
	cfg.Filters.Ignore = []string{"**/Logo"}

	assert.Equal(t, naming.CasingKebab, cfg.Casing())
	assert.Equal(t, naming.ConventionSemantic, cfg.Convention())
	assert.True(t, cfg.RenameFilters().SkipLocked)
	assert.Equal(t, []string{"**/Logo"}, cfg.RenameFilters().Ignore)
	assert.Equal(t, 3*time.Second, cfg.StyleTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
	assert.Equal(t, filepath.Join("/work", ".layerlint"), cfg.PlansPath("/work"))

	cfg.Storage.PlansDir = "/var/plans"
	assert.Equal(t, "/var/plans", cfg.PlansPath("/work"))
}
