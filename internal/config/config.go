// Package config loads layerlint settings from .layerlint/config.yml, a
// .env file and LAYERLINT_* environment variables.
package config

import (
	"path/filepath"
	"time"

	"github.com/mvp-joe/layerlint/internal/naming"
	"github.com/mvp-joe/layerlint/internal/rename"
)

// DirName is the per-project settings directory.
const DirName = ".layerlint"

// Config represents the complete layerlint configuration.
type Config struct {
	Naming      NamingConfig      `yaml:"naming" mapstructure:"naming"`
	Filters     FiltersConfig     `yaml:"filters" mapstructure:"filters"`
	Preferences PreferencesConfig `yaml:"preferences" mapstructure:"preferences"`
	Styles      StylesConfig      `yaml:"styles" mapstructure:"styles"`
	Storage     StorageConfig     `yaml:"storage" mapstructure:"storage"`
	Watch       WatchConfig       `yaml:"watch" mapstructure:"watch"`
}

// NamingConfig selects how names are generated.
type NamingConfig struct {
	Casing     string `yaml:"casing" mapstructure:"casing"`         // "kebab" or "pascal"
	Convention string `yaml:"convention" mapstructure:"convention"` // "atomic", "component", "semantic" or "handoff"
}

// FiltersConfig selects which layers a batch may touch.
type FiltersConfig struct {
	SkipLocked       bool     `yaml:"skip_locked" mapstructure:"skip_locked"`
	SkipHidden       bool     `yaml:"skip_hidden" mapstructure:"skip_hidden"`
	OnlyDefaultNames bool     `yaml:"only_default_names" mapstructure:"only_default_names"`
	Ignore           []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns over layer paths
}

// PreferencesConfig holds naming toggles.
type PreferencesConfig struct {
	TextRenameContent bool `yaml:"text_rename_content" mapstructure:"text_rename_content"`
}

// StylesConfig configures text-style resolution.
type StylesConfig struct {
	LocalFile string `yaml:"local_file" mapstructure:"local_file"` // JSON list of local styles
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`     // remote library base URL
	TimeoutMS int    `yaml:"timeout_ms" mapstructure:"timeout_ms"`
	CacheSize int    `yaml:"cache_size" mapstructure:"cache_size"`
}

// StorageConfig defines where plans are kept.
type StorageConfig struct {
	PlansDir string `yaml:"plans_dir" mapstructure:"plans_dir"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Naming: NamingConfig{
			Casing:     string(naming.CasingPascal),
			Convention: string(naming.ConventionAtomic),
		},
		Filters: FiltersConfig{
			Ignore: []string{},
		},
		Styles: StylesConfig{
			TimeoutMS: 3000,
			CacheSize: 1000,
		},
		Storage: StorageConfig{
			PlansDir: DirName,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}

// Casing returns the configured casing. Call after Validate.
func (c *Config) Casing() naming.Casing {
	casing, err := naming.ParseCasing(c.Naming.Casing)
	if err != nil {
		return naming.CasingPascal
	}
	return casing
}

// Convention returns the configured convention. Call after Validate.
func (c *Config) Convention() naming.Convention {
	conv, err := naming.ParseConvention(c.Naming.Convention)
	if err != nil {
		return naming.ConventionAtomic
	}
	return conv
}

// RenameFilters converts the filter section for the rename driver.
func (c *Config) RenameFilters() rename.Filters {
	return rename.Filters{
		SkipLocked:       c.Filters.SkipLocked,
		SkipHidden:       c.Filters.SkipHidden,
		OnlyDefaultNames: c.Filters.OnlyDefaultNames,
		Ignore:           c.Filters.Ignore,
	}
}

// StyleTimeout is the bounded wait for remote style lookups.
func (c *Config) StyleTimeout() time.Duration {
	return time.Duration(c.Styles.TimeoutMS) * time.Millisecond
}

// Debounce is the quiet period before watch mode re-runs.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// PlansPath resolves the plans directory against rootDir unless it is absolute.
func (c *Config) PlansPath(rootDir string) string {
	if filepath.IsAbs(c.Storage.PlansDir) {
		return c.Storage.PlansDir
	}
	return filepath.Join(rootDir, c.Storage.PlansDir)
}
