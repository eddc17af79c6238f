package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LAYERLINT_NAMING_CASING.
const EnvPrefix = "LAYERLINT"

// keys lists every setting that can be overridden from the environment.
var keys = []string{
	"naming.casing",
	"naming.convention",
	"filters.skip_locked",
	"filters.skip_hidden",
	"filters.only_default_names",
	"filters.ignore",
	"preferences.text_rename_content",
	"styles.local_file",
	"styles.endpoint",
	"styles.timeout_ms",
	"styles.cache_size",
	"storage.plans_dir",
	"watch.debounce_ms",
}

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → .env → environment variables
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (LAYERLINT_*)
// 2. A .env file in the root directory
// 3. Config file (.layerlint/config.yml or .layerlint/config.yaml)
// 4. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(l.rootDir, DirName))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		v.BindEnv(key)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := applyDotEnv(v, filepath.Join(l.rootDir, ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyDotEnv layers LAYERLINT_* values from a .env file above the config
// file. Variables already present in the process environment win.
func applyDotEnv(v *viper.Viper, path string) error {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, key := range keys {
		name := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		value, ok := values[name]
		if !ok {
			continue
		}
		if _, inEnv := os.LookupEnv(name); inEnv {
			continue
		}
		v.Set(key, value)
	}
	return nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("naming.casing", defaults.Naming.Casing)
	v.SetDefault("naming.convention", defaults.Naming.Convention)

	v.SetDefault("filters.skip_locked", defaults.Filters.SkipLocked)
	v.SetDefault("filters.skip_hidden", defaults.Filters.SkipHidden)
	v.SetDefault("filters.only_default_names", defaults.Filters.OnlyDefaultNames)
	v.SetDefault("filters.ignore", defaults.Filters.Ignore)

	v.SetDefault("preferences.text_rename_content", defaults.Preferences.TextRenameContent)

	v.SetDefault("styles.local_file", defaults.Styles.LocalFile)
	v.SetDefault("styles.endpoint", defaults.Styles.Endpoint)
	v.SetDefault("styles.timeout_ms", defaults.Styles.TimeoutMS)
	v.SetDefault("styles.cache_size", defaults.Styles.CacheSize)

	v.SetDefault("storage.plans_dir", defaults.Storage.PlansDir)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
}

// LoadConfig is a convenience function that loads config rooted at the
// current working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
