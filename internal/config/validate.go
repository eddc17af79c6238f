package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/mvp-joe/layerlint/internal/naming"
)

var (
	// ErrInvalidCasing indicates an unsupported casing
	ErrInvalidCasing = errors.New("invalid casing")

	// ErrInvalidConvention indicates an unsupported naming convention
	ErrInvalidConvention = errors.New("invalid convention")

	// ErrInvalidPattern indicates an ignore pattern that does not compile
	ErrInvalidPattern = errors.New("invalid ignore pattern")

	// ErrInvalidTimeout indicates a non-positive style lookup timeout
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidCacheSize indicates a non-positive style cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrEmptyPlansDir indicates a missing plans directory
	ErrEmptyPlansDir = errors.New("empty plans directory")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateNaming(&cfg.Naming); err != nil {
		errs = append(errs, err)
	}
	if err := validateFilters(&cfg.Filters); err != nil {
		errs = append(errs, err)
	}
	if err := validateStyles(&cfg.Styles); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(cfg.Storage.PlansDir) == "" {
		errs = append(errs, fmt.Errorf("%w: storage.plans_dir is required", ErrEmptyPlansDir))
	}
	if cfg.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: watch.debounce_ms cannot be negative, got %d", ErrInvalidTimeout, cfg.Watch.DebounceMS))
	}

	return joinErrors(errs)
}

func validateNaming(cfg *NamingConfig) error {
	var errs []error

	if _, err := naming.ParseCasing(cfg.Casing); err != nil {
		errs = append(errs, fmt.Errorf("%w: must be 'kebab' or 'pascal', got '%s'", ErrInvalidCasing, cfg.Casing))
	}
	if _, err := naming.ParseConvention(cfg.Convention); err != nil {
		errs = append(errs, fmt.Errorf("%w: must be one of atomic, component, semantic, handoff, got '%s'", ErrInvalidConvention, cfg.Convention))
	}

	return joinErrors(errs)
}

func validateFilters(cfg *FiltersConfig) error {
	var errs []error

	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	return joinErrors(errs)
}

func validateStyles(cfg *StylesConfig) error {
	var errs []error

	if cfg.TimeoutMS <= 0 {
		errs = append(errs, fmt.Errorf("%w: styles.timeout_ms must be positive, got %d", ErrInvalidTimeout, cfg.TimeoutMS))
	}
	if cfg.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: styles.cache_size must be positive, got %d", ErrInvalidCacheSize, cfg.CacheSize))
	}

	return joinErrors(errs)
}

// joinErrors combines multiple errors into one that still matches each
// sentinel with errors.Is.
func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return &validationError{errs: errs}
}

type validationError struct {
	errs []error
}

func (e *validationError) Error() string {
	msgs := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e *validationError) Unwrap() []error {
	return e.errs
}
