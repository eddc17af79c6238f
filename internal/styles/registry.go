// Package styles resolves text style IDs to display names, first from the
// locally known styles and then from a remote library with a bounded wait.
package styles

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/maypok86/otter"
)

const (
	// DefaultTimeout bounds a single remote style import.
	DefaultTimeout = 3 * time.Second
	// DefaultCacheSize is the number of remote styles kept in memory.
	DefaultCacheSize = 1000
)

// Style is a named text style.
type Style struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Importer fetches a library style by its key.
type Importer interface {
	ImportStyleByKey(ctx context.Context, key string) (*Style, error)
}

// styleKey extracts the library key from IDs shaped like "S:<key>,<node>".
var styleKey = regexp.MustCompile(`^S:([^,]+)`)

// Registry resolves text style IDs. It is safe for concurrent use.
type Registry struct {
	local    map[string]Style
	importer Importer
	timeout  time.Duration
	verbose  bool

	remote otter.Cache[string, Style]
}

// Option configures a Registry.
type Option func(*Registry)

// WithLocalStyles registers styles that resolve without a remote lookup.
func WithLocalStyles(styles []Style) Option {
	return func(r *Registry) {
		for _, s := range styles {
			if s.ID != "" {
				r.local[s.ID] = s
			}
		}
	}
}

// WithImporter enables remote resolution through imp.
func WithImporter(imp Importer) Option {
	return func(r *Registry) { r.importer = imp }
}

// WithTimeout bounds each remote import.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithVerbose logs remote lookups that fail or time out.
func WithVerbose(v bool) Option {
	return func(r *Registry) { r.verbose = v }
}

// NewRegistry creates a Registry whose remote hits are cached up to cacheSize entries.
func NewRegistry(cacheSize int, opts ...Option) (*Registry, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := otter.MustBuilder[string, Style](cacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build style cache: %w", err)
	}

	r := &Registry{
		local:   make(map[string]Style),
		timeout: DefaultTimeout,
		remote:  cache,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ResolveTextStyle returns the name of the style referenced by id. Local
// styles win; otherwise the library key is imported remotely. Errors and
// timeouts are reported as not found.
func (r *Registry) ResolveTextStyle(ctx context.Context, id string) (string, bool) {
	if s, ok := r.local[id]; ok && s.Name != "" {
		return s.Name, true
	}

	m := styleKey.FindStringSubmatch(id)
	if m == nil || m[1] == "" {
		return "", false
	}
	key := m[1]

	if s, ok := r.remote.Get(key); ok {
		return s.Name, true
	}
	if r.importer == nil {
		return "", false
	}

	style, ok, err := firstOrDeadline(ctx, r.timeout, func(ctx context.Context) (*Style, error) {
		return r.importer.ImportStyleByKey(ctx, key)
	})
	if err != nil {
		if r.verbose {
			log.Printf("Warning: failed to import style %s: %v", key, err)
		}
		return "", false
	}
	if !ok {
		if r.verbose {
			log.Printf("Warning: importing style %s timed out after %s", key, r.timeout)
		}
		return "", false
	}
	if style == nil || style.Name == "" {
		return "", false
	}

	r.remote.Set(key, *style)
	return style.Name, true
}

// Close releases the remote cache.
func (r *Registry) Close() {
	r.remote.Close()
}

// LoadLocalStyles reads a JSON array of styles from path.
func LoadLocalStyles(path string) ([]Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read styles file: %w", err)
	}
	var styles []Style
	if err := json.Unmarshal(data, &styles); err != nil {
		return nil, fmt.Errorf("failed to parse styles file %s: %w", path, err)
	}
	return styles, nil
}
