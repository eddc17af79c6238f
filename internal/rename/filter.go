package rename

import (
	"fmt"
	"regexp"

	"github.com/gobwas/glob"
	"github.com/mvp-joe/layerlint/internal/design"
)

// defaultName matches names the design tool assigns to new layers.
var defaultName = regexp.MustCompile(`^(Frame|Group|Rectangle|Ellipse|Vector|Line|Star|Polygon|Text|Component|Instance)\s*\d*$`)

// IsDefaultName reports whether name is an untouched tool default such as "Frame 12".
func IsDefaultName(name string) bool {
	return defaultName.MatchString(name)
}

// Filters select which collected layers a batch may touch.
type Filters struct {
	SkipLocked       bool
	SkipHidden       bool
	OnlyDefaultNames bool
	// Ignore holds glob patterns matched against a layer's slash-joined path
	// below its page, e.g. "Header/**" or "**/Logo".
	Ignore []string
}

// Filter is a compiled Filters.
type Filter struct {
	Filters
	ignore []glob.Glob
}

// NewFilter compiles the ignore patterns in f.
func NewFilter(f Filters) (*Filter, error) {
	compiled := make([]glob.Glob, 0, len(f.Ignore))
	for _, pattern := range f.Ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, g)
	}
	return &Filter{Filters: f, ignore: compiled}, nil
}

// ShouldSkip reports whether n is excluded by the filters. A nil Filter skips nothing.
func (f *Filter) ShouldSkip(n *design.Node) bool {
	if f == nil {
		return false
	}
	if f.SkipLocked && n.Locked {
		return true
	}
	if f.SkipHidden && !n.Visible {
		return true
	}
	if f.OnlyDefaultNames && !IsDefaultName(n.Name) {
		return true
	}
	if len(f.ignore) > 0 {
		path := n.Path()
		for _, g := range f.ignore {
			if g.Match(path) {
				return true
			}
		}
	}
	return false
}

// skipsState reports whether the locked/hidden filters exclude n.
func (f *Filter) skipsState(n *design.Node) bool {
	if f == nil {
		return false
	}
	return (f.SkipLocked && n.Locked) || (f.SkipHidden && !n.Visible)
}
