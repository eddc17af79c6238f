package naming

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/layerlint/internal/design"
)

// Convention selects the vocabulary names are generated in.
type Convention string

const (
	// ConventionAtomic keeps the hierarchical base name (Item, Container, ...).
	ConventionAtomic Convention = "atomic"
	// ConventionComponent produces "Group / Variant" slash names.
	ConventionComponent Convention = "component"
	// ConventionSemantic detects UI patterns (btn, card, badge, ...).
	ConventionSemantic Convention = "semantic"
	// ConventionHandoff produces HTML-like "kind/name" paths.
	ConventionHandoff Convention = "handoff"
)

// Conventions lists every supported convention in presentation order.
var Conventions = []Convention{ConventionAtomic, ConventionComponent, ConventionSemantic, ConventionHandoff}

// Valid reports whether c is a supported convention.
func (c Convention) Valid() bool {
	for _, known := range Conventions {
		if c == known {
			return true
		}
	}
	return false
}

// ParseConvention converts a config or flag value into a Convention.
func ParseConvention(s string) (Convention, error) {
	c := Convention(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown convention %q (want atomic, component, semantic or handoff)", s)
	}
	return c, nil
}

// strategy maps a node and its base name to the final name.
type strategy func(n *design.Node, base string) string

func (c Convention) strategy() strategy {
	switch c {
	case ConventionComponent:
		return func(_ *design.Node, base string) string { return ToComponent(base) }
	case ConventionSemantic:
		return ToSemantic
	case ConventionHandoff:
		return ToHandoff
	default:
		return func(_ *design.Node, base string) string { return base }
	}
}
