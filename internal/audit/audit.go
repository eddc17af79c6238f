// Package audit reports layer hygiene problems in a design document without
// changing it: hidden, locked and default-named layers, empty frames,
// single-child wrappers, deep nesting and a quality score.
package audit

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/naming"
)

// DeepNestingLevel is the depth below a scanned root past which a layer
// counts as deeply nested.
const DeepNestingLevel = 4

var (
	// ErrNoSelection indicates an audit with nothing to scan.
	ErrNoSelection = errors.New("no layers selected")

	// ErrUnknownCheck indicates a check name Select does not know.
	ErrUnknownCheck = errors.New("unknown check")
)

// unnamed matches tool default names with a number, e.g. "Frame 12".
var unnamed = regexp.MustCompile(`(?i)^(Frame|Group|Rectangle|Ellipse|Line|Vector|Polygon|Star|Component|Image|Text|Section)\s+\d+$`)

// Check names one per-layer condition reported by Scan.
type Check string

const (
	CheckHidden       Check = "hidden"
	CheckLocked       Check = "locked"
	CheckUnnamed      Check = "unnamed"
	CheckEmpty        Check = "empty"
	CheckDeeplyNested Check = "deeply-nested"
)

// Checks lists every check in report order.
var Checks = []Check{CheckHidden, CheckLocked, CheckUnnamed, CheckEmpty, CheckDeeplyNested}

// ParseCheck converts a user-supplied check name.
func ParseCheck(s string) (Check, error) {
	c := Check(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Checks {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of hidden, locked, unnamed, empty, deeply-nested)", ErrUnknownCheck, s)
}

// Stats counts the layers below the scanned roots matching each check.
type Stats struct {
	Total        int `json:"total"`
	Hidden       int `json:"hidden"`
	Locked       int `json:"locked"`
	Unnamed      int `json:"unnamed"`
	Empty        int `json:"empty"`
	DeeplyNested int `json:"deeplyNested"`
}

func isContainer(n *design.Node) bool {
	return n.Kind == design.KindFrame || n.Kind == design.KindGroup
}

func (c Check) matches(n *design.Node, depth int) bool {
	switch c {
	case CheckHidden:
		return !n.Visible
	case CheckLocked:
		return n.Locked
	case CheckUnnamed:
		return unnamed.MatchString(n.Name)
	case CheckEmpty:
		return isContainer(n) && len(n.Children) == 0
	case CheckDeeplyNested:
		return depth > DeepNestingLevel
	}
	return false
}

type entry struct {
	node  *design.Node
	depth int
}

// walkBelow visits every descendant of roots with its depth (children of a
// root are at depth 1). Component, component set and instance internals are
// not entered.
func walkBelow(roots []*design.Node, fn func(n *design.Node, depth int)) {
	for _, root := range roots {
		stack := []entry{{node: root}}
		for len(stack) > 0 {
			e := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if e.depth > 0 {
				fn(e.node, e.depth)
			}
			if e.node.Kind.IsComponentKind() {
				continue
			}
			for i := len(e.node.Children) - 1; i >= 0; i-- {
				stack = append(stack, entry{node: e.node.Children[i], depth: e.depth + 1})
			}
		}
	}
}

// Scan counts the layers below roots by check. The roots themselves are not
// counted.
func Scan(roots []*design.Node) Stats {
	var s Stats
	walkBelow(roots, func(n *design.Node, depth int) {
		s.Total++
		if CheckHidden.matches(n, depth) {
			s.Hidden++
		}
		if CheckLocked.matches(n, depth) {
			s.Locked++
		}
		if CheckUnnamed.matches(n, depth) {
			s.Unnamed++
		}
		if CheckEmpty.matches(n, depth) {
			s.Empty++
		}
		if CheckDeeplyNested.matches(n, depth) {
			s.DeeplyNested++
		}
	})
	return s
}

// Select returns the layers below roots matching check, in document order.
func Select(roots []*design.Node, check Check) []*design.Node {
	out := []*design.Node{}
	walkBelow(roots, func(n *design.Node, depth int) {
		if check.matches(n, depth) {
			out = append(out, n)
		}
	})
	return out
}

// HiddenLayers returns hidden layers under roots, roots included, that are
// not inside a design-system layer. Hidden but locked layers are only
// counted.
func HiddenLayers(roots []*design.Node) (hidden []*design.Node, locked int) {
	hidden = []*design.Node{}
	walkAll(roots, func(n *design.Node) {
		if n.Visible || (n.Parent != nil && naming.IsProtected(n.Parent)) {
			return
		}
		if n.Locked {
			locked++
			return
		}
		hidden = append(hidden, n)
	})
	return hidden, locked
}

// EmptyFrames returns frames and groups under roots, roots included, that
// have no children. Design-system layers are never reported.
func EmptyFrames(roots []*design.Node) []*design.Node {
	out := []*design.Node{}
	walkAll(roots, func(n *design.Node) {
		if isContainer(n) && len(n.Children) == 0 && !naming.IsProtected(n) {
			out = append(out, n)
		}
	})
	return out
}

// RedundantWrappers returns frames and groups holding exactly one child,
// which could be ungrouped. Locked layers and everything below them are
// left out, as are design-system layers.
func RedundantWrappers(roots []*design.Node) []*design.Node {
	out := []*design.Node{}
	for _, root := range roots {
		design.Walk(root, func(n *design.Node) bool {
			if n.Locked || n.Kind.IsComponentKind() {
				return false
			}
			if isContainer(n) && len(n.Children) == 1 && n.Parent != nil && !naming.IsProtected(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// walkAll visits roots and their descendants without entering
// design-system internals.
func walkAll(roots []*design.Node, fn func(*design.Node)) {
	for _, root := range roots {
		design.Walk(root, func(n *design.Node) bool {
			fn(n)
			return !n.Kind.IsComponentKind()
		})
	}
}

// Finding lists the layers one cleanup check matched.
type Finding struct {
	Count   int      `json:"count"`
	NodeIDs []string `json:"nodeIds"`
	// Locked counts matches left out because they are locked.
	Locked int `json:"locked,omitempty"`
}

func newFinding(nodes []*design.Node) Finding {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return Finding{Count: len(nodes), NodeIDs: ids}
}

// Options tune Run.
type Options struct {
	// IgnoreHidden leaves hidden layers out of the quality score.
	IgnoreHidden bool
}

// Report is the full audit of a selection.
type Report struct {
	Stats             Stats    `json:"stats"`
	HiddenLayers      Finding  `json:"hiddenLayers"`
	EmptyFrames       Finding  `json:"emptyFrames"`
	RedundantWrappers Finding  `json:"redundantWrappers"`
	Quality           *Quality `json:"quality"`
}

// Run audits roots with every check.
func Run(roots []*design.Node, opts Options) (*Report, error) {
	if len(roots) == 0 {
		return nil, ErrNoSelection
	}

	hidden, locked := HiddenLayers(roots)
	hiddenFinding := newFinding(hidden)
	hiddenFinding.Locked = locked

	return &Report{
		Stats:             Scan(roots),
		HiddenLayers:      hiddenFinding,
		EmptyFrames:       newFinding(EmptyFrames(roots)),
		RedundantWrappers: newFinding(RedundantWrappers(roots)),
		Quality:           CheckQuality(roots, opts.IgnoreHidden),
	}, nil
}
