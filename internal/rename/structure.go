package rename

import (
	"regexp"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/naming"
)

var (
	sectionPrefix = regexp.MustCompile(`(?i)^(section\.|section\s)`)
	itemSuffix    = regexp.MustCompile(`(?i)-(card|list|grid)?-?item$`)
)

// ItemSuffix returns the role suffix children of parent receive, based on
// how its auto-layout arranges them.
func ItemSuffix(parent *design.Node) string {
	l := parent.Layout
	if l == nil {
		return "item"
	}
	switch {
	case l.Wrap == design.WrapWrap:
		return "grid-item"
	case l.Mode == design.LayoutHorizontal && l.PrimaryAxisSizing == design.SizingFixed:
		return "card-item"
	case l.Mode == design.LayoutVertical:
		return "list-item"
	case l.Mode == design.LayoutHorizontal:
		return "card-item"
	}
	return "item"
}

// Structure renames each selected Frame that has children to
// "section.<name>" and its direct child Frames to "<name>-<role>", where the
// role comes from the parent's layout. Design-system layers are never touched.
func (d *Driver) Structure(roots []*design.Node, apply bool) (*Result, error) {
	if len(roots) == 0 {
		return nil, ErrNoSelection
	}

	casing := d.gen.Casing
	result := newResult(0)
	rename := func(n *design.Node, name string) {
		result.Total++
		if name == n.Name {
			result.Unchanged++
			return
		}
		result.Changes = append(result.Changes, Preview{NodeID: n.ID, OldName: n.Name, NewName: name})
		result.Renamed++
		result.Stats.record(name)
		if apply {
			n.Name = name
		}
	}

	for _, parent := range roots {
		if parent.Kind != design.KindFrame || len(parent.Children) == 0 {
			continue
		}
		if naming.IsProtected(parent) || d.filter.skipsState(parent) {
			continue
		}

		base := sectionPrefix.ReplaceAllString(parent.Name, "")
		rename(parent, "section."+naming.ApplyCasing(base, casing))

		suffix := ItemSuffix(parent)
		for _, child := range parent.Children {
			if child.Kind != design.KindFrame || d.filter.skipsState(child) {
				continue
			}
			base := itemSuffix.ReplaceAllString(child.Name, "")
			rename(child, naming.ApplyCasing(base, casing)+"-"+suffix)
		}
	}

	if result.Total == 0 {
		return nil, ErrNothingToRename
	}
	return result, nil
}
