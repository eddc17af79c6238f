package naming

import "github.com/mvp-joe/layerlint/internal/design"

// Level is the nesting tier of a non-top-level Frame or Group.
type Level string

const (
	LevelItem      Level = "Item"
	LevelContainer Level = "Container"
	LevelSection   Level = "Section"
	LevelBlock     Level = "Block"
)

// Rank orders levels from Item (0) to Block (3).
func (l Level) Rank() int {
	switch l {
	case LevelContainer:
		return 1
	case LevelSection:
		return 2
	case LevelBlock:
		return 3
	}
	return 0
}

// HierarchyLevel classifies n by how deeply its Frame and Group children nest.
// A single child one tier deep already yields Section.
func HierarchyLevel(n *design.Node) Level {
	nested := 0
	maxChildDepth := 0
	for _, c := range n.Children {
		if !c.Kind.IsFrameLike() {
			continue
		}
		nested++
		if d := NodeDepth(c); d > maxChildDepth {
			maxChildDepth = d
		}
	}

	switch {
	case maxChildDepth >= 2:
		return LevelBlock
	case maxChildDepth == 1:
		return LevelSection
	case nested > 0:
		return LevelContainer
	default:
		return LevelItem
	}
}
