package rename

import (
	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/naming"
)

// Collect returns the renameable layers under roots in document order.
// Design-system subtrees and filtered layers are neither collected nor
// descended into. Pages and the document root are descended into but never
// collected. Each layer appears once even when roots overlap.
func Collect(roots []*design.Node, f *Filter) []*design.Node {
	var out []*design.Node
	seen := make(map[*design.Node]bool)

	for _, root := range roots {
		design.Walk(root, func(n *design.Node) bool {
			if seen[n] {
				return false
			}
			seen[n] = true

			if n.Kind == design.KindDocument || n.Kind == design.KindPage {
				return true
			}
			if naming.IsProtected(n) || f.ShouldSkip(n) {
				return false
			}
			out = append(out, n)
			return true
		})
	}
	return out
}
