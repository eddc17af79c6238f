package naming

import (
	"strings"

	"github.com/mvp-joe/layerlint/internal/design"
)

const (
	strokeOpacityFloor = 0.1
	fillOpacityFloor   = 0.05
	paddingFloor       = 4
)

// Signals are the structural facts derived from one container node. They are
// computed per call and never cached.
type Signals struct {
	Width        float64
	Height       float64
	CornerRadius float64
	Layout       design.LayoutMode
	TopLevel     bool

	ChildCount int
	// FrameKids counts Frame, Group, Component and Instance children.
	FrameKids  int
	TextKids   int
	VectorKids int
	ImageKids  int
	// Label is the direct text children's characters joined by spaces and trimmed.
	Label string

	Shadow      bool
	Stroke      bool
	VisibleFill bool
	Padding     bool
}

// Classify computes the Signals for n from its own attributes and its direct children.
func Classify(n *design.Node) Signals {
	s := Signals{
		Width:        n.Width,
		Height:       n.Height,
		CornerRadius: n.CornerRadius,
		Layout:       n.LayoutMode(),
		TopLevel:     n.IsTopLevel(),
		ChildCount:   len(n.Children),
		Shadow:       HasShadow(n),
		Stroke:       HasStroke(n),
		VisibleFill:  HasVisibleFill(n),
		Padding:      HasPadding(n),
	}

	var texts []string
	for _, c := range n.Children {
		switch {
		case c.Kind.IsFrameLike() || c.Kind == design.KindComponent || c.Kind == design.KindInstance:
			s.FrameKids++
		case c.Kind == design.KindText:
			s.TextKids++
			texts = append(texts, c.Characters())
		case c.Kind.IsVectorLike():
			s.VectorKids++
		}
		if HasImageFill(c) {
			s.ImageKids++
		}
	}
	s.Label = strings.TrimSpace(strings.Join(texts, " "))
	return s
}

// HasImageFill reports whether any of n's fills is an image.
func HasImageFill(n *design.Node) bool {
	for _, f := range n.Fills {
		if f.Type == design.PaintImage {
			return true
		}
	}
	return false
}

// IsDesignSystemComponent reports whether n is a component, component set or
// instance, or sits anywhere below a component or component set.
func IsDesignSystemComponent(n *design.Node) bool {
	if n.Kind.IsComponentKind() {
		return true
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == design.KindComponent || p.Kind == design.KindComponentSet {
			return true
		}
	}
	return false
}

// IsProtected reports whether a batch must leave n alone: n is a component,
// component set or instance, or has one of them anywhere above it. Unlike
// IsDesignSystemComponent this also covers layers inside an instance, which a
// walk never reaches but a selection by node ID can.
func IsProtected(n *design.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind.IsComponentKind() {
			return true
		}
	}
	return false
}

// HasShadow reports a visible drop shadow.
func HasShadow(n *design.Node) bool {
	for _, e := range n.Effects {
		if e.Type == design.EffectDropShadow && e.Visible {
			return true
		}
	}
	return false
}

// HasStroke reports a visible stroke above the opacity floor.
func HasStroke(n *design.Node) bool {
	for _, s := range n.Strokes {
		if s.Visible && s.Opacity > strokeOpacityFloor {
			return true
		}
	}
	return false
}

// HasVisibleFill reports a visible solid fill above the opacity floor.
func HasVisibleFill(n *design.Node) bool {
	for _, f := range n.Fills {
		if f.Type == design.PaintSolid && f.Visible && f.Opacity > fillOpacityFloor {
			return true
		}
	}
	return false
}

// HasPadding reports horizontal auto-layout padding wider than a hairline.
func HasPadding(n *design.Node) bool {
	if n.Layout == nil {
		return false
	}
	return n.Layout.PaddingLeft > paddingFloor || n.Layout.PaddingRight > paddingFloor
}

// NodeDepth returns the length of the longest chain of nested Frame or Group
// descendants below n. A node without Frame or Group children has depth 0.
func NodeDepth(n *design.Node) int {
	type entry struct {
		node  *design.Node
		depth int
	}

	maxDepth := 0
	stack := []entry{{node: n}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.depth > maxDepth {
			maxDepth = e.depth
		}
		for _, c := range e.node.Children {
			if c.Kind.IsFrameLike() {
				stack = append(stack, entry{node: c, depth: e.depth + 1})
			}
		}
	}
	return maxDepth
}
