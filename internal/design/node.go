package design

import "strings"

// Kind identifies the variant of a Node. Callers switch on Kind rather than
// probing for optional fields.
type Kind string

const (
	KindDocument     Kind = "DOCUMENT"
	KindPage         Kind = "PAGE"
	KindFrame        Kind = "FRAME"
	KindGroup        Kind = "GROUP"
	KindComponent    Kind = "COMPONENT"
	KindComponentSet Kind = "COMPONENT_SET"
	KindInstance     Kind = "INSTANCE"
	KindText         Kind = "TEXT"
	KindVector       Kind = "VECTOR"
	KindStar         Kind = "STAR"
	KindPolygon      Kind = "POLYGON"
	KindLine         Kind = "LINE"
	KindEllipse      Kind = "ELLIPSE"
	KindRectangle    Kind = "RECTANGLE"
)

// Valid reports whether k is one of the known node kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDocument, KindPage, KindFrame, KindGroup, KindComponent, KindComponentSet,
		KindInstance, KindText, KindVector, KindStar, KindPolygon, KindLine, KindEllipse,
		KindRectangle:
		return true
	}
	return false
}

// IsVectorLike reports whether k is a vector path kind (Vector, Star, Polygon, Line).
func (k Kind) IsVectorLike() bool {
	return k == KindVector || k == KindStar || k == KindPolygon || k == KindLine
}

// IsFrameLike reports whether k is a plain Frame or Group.
func (k Kind) IsFrameLike() bool {
	return k == KindFrame || k == KindGroup
}

// IsComponentKind reports whether k belongs to the design system
// (Component, ComponentSet or Instance).
func (k Kind) IsComponentKind() bool {
	return k == KindComponent || k == KindComponentSet || k == KindInstance
}

// IsContainer reports whether nodes of kind k carry children.
func (k Kind) IsContainer() bool {
	switch k {
	case KindDocument, KindPage, KindFrame, KindGroup, KindComponent, KindComponentSet, KindInstance:
		return true
	}
	return false
}

// hasLayout reports whether nodes of kind k carry auto-layout attributes.
func (k Kind) hasLayout() bool {
	return k.IsFrameLike() || k.IsComponentKind()
}

// LayoutMode is the auto-layout direction of a container.
type LayoutMode string

const (
	LayoutNone       LayoutMode = "NONE"
	LayoutHorizontal LayoutMode = "HORIZONTAL"
	LayoutVertical   LayoutMode = "VERTICAL"
)

// LayoutWrap controls whether auto-layout children wrap onto new lines.
type LayoutWrap string

const (
	WrapNone LayoutWrap = "NO_WRAP"
	WrapWrap LayoutWrap = "WRAP"
)

// SizingMode is the primary-axis sizing of an auto-layout container.
type SizingMode string

const (
	SizingFixed SizingMode = "FIXED"
	SizingAuto  SizingMode = "AUTO"
)

// AutoLayout holds the declarative layout attributes of container kinds.
type AutoLayout struct {
	Mode              LayoutMode
	Wrap              LayoutWrap
	ItemSpacing       float64
	PrimaryAxisSizing SizingMode
	PaddingLeft       float64
	PaddingRight      float64
	PaddingTop        float64
	PaddingBottom     float64
}

// PaintType tags a fill or stroke entry.
type PaintType string

const (
	PaintSolid          PaintType = "SOLID"
	PaintImage          PaintType = "IMAGE"
	PaintGradientLinear PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial PaintType = "GRADIENT_RADIAL"
)

// Paint is one entry of a node's fills or strokes.
type Paint struct {
	Type    PaintType
	Visible bool
	Opacity float64
}

// SolidPaint returns a fully opaque, visible solid paint.
func SolidPaint() Paint { return Paint{Type: PaintSolid, Visible: true, Opacity: 1} }

// ImagePaint returns a fully opaque, visible image paint.
func ImagePaint() Paint { return Paint{Type: PaintImage, Visible: true, Opacity: 1} }

// EffectType tags an effect entry.
type EffectType string

const (
	EffectDropShadow     EffectType = "DROP_SHADOW"
	EffectInnerShadow    EffectType = "INNER_SHADOW"
	EffectLayerBlur      EffectType = "LAYER_BLUR"
	EffectBackgroundBlur EffectType = "BACKGROUND_BLUR"
)

// Effect is one entry of a node's effects.
type Effect struct {
	Type    EffectType
	Visible bool
}

// DropShadow returns a visible drop shadow effect.
func DropShadow() Effect { return Effect{Type: EffectDropShadow, Visible: true} }

// Text holds the attributes only Text nodes carry.
type Text struct {
	Characters string
	FontSize   float64
	FontWeight int
	// StyleID references the external style registry. Empty when unlinked.
	StyleID string
	// StyleMixed is set when the text uses more than one style.
	StyleMixed bool
}

// Node is a read-mostly view of one layer. Only Name is written by the
// naming engine. Parent is a weak back-reference.
type Node struct {
	ID      string
	Name    string
	Kind    Kind
	Visible bool
	Locked  bool

	Width        float64
	Height       float64
	CornerRadius float64

	// Layout is set for Frame, Group and component kinds only.
	Layout *AutoLayout
	// Text is set for Text nodes only.
	Text *Text

	Fills   []Paint
	Strokes []Paint
	Effects []Effect

	Parent   *Node
	Children []*Node
}

// NewNode creates a visible node of the given kind with the per-kind
// attribute blocks initialised.
func NewNode(id string, kind Kind, name string) *Node {
	n := &Node{ID: id, Kind: kind, Name: name, Visible: true}
	if kind.hasLayout() {
		n.Layout = &AutoLayout{Mode: LayoutNone, Wrap: WrapNone, PrimaryAxisSizing: SizingAuto}
	}
	if kind == KindText {
		n.Text = &Text{}
	}
	return n
}

// Append adds children to n and points their Parent at n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// LayoutMode returns the auto-layout direction, LayoutNone for kinds without layout.
func (n *Node) LayoutMode() LayoutMode {
	if n.Layout == nil || n.Layout.Mode == "" {
		return LayoutNone
	}
	return n.Layout.Mode
}

// IsTopLevel reports whether n sits directly on a page.
func (n *Node) IsTopLevel() bool {
	return n.Parent != nil && n.Parent.Kind == KindPage
}

// Characters returns the text content of a Text node, empty otherwise.
func (n *Node) Characters() string {
	if n.Text == nil {
		return ""
	}
	return n.Text.Characters
}

// Path returns the slash-joined layer names from the page (exclusive) down to n.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil && cur.Kind != KindPage && cur.Kind != KindDocument; cur = cur.Parent {
		parts = append(parts, cur.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Walk visits root and its descendants in document order using an explicit
// stack. Returning false from fn skips the visited node's subtree.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
