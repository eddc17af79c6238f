package naming

import (
	"context"
	"strings"

	"github.com/mvp-joe/layerlint/internal/design"
)

const (
	fallbackName   = "layer"
	contentName    = "Content"
	imageName      = "Img"
	shapeName      = "Shape"
	maxTextNameLen = 40
)

// StyleResolver looks up the display name of a text style. A miss, an error
// and a timeout all report ok == false.
type StyleResolver interface {
	ResolveTextStyle(ctx context.Context, styleID string) (name string, ok bool)
}

// Preferences are user toggles that change how base names are derived.
type Preferences struct {
	// TextRenameContent names text layers after their content even when a
	// text style is linked.
	TextRenameContent bool
}

// Generator derives layer names under one casing and convention.
type Generator struct {
	Casing     Casing
	Convention Convention
	Prefs      Preferences
	// Styles is optional; without it linked text styles are never resolved.
	Styles StyleResolver
}

// NewGenerator returns a Generator. Unknown casings and conventions fall back
// to pascal and atomic.
func NewGenerator(casing Casing, convention Convention, prefs Preferences, styles StyleResolver) *Generator {
	if !casing.Valid() {
		casing = CasingPascal
	}
	if !convention.Valid() {
		convention = ConventionAtomic
	}
	return &Generator{Casing: casing, Convention: convention, Prefs: prefs, Styles: styles}
}

// base is the outcome of base-name resolution.
type base struct {
	name string
	// final names bypass the convention strategy.
	final bool
	skip  bool
}

// Name computes the new name for n. ok is false only when n should be left
// out of the batch: a style-linked text layer already carrying its style name.
// The result is never empty.
func (g *Generator) Name(ctx context.Context, n *design.Node) (string, bool) {
	b := g.baseName(ctx, n)
	if b.skip {
		return "", false
	}

	name := b.name
	if !b.final {
		name = g.Convention.strategy()(n, name)
	}
	if name == "" {
		name = fallbackName
	}
	return name, true
}

func (g *Generator) baseName(ctx context.Context, n *design.Node) base {
	if IsDesignSystemComponent(n) {
		return base{name: n.Name, final: true}
	}

	var name string
	switch {
	case n.Kind == design.KindText:
		if !g.Prefs.TextRenameContent {
			if styleName, ok := g.linkedStyleName(ctx, n); ok {
				if styleName == n.Name {
					return base{skip: true}
				}
				return base{name: styleName, final: true}
			}
		}
		name = textContentName(n)
	case n.Kind == design.KindRectangle && HasImageFill(n):
		name = imageName
	case n.Kind.IsVectorLike() || n.Kind == design.KindEllipse || n.Kind == design.KindRectangle:
		name = shapeName
	case n.Kind.IsFrameLike():
		if n.IsTopLevel() {
			// Device frames keep their name; conventions may still restyle it.
			return base{name: n.Name}
		}
		name = string(HierarchyLevel(n))
	default:
		name = contentName
	}

	return base{name: ApplyCasing(name, g.Casing)}
}

func (g *Generator) linkedStyleName(ctx context.Context, n *design.Node) (string, bool) {
	if g.Styles == nil || n.Text == nil || n.Text.StyleID == "" || n.Text.StyleMixed {
		return "", false
	}
	name, ok := g.Styles.ResolveTextStyle(ctx, n.Text.StyleID)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// textContentName is the trimmed text capped at 40 runes, or "Content".
func textContentName(n *design.Node) string {
	text := strings.TrimSpace(n.Characters())
	if text == "" {
		return contentName
	}
	if r := []rune(text); len(r) > maxTextNameLen {
		text = string(r[:maxTextNameLen])
	}
	return text
}
