package naming

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/layerlint/internal/design"
)

var (
	handoffSeparators = regexp.MustCompile(`[\s_/]+`)
	handoffInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun         = regexp.MustCompile(`-+`)
	handoffRole       = regexp.MustCompile(`^(icon|text|img|section|nav|hstack|list|wrapper|card)/`)
)

// Slug reduces name to lowercase ASCII letters, digits and single hyphens.
// It returns "layer" when nothing survives.
func Slug(name string) string {
	s := camelBoundary.ReplaceAllString(name, "$1-$2")
	s = handoffSeparators.ReplaceAllString(s, "-")
	s = strings.ToLower(s)
	s = handoffInvalid.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallbackName
	}
	return s
}

// ToHandoff prefixes the slug of base with an HTML-like role derived from
// the node's kind and layout, e.g. "text/hello-world" or "nav/menu".
// A role prefix already present on base is dropped first.
func ToHandoff(n *design.Node, base string) string {
	slug := Slug(handoffRole.ReplaceAllString(base, ""))

	switch {
	case n.Kind.IsVectorLike() || n.Kind == design.KindEllipse:
		return "icon/" + slug
	case n.Kind == design.KindText:
		return "text/" + slug
	case n.Kind == design.KindRectangle && HasImageFill(n):
		return "img/" + slug
	case n.Kind.IsFrameLike():
		return handoffContainer(n) + "/" + slug
	}
	return slug
}

func handoffContainer(n *design.Node) string {
	children := len(n.Children)
	switch {
	case n.IsTopLevel():
		return "section"
	case n.LayoutMode() == design.LayoutHorizontal:
		if children >= 3 {
			return "nav"
		}
		return "hstack"
	case n.LayoutMode() == design.LayoutVertical:
		return "list"
	case children <= 2:
		return "wrapper"
	}
	return "card"
}
