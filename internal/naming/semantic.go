package naming

import (
	"math"
	"regexp"
	"strings"

	"github.com/mvp-joe/layerlint/internal/design"
)

const (
	defaultFontSize = 14
	maxButtonLabel  = 30
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ToSemantic names n after the UI pattern its structure suggests. The base
// name is only used when no rule matches the node's kind.
func ToSemantic(n *design.Node, base string) string {
	switch {
	case n.Kind.IsVectorLike():
		return "icon"
	case n.Kind == design.KindText:
		return textRole(n)
	case n.Kind == design.KindEllipse:
		if HasImageFill(n) {
			return "avatar"
		}
		return "shape"
	case n.Kind == design.KindRectangle:
		return rectangleRole(n)
	case n.Kind.IsFrameLike():
		return containerRole(Classify(n))
	}

	if s := whitespaceRun.ReplaceAllString(strings.ToLower(base), "-"); s != "" {
		return s
	}
	return fallbackName
}

func textRole(n *design.Node) string {
	size := float64(defaultFontSize)
	if n.Text != nil && n.Text.FontSize > 0 {
		size = n.Text.FontSize
	}
	switch {
	case size >= 32:
		return "heading"
	case size >= 20:
		return "subheading"
	case size >= 14:
		return "body-text"
	}
	return "caption"
}

func rectangleRole(n *design.Node) string {
	w, h := n.Width, n.Height
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	if h <= 2 || w <= 2 {
		return "divider"
	}
	if !HasImageFill(n) {
		return "shape"
	}

	ratio := w / h
	switch {
	case ratio > 3:
		return "banner"
	case ratio > 1.5:
		return "thumbnail"
	case math.Abs(ratio-1) < 0.25:
		return "avatar"
	}
	return "media"
}

// containerRole applies the frame rules in strict precedence; the first hit wins.
func containerRole(s Signals) string {
	w, h, cr := s.Width, s.Height, s.CornerRadius
	horizontal := s.Layout == design.LayoutHorizontal
	vertical := s.Layout == design.LayoutVertical

	if s.ChildCount == 0 {
		return "placeholder"
	}

	if s.TopLevel {
		switch {
		case horizontal && h > 0 && h < 100:
			return "top-bar"
		case vertical && w > 0 && w < 300:
			return "side-panel"
		}
		return "section"
	}

	hasContent := s.TextKids > 0 || s.FrameKids > 0

	switch {
	case h > 0 && h < 40 && w < 200 && cr >= h/2 && s.ChildCount <= 3:
		return "badge"
	case math.Abs(w-h) <= 4 && w > 0 && cr >= w/2:
		return "avatar"
	case s.VectorKids > 0 && s.ChildCount == 1 && w < 56 && h < 56:
		return "icon-btn"
	case s.Stroke && !s.VisibleFill && h > 0 && h < 64 && w > h*2:
		return "input"
	case h > 0 && h < 56 && s.VisibleFill && s.Padding && isShortLabel(s.Label) && s.FrameKids == 0:
		if s.Shadow {
			return "cta-btn"
		}
		return "btn"
	case s.Shadow && s.ImageKids > 0 && hasContent:
		return "card"
	case s.Shadow && w < 300 && h < 200 && cr >= 8:
		return "popup"
	case (s.Shadow || s.Stroke) && w > 300 && h > 200 && cr >= 8 && s.FrameKids >= 2:
		return "panel"
	case s.ImageKids > 0 && hasContent:
		return "content-block"
	case vertical && s.FrameKids >= 2:
		return "stack"
	case horizontal:
		return "row"
	case vertical:
		return "stack"
	case s.ChildCount == 1:
		return "wrapper"
	}
	return "group"
}

func isShortLabel(label string) bool {
	n := len([]rune(label))
	return n > 0 && n <= maxButtonLabel
}
