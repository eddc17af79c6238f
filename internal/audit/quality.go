package audit

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/mvp-joe/layerlint/internal/design"
)

const (
	// MinFontSize is the smallest readable text size in px.
	MinFontSize = 12
	// MinTouchTarget is the smallest interactive layer side in px.
	MinTouchTarget = 44

	defaultFontSize   = 14
	defaultFontWeight = 400
)

var (
	defaultNameWord = regexp.MustCompile(`Frame|Group|Rectangle|Ellipse`)
	defaultNameFull = regexp.MustCompile(`^(Frame|Group|Rectangle|Ellipse)(\s+\d+)?$`)
)

// Issue is one layer failing a quality check.
type Issue struct {
	NodeID     string `json:"nodeId"`
	Name       string `json:"name"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion,omitempty"`
}

// DetachedText groups text layers with no linked text style by font.
type DetachedText struct {
	Font    string   `json:"font"`
	NodeIDs []string `json:"nodeIds"`
}

// Quality scores a selection on naming, type size, touch targets and text
// style usage.
type Quality struct {
	HealthScore        int            `json:"healthScore"`
	TotalChecks        int            `json:"totalChecks"`
	PassedChecks       int            `json:"passedChecks"`
	DefaultNames       []Issue        `json:"defaultNames"`
	SmallFonts         []Issue        `json:"smallFonts"`
	SmallTouchTargets  []Issue        `json:"smallTouchTargets"`
	DetachedTextStyles []DetachedText `json:"detachedTextStyles"`
	Tips               []string       `json:"tips"`
}

func (q *Quality) check(pass bool) {
	q.TotalChecks++
	if pass {
		q.PassedChecks++
	}
}

// CheckQuality runs the quality checks over roots and their descendants.
// Design-system layers and their internals are skipped, as are hidden
// layers when ignoreHidden is set.
func CheckQuality(roots []*design.Node, ignoreHidden bool) *Quality {
	q := &Quality{
		DefaultNames:       []Issue{},
		SmallFonts:         []Issue{},
		SmallTouchTargets:  []Issue{},
		DetachedTextStyles: []DetachedText{},
		Tips:               []string{},
	}
	detached := map[string][]string{}

	walkAll(roots, func(n *design.Node) {
		if n.Kind.IsComponentKind() || (ignoreHidden && !n.Visible) {
			return
		}

		if n.Kind == design.KindText {
			linked := n.Text.StyleID != "" && !n.Text.StyleMixed
			q.check(linked)
			if !linked {
				font := fontLabel(n.Text)
				detached[font] = append(detached[font], n.ID)
			}
		}

		if defaultNameWord.MatchString(n.Name) {
			ok := !defaultNameFull.MatchString(n.Name)
			q.check(ok)
			if !ok {
				q.DefaultNames = append(q.DefaultNames, Issue{NodeID: n.ID, Name: n.Name, Issue: "Using default name"})
			}
		}

		if n.Kind == design.KindText {
			size := fontSize(n.Text)
			ok := size >= MinFontSize
			q.check(ok)
			if !ok {
				q.SmallFonts = append(q.SmallFonts, Issue{
					NodeID:     n.ID,
					Name:       n.Name,
					Issue:      fmt.Sprintf("Font too small: %gpx", size),
					Suggestion: fmt.Sprintf("Minimum %dpx for accessibility", MinFontSize),
				})
			}
		}

		if isInteractive(n.Name) {
			ok := n.Width >= MinTouchTarget && n.Height >= MinTouchTarget
			q.check(ok)
			if !ok {
				q.SmallTouchTargets = append(q.SmallTouchTargets, Issue{
					NodeID:     n.ID,
					Name:       n.Name,
					Issue:      fmt.Sprintf("Touch target: %dx%dpx", int(math.Round(n.Width)), int(math.Round(n.Height))),
					Suggestion: fmt.Sprintf("Minimum %dx%dpx", MinTouchTarget, MinTouchTarget),
				})
			}
		}
	})

	for font, ids := range detached {
		q.DetachedTextStyles = append(q.DetachedTextStyles, DetachedText{Font: font, NodeIDs: ids})
	}
	sort.Slice(q.DetachedTextStyles, func(i, j int) bool {
		a, b := q.DetachedTextStyles[i], q.DetachedTextStyles[j]
		if len(a.NodeIDs) != len(b.NodeIDs) {
			return len(a.NodeIDs) > len(b.NodeIDs)
		}
		return a.Font < b.Font
	})

	q.HealthScore = 100
	if q.TotalChecks > 0 {
		q.HealthScore = int(math.Round(float64(q.PassedChecks) / float64(q.TotalChecks) * 100))
	}
	q.Tips = tips(q)
	return q
}

func fontSize(t *design.Text) float64 {
	if t.FontSize == 0 {
		return defaultFontSize
	}
	return t.FontSize
}

func fontLabel(t *design.Text) string {
	weight := t.FontWeight
	if weight == 0 {
		weight = defaultFontWeight
	}
	return fmt.Sprintf("%gpx / %d", fontSize(t), weight)
}

func isInteractive(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "button") || strings.Contains(lower, "btn") || strings.Contains(lower, "link")
}

func tips(q *Quality) []string {
	out := []string{}
	if n := len(q.DefaultNames); n > 0 {
		out = append(out, fmt.Sprintf("Rename %d layer(s) with default names", n))
	}
	if n := len(q.SmallFonts); n > 0 {
		out = append(out, fmt.Sprintf("Increase font size on %d text layer(s)", n))
	}
	if n := len(q.SmallTouchTargets); n > 0 {
		out = append(out, fmt.Sprintf("Enlarge %d touch target(s) to %dx%dpx", n, MinTouchTarget, MinTouchTarget))
	}
	if n := len(q.DetachedTextStyles); n > 0 {
		out = append(out, fmt.Sprintf("Connect %d font group(s) to text styles", n))
	}
	if q.HealthScore == 100 {
		out = append(out, "All quality checks passed.")
	}
	return out
}
