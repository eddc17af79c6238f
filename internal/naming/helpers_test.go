package naming

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/mvp-joe/layerlint/internal/design"
)

var nodeSeq atomic.Int64

func node(kind design.Kind, name string, children ...*design.Node) *design.Node {
	n := design.NewNode(fmt.Sprintf("%d:%d", 1, nodeSeq.Add(1)), kind, name)
	n.Append(children...)
	return n
}

func frame(name string, children ...*design.Node) *design.Node {
	return node(design.KindFrame, name, children...)
}

func text(characters string) *design.Node {
	n := node(design.KindText, "Text")
	n.Text.Characters = characters
	return n
}

func sized(n *design.Node, w, h float64) *design.Node {
	n.Width, n.Height = w, h
	return n
}

func withLayout(n *design.Node, mode design.LayoutMode) *design.Node {
	n.Layout.Mode = mode
	return n
}

// onPage places n directly on a fresh page so it counts as top-level.
func onPage(n *design.Node) *design.Node {
	design.NewDocument("test", node(design.KindPage, "Page 1", n))
	return n
}

// nested places n one level below a top-level frame.
func nested(n *design.Node) *design.Node {
	onPage(frame("Desktop", n))
	return n
}

type stubResolver map[string]string

func (s stubResolver) ResolveTextStyle(_ context.Context, id string) (string, bool) {
	name, ok := s[id]
	return name, ok
}
