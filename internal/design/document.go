package design

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNodeNotFound indicates a node ID that is not part of the document.
	ErrNodeNotFound = errors.New("node not found")

	// ErrCycle indicates parent references that loop back on themselves.
	ErrCycle = errors.New("parent references form a cycle")

	// ErrInvalidDocument indicates a structurally broken export.
	ErrInvalidDocument = errors.New("invalid document")
)

// Document is the host's node tree: a Document root holding pages.
type Document struct {
	Name string
	Root *Node

	byID map[string]*Node
}

// NewDocument wraps pages under a synthetic Document root and indexes every node.
func NewDocument(name string, pages ...*Node) *Document {
	root := NewNode("0:0", KindDocument, name)
	root.Append(pages...)
	d := &Document{Name: name, Root: root}
	d.Reindex()
	return d
}

// Reindex rebuilds the ID lookup table after structural edits.
func (d *Document) Reindex() {
	d.byID = make(map[string]*Node)
	Walk(d.Root, func(n *Node) bool {
		d.byID[n.ID] = n
		return true
	})
}

// Lookup re-resolves a node ID against the live tree.
func (d *Document) Lookup(id string) (*Node, error) {
	n, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n, nil
}

// Pages returns the document's pages in order.
func (d *Document) Pages() []*Node {
	var pages []*Node
	for _, c := range d.Root.Children {
		if c.Kind == KindPage {
			pages = append(pages, c)
		}
	}
	return pages
}

// TopLevel returns every node placed directly on a page.
func (d *Document) TopLevel() []*Node {
	var nodes []*Node
	for _, p := range d.Pages() {
		nodes = append(nodes, p.Children...)
	}
	return nodes
}

// Select resolves a selection of node IDs. An empty list selects every
// top-level node.
func (d *Document) Select(ids []string) ([]*Node, error) {
	if len(ids) == 0 {
		return d.TopLevel(), nil
	}
	nodes := make([]*Node, 0, len(ids))
	var missing []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		n, ok := d.byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		nodes = append(nodes, n)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, strings.Join(missing, ", "))
	}
	return nodes, nil
}

// Len returns the number of indexed nodes, the Document root included.
func (d *Document) Len() int {
	return len(d.byID)
}
