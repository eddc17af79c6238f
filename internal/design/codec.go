package design

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dominikbraun/graph"
)

// documentRecord is the on-disk export format: a flat node list in document
// order, each node pointing at its parent by ID.
type documentRecord struct {
	Name  string       `json:"name"`
	Nodes []nodeRecord `json:"nodes"`
}

type paintRecord struct {
	Type    PaintType `json:"type"`
	Visible *bool     `json:"visible,omitempty"`
	Opacity *float64  `json:"opacity,omitempty"`
}

type effectRecord struct {
	Type    EffectType `json:"type"`
	Visible *bool      `json:"visible,omitempty"`
}

type nodeRecord struct {
	ID       string `json:"id"`
	ParentID string `json:"parentId,omitempty"`
	Type     Kind   `json:"type"`
	Name     string `json:"name"`
	Visible  *bool  `json:"visible,omitempty"`
	Locked   bool   `json:"locked,omitempty"`

	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`

	LayoutMode            LayoutMode `json:"layoutMode,omitempty"`
	LayoutWrap            LayoutWrap `json:"layoutWrap,omitempty"`
	ItemSpacing           float64    `json:"itemSpacing,omitempty"`
	PrimaryAxisSizingMode SizingMode `json:"primaryAxisSizingMode,omitempty"`
	PaddingLeft           float64    `json:"paddingLeft,omitempty"`
	PaddingRight          float64    `json:"paddingRight,omitempty"`
	PaddingTop            float64    `json:"paddingTop,omitempty"`
	PaddingBottom         float64    `json:"paddingBottom,omitempty"`

	Fills   []paintRecord  `json:"fills,omitempty"`
	Strokes []paintRecord  `json:"strokes,omitempty"`
	Effects []effectRecord `json:"effects,omitempty"`

	Characters     string  `json:"characters,omitempty"`
	FontSize       float64 `json:"fontSize,omitempty"`
	FontWeight     int     `json:"fontWeight,omitempty"`
	TextStyleID    string  `json:"textStyleId,omitempty"`
	TextStyleMixed bool    `json:"textStyleMixed,omitempty"`
}

// Load reads a document export from path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// Decode builds a Document from the flat export format. Parent links are
// checked to form a single tree rooted at the document.
func Decode(r io.Reader) (*Document, error) {
	var rec documentRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to parse document JSON: %w", err)
	}

	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	nodes := make(map[string]*Node, len(rec.Nodes))

	var root *Node
	for i := range rec.Nodes {
		nr := &rec.Nodes[i]
		if nr.ID == "" {
			return nil, fmt.Errorf("%w: node %d has no id", ErrInvalidDocument, i)
		}
		if !nr.Type.Valid() {
			return nil, fmt.Errorf("%w: node %s has unknown type %q", ErrInvalidDocument, nr.ID, nr.Type)
		}
		if err := g.AddVertex(nr.ID); err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				return nil, fmt.Errorf("%w: duplicate node id %s", ErrInvalidDocument, nr.ID)
			}
			return nil, err
		}
		n := nr.toNode()
		nodes[nr.ID] = n
		if nr.Type == KindDocument {
			if root != nil {
				return nil, fmt.Errorf("%w: more than one DOCUMENT node", ErrInvalidDocument)
			}
			root = n
		}
	}

	if root == nil {
		root = NewNode("0:0", KindDocument, rec.Name)
		if _, exists := nodes[root.ID]; exists {
			return nil, fmt.Errorf("%w: id %s is reserved for the document root", ErrInvalidDocument, root.ID)
		}
	}

	for i := range rec.Nodes {
		nr := &rec.Nodes[i]
		n := nodes[nr.ID]
		if n == root {
			continue
		}

		if nr.ParentID == "" {
			if nr.Type != KindPage {
				return nil, fmt.Errorf("%w: %s node %s has no parent", ErrInvalidDocument, nr.Type, nr.ID)
			}
			root.Append(n)
			continue
		}

		parent, ok := nodes[nr.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: node %s references missing parent %s", ErrInvalidDocument, nr.ID, nr.ParentID)
		}
		if !parent.Kind.IsContainer() {
			return nil, fmt.Errorf("%w: %s node %s cannot hold children", ErrInvalidDocument, parent.Kind, parent.ID)
		}
		if err := g.AddEdge(nr.ParentID, nr.ID); err != nil {
			if errors.Is(err, graph.ErrEdgeCreatesCycle) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrCycle, nr.ParentID, nr.ID)
			}
			return nil, err
		}
		parent.Append(n)
	}

	name := rec.Name
	if name == "" {
		name = root.Name
	}
	doc := &Document{Name: name, Root: root}
	doc.Reindex()
	return doc, nil
}

// Save writes the document back to path, replacing the file atomically.
func (d *Document) Save(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create document file: %w", err)
	}
	if err := d.Encode(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

// Encode writes the document in the flat export format.
func (d *Document) Encode(w io.Writer) error {
	rec := documentRecord{Name: d.Name}
	Walk(d.Root, func(n *Node) bool {
		rec.Nodes = append(rec.Nodes, fromNode(n))
		return true
	})
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

func (nr *nodeRecord) toNode() *Node {
	n := NewNode(nr.ID, nr.Type, nr.Name)
	n.Visible = nr.Visible == nil || *nr.Visible
	n.Locked = nr.Locked
	n.Width = nr.Width
	n.Height = nr.Height
	n.CornerRadius = nr.CornerRadius

	if n.Layout != nil {
		if nr.LayoutMode != "" {
			n.Layout.Mode = nr.LayoutMode
		}
		if nr.LayoutWrap != "" {
			n.Layout.Wrap = nr.LayoutWrap
		}
		if nr.PrimaryAxisSizingMode != "" {
			n.Layout.PrimaryAxisSizing = nr.PrimaryAxisSizingMode
		}
		n.Layout.ItemSpacing = nr.ItemSpacing
		n.Layout.PaddingLeft = nr.PaddingLeft
		n.Layout.PaddingRight = nr.PaddingRight
		n.Layout.PaddingTop = nr.PaddingTop
		n.Layout.PaddingBottom = nr.PaddingBottom
	}

	if n.Text != nil {
		n.Text.Characters = nr.Characters
		n.Text.FontSize = nr.FontSize
		n.Text.FontWeight = nr.FontWeight
		n.Text.StyleID = nr.TextStyleID
		n.Text.StyleMixed = nr.TextStyleMixed
	}

	n.Fills = toPaints(nr.Fills)
	n.Strokes = toPaints(nr.Strokes)
	for _, er := range nr.Effects {
		n.Effects = append(n.Effects, Effect{Type: er.Type, Visible: er.Visible == nil || *er.Visible})
	}
	return n
}

func toPaints(records []paintRecord) []Paint {
	if len(records) == 0 {
		return nil
	}
	paints := make([]Paint, 0, len(records))
	for _, pr := range records {
		p := Paint{Type: pr.Type, Visible: pr.Visible == nil || *pr.Visible, Opacity: 1}
		if pr.Opacity != nil {
			p.Opacity = *pr.Opacity
		}
		paints = append(paints, p)
	}
	return paints
}

func fromNode(n *Node) nodeRecord {
	nr := nodeRecord{
		ID:           n.ID,
		Type:         n.Kind,
		Name:         n.Name,
		Locked:       n.Locked,
		Width:        n.Width,
		Height:       n.Height,
		CornerRadius: n.CornerRadius,
	}
	if n.Parent != nil {
		nr.ParentID = n.Parent.ID
	}
	if !n.Visible {
		nr.Visible = boolPtr(false)
	}
	if l := n.Layout; l != nil {
		if l.Mode != LayoutNone {
			nr.LayoutMode = l.Mode
		}
		if l.Wrap != WrapNone {
			nr.LayoutWrap = l.Wrap
		}
		if l.PrimaryAxisSizing != SizingAuto {
			nr.PrimaryAxisSizingMode = l.PrimaryAxisSizing
		}
		nr.ItemSpacing = l.ItemSpacing
		nr.PaddingLeft = l.PaddingLeft
		nr.PaddingRight = l.PaddingRight
		nr.PaddingTop = l.PaddingTop
		nr.PaddingBottom = l.PaddingBottom
	}
	if t := n.Text; t != nil {
		nr.Characters = t.Characters
		nr.FontSize = t.FontSize
		nr.FontWeight = t.FontWeight
		nr.TextStyleID = t.StyleID
		nr.TextStyleMixed = t.StyleMixed
	}
	nr.Fills = fromPaints(n.Fills)
	nr.Strokes = fromPaints(n.Strokes)
	for _, e := range n.Effects {
		er := effectRecord{Type: e.Type}
		if !e.Visible {
			er.Visible = boolPtr(false)
		}
		nr.Effects = append(nr.Effects, er)
	}
	return nr
}

func fromPaints(paints []Paint) []paintRecord {
	var records []paintRecord
	for _, p := range paints {
		pr := paintRecord{Type: p.Type}
		if !p.Visible {
			pr.Visible = boolPtr(false)
		}
		if p.Opacity != 1 {
			op := p.Opacity
			pr.Opacity = &op
		}
		records = append(records, pr)
	}
	return records
}

func boolPtr(b bool) *bool { return &b }
