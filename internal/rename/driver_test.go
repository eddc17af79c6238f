package rename

import (
	"context"
	"testing"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Batch Rename Driver:
// - End-to-end atomic/kebab pass renames nested frames to "item" and keeps the top-level name
// - A second identical pass produces no changes
// - Preview reports the same changes as Rename without mutating
// - Empty selection and fully filtered selection return sentinel errors
// - Design-system subtrees are never collected nor renamed
// - Filters skip locked, hidden, non-default and ignored layers and their subtrees
// - Overlapping selections collect each layer once
// - A panicking layer is counted as failed and the batch continues
// - The skip signal is counted separately from unchanged layers
// - Stats bucket renamed layers by the first matching category
// - Batch options post-process names with a per-batch index
// - Commit writes surviving nodes and reports missing and protected ones
// - Layers inside an instance stay untouched when selected directly by ID
// - Progress callbacks fire once per collected layer

func label(id, name, characters string) *design.Node {
	n := design.NewNode(id, design.KindText, name)
	n.Text.Characters = characters
	return n
}

// e2eDocument is a top-level frame holding a horizontal and a vertical
// auto-layout frame, each with one text child.
func e2eDocument() (*design.Document, *design.Node) {
	row := design.NewNode("1:2", design.KindFrame, "Frame 2")
	row.Layout.Mode = design.LayoutHorizontal
	row.Layout.Wrap = design.WrapNone
	row.Layout.PrimaryAxisSizing = design.SizingFixed
	row.Append(label("1:3", "Text", "Label 1"))

	col := design.NewNode("1:4", design.KindFrame, "Frame 3")
	col.Layout.Mode = design.LayoutVertical
	col.Layout.ItemSpacing = 0
	col.Append(label("1:5", "Text", "Label 2"))

	top := design.NewNode("1:1", design.KindFrame, "Desktop")
	top.Append(row, col)

	page := design.NewNode("0:1", design.KindPage, "Page 1")
	page.Append(top)
	return design.NewDocument("e2e", page), top
}

func kebabAtomic(t *testing.T, filters Filters, opts ...DriverOption) *Driver {
	t.Helper()
	f, err := NewFilter(filters)
	require.NoError(t, err)
	gen := naming.NewGenerator(naming.CasingKebab, naming.ConventionAtomic, naming.Preferences{}, nil)
	return NewDriver(gen, f, opts...)
}

func names(doc *design.Document, ids ...string) []string {
	var out []string
	for _, id := range ids {
		n, err := doc.Lookup(id)
		if err != nil {
			out = append(out, "<missing>")
			continue
		}
		out = append(out, n.Name)
	}
	return out
}

func TestRename_EndToEnd(t *testing.T) {
	t.Parallel()

	doc, top := e2eDocument()
	d := kebabAtomic(t, Filters{})

	res, err := d.Rename(context.Background(), []*design.Node{top})
	require.NoError(t, err)

	assert.Equal(t, []string{"Desktop", "item", "label-1", "item", "label-2"},
		names(doc, "1:1", "1:2", "1:3", "1:4", "1:5"))
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 4, res.Renamed)
	assert.Equal(t, 1, res.Unchanged)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, Stats{"item": 2}, res.Stats)
	assert.Equal(t, Preview{NodeID: "1:2", OldName: "Frame 2", NewName: "item"}, res.Changes[0])

	again, err := d.Rename(context.Background(), []*design.Node{top})
	require.NoError(t, err)
	assert.Empty(t, again.Changes)
	assert.Equal(t, 0, again.Renamed)
	assert.Equal(t, 5, again.Unchanged)
}

func TestRename_SecondPassStableForEveryConvention(t *testing.T) {
	t.Parallel()

	for _, c := range naming.Conventions {
		for _, casing := range []naming.Casing{naming.CasingKebab, naming.CasingPascal} {
			doc, _ := e2eDocument()
			gen := naming.NewGenerator(casing, c, naming.Preferences{}, nil)
			d := NewDriver(gen, nil)

			_, err := d.Rename(context.Background(), doc.TopLevel())
			require.NoError(t, err)
			second, err := d.Rename(context.Background(), doc.TopLevel())
			require.NoError(t, err)
			assert.Empty(t, second.Changes, "%s/%s", c, casing)
		}
	}
}

func TestPreview_DoesNotMutate(t *testing.T) {
	t.Parallel()

	doc, top := e2eDocument()
	d := kebabAtomic(t, Filters{})

	preview, err := d.Preview(context.Background(), []*design.Node{top})
	require.NoError(t, err)
	assert.Equal(t, []string{"Desktop", "Frame 2", "Text", "Frame 3", "Text"},
		names(doc, "1:1", "1:2", "1:3", "1:4", "1:5"))
	require.Len(t, preview.Changes, 4)

	applied, err := d.Rename(context.Background(), []*design.Node{top})
	require.NoError(t, err)
	assert.Equal(t, preview.Changes, applied.Changes)
}

func TestRename_SelectionErrors(t *testing.T) {
	t.Parallel()

	d := kebabAtomic(t, Filters{SkipLocked: true})

	_, err := d.Rename(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSelection)

	locked := design.NewNode("9", design.KindFrame, "Frame 1")
	locked.Locked = true
	locked.Append(design.NewNode("10", design.KindText, "Text"))
	_, err = d.Rename(context.Background(), []*design.Node{locked})
	assert.ErrorIs(t, err, ErrNothingToRename)
	assert.Equal(t, "Frame 1", locked.Name)
}

func TestRename_DesignSystemUntouched(t *testing.T) {
	t.Parallel()

	inner := label("2:3", "Text", "Buy")
	comp := design.NewNode("2:2", design.KindComponent, "Button/Primary").Append(inner)
	inst := design.NewNode("2:4", design.KindInstance, "Icon").Append(label("2:5", "Text", "x"))
	wrap := design.NewNode("2:1", design.KindFrame, "Frame 1").Append(comp, inst)
	page := design.NewNode("0:1", design.KindPage, "Page").Append(design.NewNode("2:0", design.KindFrame, "Top").Append(wrap))
	doc := design.NewDocument("ds", page)

	d := kebabAtomic(t, Filters{})
	res, err := d.Rename(context.Background(), doc.TopLevel())
	require.NoError(t, err)

	assert.Equal(t, []string{"Button/Primary", "Text", "Icon", "Text"}, names(doc, "2:2", "2:3", "2:4", "2:5"))
	assert.Equal(t, "item", wrap.Name, "component children are not frames")
	assert.Equal(t, 2, res.Total)

	// Selecting inside a component directly still leaves it alone.
	_, err = d.Rename(context.Background(), []*design.Node{inner})
	assert.ErrorIs(t, err, ErrNothingToRename)
}

func TestCollect_Filters(t *testing.T) {
	t.Parallel()

	hidden := design.NewNode("3:2", design.KindFrame, "Frame 9")
	hidden.Visible = false
	hidden.Append(design.NewNode("3:3", design.KindText, "Text 1"))

	custom := design.NewNode("3:4", design.KindFrame, "Hero").Append(design.NewNode("3:5", design.KindRectangle, "Rectangle 2"))
	logo := design.NewNode("3:6", design.KindFrame, "Logo").Append(design.NewNode("3:7", design.KindVector, "Vector"))
	top := design.NewNode("3:1", design.KindFrame, "Desktop").Append(hidden, custom, logo)
	page := design.NewNode("0:1", design.KindPage, "Page").Append(top)
	design.NewDocument("f", page)

	ids := func(nodes []*design.Node) []string {
		var out []string
		for _, n := range nodes {
			out = append(out, n.ID)
		}
		return out
	}

	all := Collect([]*design.Node{page}, nil)
	assert.Equal(t, []string{"3:1", "3:2", "3:3", "3:4", "3:5", "3:6", "3:7"}, ids(all))

	f, err := NewFilter(Filters{SkipHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"3:1", "3:4", "3:5", "3:6", "3:7"}, ids(Collect([]*design.Node{top}, f)))

	f, err = NewFilter(Filters{OnlyDefaultNames: true})
	require.NoError(t, err)
	assert.Empty(t, Collect([]*design.Node{top}, f), "non-default top-level prunes everything below")
	assert.Equal(t, []string{"3:2", "3:3"}, ids(Collect([]*design.Node{hidden, custom}, f)))

	f, err = NewFilter(Filters{Ignore: []string{"Desktop/Logo", "**/Rectangle*"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"3:1", "3:2", "3:3", "3:4"}, ids(Collect([]*design.Node{top}, f)))

	assert.Equal(t, []string{"3:4", "3:5", "3:1", "3:2", "3:3", "3:6", "3:7"},
		ids(Collect([]*design.Node{custom, top, custom.Children[0]}, nil)))
}

func TestNewFilter_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFilter(Filters{Ignore: []string{"[unclosed"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore pattern")
}

func TestIsDefaultName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Frame", "Frame 1", "Rectangle 42", "Text", "Instance 3", "Line7"} {
		assert.True(t, IsDefaultName(name), name)
	}
	for _, name := range []string{"frame 1", "Hero", "Frame 1 copy", "Button 2", ""} {
		assert.False(t, IsDefaultName(name), name)
	}
}

type panicResolver struct{}

func (panicResolver) ResolveTextStyle(context.Context, string) (string, bool) {
	panic("style registry exploded")
}

func TestRename_FailureIsolation(t *testing.T) {
	t.Parallel()

	bad := label("4:2", "Text", "bad")
	bad.Text.StyleID = "S:boom,1:1"
	good := design.NewNode("4:3", design.KindRectangle, "Rectangle 1")
	top := design.NewNode("4:1", design.KindFrame, "Frame 1").Append(bad, good)
	design.NewDocument("p", design.NewNode("0:1", design.KindPage, "Page").Append(design.NewNode("4:0", design.KindFrame, "Top").Append(top)))

	gen := naming.NewGenerator(naming.CasingKebab, naming.ConventionAtomic, naming.Preferences{}, panicResolver{})
	res, err := NewDriver(gen, nil, WithVerbose(true)).Rename(context.Background(), []*design.Node{top})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, "Text", bad.Name)
	assert.Equal(t, "shape", good.Name)
	assert.Equal(t, "item", top.Name)
}

type stubResolver map[string]string

func (s stubResolver) ResolveTextStyle(_ context.Context, id string) (string, bool) {
	name, ok := s[id]
	return name, ok
}

func TestRename_SkipSignal(t *testing.T) {
	t.Parallel()

	styled := label("5:2", "Body/Regular", "copy")
	styled.Text.StyleID = "S:body,1:1"
	frame := design.NewNode("5:1", design.KindFrame, "item").Append(styled)
	design.NewDocument("s", design.NewNode("0:1", design.KindPage, "Page").Append(design.NewNode("5:0", design.KindFrame, "Top").Append(frame)))

	gen := naming.NewGenerator(naming.CasingKebab, naming.ConventionAtomic, naming.Preferences{}, stubResolver{"S:body,1:1": "Body/Regular"})
	res, err := NewDriver(gen, nil).Rename(context.Background(), []*design.Node{frame})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Unchanged)
	assert.Equal(t, 0, res.Renamed)
}

func TestStats_Record(t *testing.T) {
	t.Parallel()

	s := Stats{}
	for _, name := range []string{"text/hello", "icon/shape", "img", "Item", "container", "section.hero", "block", "btn", "textshape"} {
		s.record(name)
	}
	assert.Equal(t, Stats{"text": 2, "shape": 1, "img": 1, "item": 1, "container": 1, "section": 1, "block": 1}, s)
}

func TestRename_WithOptions(t *testing.T) {
	t.Parallel()

	doc, top := e2eDocument()
	opts := &naming.Options{Prefix: "ui-", Sequence: &naming.Sequence{Start: 1, Padding: 2, Position: naming.NumberSuffix}}
	d := kebabAtomic(t, Filters{}, WithOptions(opts))

	_, err := d.Rename(context.Background(), []*design.Node{top})
	require.NoError(t, err)
	assert.Equal(t, []string{"ui-Desktop-01", "ui-item-02", "ui-label-1-03", "ui-item-04", "ui-label-2-05"},
		names(doc, "1:1", "1:2", "1:3", "1:4", "1:5"))
}

func TestCommit(t *testing.T) {
	t.Parallel()

	doc, _ := e2eDocument()
	comp := design.NewNode("1:9", design.KindComponent, "Button")
	page := doc.Pages()[0]
	page.Append(comp)
	doc.Reindex()

	res := Commit(doc, []Preview{
		{NodeID: "1:2", OldName: "Frame 2", NewName: "item"},
		{NodeID: "1:4", OldName: "Frame 3", NewName: "Frame 3"},
		{NodeID: "gone", OldName: "x", NewName: "y"},
		{NodeID: "1:9", OldName: "Button", NewName: "btn"},
	})

	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, []string{"gone"}, res.Missing)
	assert.Equal(t, []string{"1:9"}, res.Protected)
	assert.Equal(t, []string{"item", "Frame 3", "Button"}, names(doc, "1:2", "1:4", "1:9"))
}

// instanceDocument is Page > Frame "Top" > Instance "Button" holding a
// rectangle and a frame with a text child.
func instanceDocument() *design.Document {
	bg := design.NewNode("9:2", design.KindRectangle, "Icon Close")
	inner := design.NewNode("9:3", design.KindFrame, "Icon Open")
	inner.Layout.Mode = design.LayoutVertical
	inner.Append(label("9:4", "Text", "Label"))
	inst := design.NewNode("9:1", design.KindInstance, "Button").Append(bg, inner)
	top := design.NewNode("1:1", design.KindFrame, "Top").Append(inst)
	page := design.NewNode("0:1", design.KindPage, "Page 1").Append(top)
	return design.NewDocument("instance", page)
}

func TestProtected_LayersInsideInstanceSelectedByID(t *testing.T) {
	t.Parallel()

	doc := instanceDocument()
	d := kebabAtomic(t, Filters{})

	for _, id := range []string{"9:2", "9:3", "9:4"} {
		roots, err := doc.Select([]string{id})
		require.NoError(t, err)

		_, err = d.Rename(context.Background(), roots)
		assert.ErrorIs(t, err, ErrNothingToRename, id)

		_, err = d.Structure(roots, true)
		assert.ErrorIs(t, err, ErrNothingToRename, id)
	}

	roots, err := doc.Select([]string{"9:2", "9:3"})
	require.NoError(t, err)
	_, err = d.Group(roots, true)
	assert.ErrorIs(t, err, ErrNoGroups)

	res := Commit(doc, []Preview{
		{NodeID: "9:2", OldName: "Icon Close", NewName: "hacked"},
		{NodeID: "9:4", OldName: "Text", NewName: "label"},
	})
	assert.Equal(t, 0, res.Applied)
	assert.Equal(t, []string{"9:2", "9:4"}, res.Protected)
	assert.Equal(t, []string{"Icon Close", "Icon Open", "Text"}, names(doc, "9:2", "9:3", "9:4"))
}

type countingReporter struct {
	started, processed, completed int
}

func (c *countingReporter) OnStart(total int)           { c.started = total }
func (c *countingReporter) OnNodeProcessed(*design.Node) { c.processed++ }
func (c *countingReporter) OnComplete(*Result)           { c.completed++ }

func TestRename_Progress(t *testing.T) {
	t.Parallel()

	_, top := e2eDocument()
	rep := &countingReporter{}
	d := kebabAtomic(t, Filters{}, WithProgress(rep))

	_, err := d.Preview(context.Background(), []*design.Node{top})
	require.NoError(t, err)
	assert.Equal(t, 5, rep.started)
	assert.Equal(t, 5, rep.processed)
	assert.Equal(t, 1, rep.completed)
}
