package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/layerlint/internal/design"
)

// Test Plan for Layer Audit:
// - Scan counts descendants of the roots by check and never enters instances
// - Select returns the matching layers in document order for every check
// - ParseCheck accepts known names case-insensitively and rejects others
// - HiddenLayers counts locked hidden layers separately and ignores instance internals
// - EmptyFrames and RedundantWrappers report containers by child count, pruning locked subtrees
// - CheckQuality scores default names, font sizes, touch targets and detached text styles
// - Hidden layers drop out of the score when requested
// - Run rejects an empty selection and combines every check

// auditDocument builds:
//
//	Page 1
//	└ Screen
//	  ├ Frame 1            (empty)
//	  ├ Group 2            (hidden) > Rectangle 4
//	  ├ Title              (text, 10px, no style)
//	  ├ Login Button       (120x32) > Label (text, 16px, styled)
//	  ├ Icon               (instance) > Rectangle 9 (hidden)
//	  ├ Locked             (locked, hidden, empty)
//	  └ L1 > L2 > L3 > L4 > Deep (text, default size, no style)
func auditDocument() *design.Document {
	group := design.NewNode("1:3", design.KindGroup, "Group 2")
	group.Visible = false
	group.Append(design.NewNode("1:4", design.KindRectangle, "Rectangle 4"))

	title := design.NewNode("1:5", design.KindText, "Title")
	title.Text.FontSize = 10

	label := design.NewNode("1:7", design.KindText, "Label")
	label.Text.FontSize = 16
	label.Text.StyleID = "S:body,1:2"
	button := design.NewNode("1:6", design.KindFrame, "Login Button").Append(label)
	button.Width, button.Height = 120, 32

	hiddenInInstance := design.NewNode("1:9", design.KindRectangle, "Rectangle 9")
	hiddenInInstance.Visible = false
	icon := design.NewNode("1:8", design.KindInstance, "Icon").Append(hiddenInInstance)

	locked := design.NewNode("1:10", design.KindFrame, "Locked")
	locked.Locked = true
	locked.Visible = false

	deep := design.NewNode("1:14", design.KindFrame, "L4").Append(design.NewNode("1:15", design.KindText, "Deep"))
	l3 := design.NewNode("1:13", design.KindFrame, "L3").Append(deep)
	l2 := design.NewNode("1:12", design.KindFrame, "L2").Append(l3)
	l1 := design.NewNode("1:11", design.KindFrame, "L1").Append(l2)

	screen := design.NewNode("1:1", design.KindFrame, "Screen").Append(
		design.NewNode("1:2", design.KindFrame, "Frame 1"),
		group, title, button, icon, locked, l1,
	)
	return design.NewDocument("audit", design.NewNode("0:1", design.KindPage, "Page 1").Append(screen))
}

func ids(nodes []*design.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestScan(t *testing.T) {
	t.Parallel()

	doc := auditDocument()
	stats := Scan(doc.Pages())

	assert.Equal(t, Stats{Total: 14, Hidden: 2, Locked: 1, Unnamed: 3, Empty: 2, DeeplyNested: 2}, stats)
}

func TestScan_RootsAreNotCounted(t *testing.T) {
	t.Parallel()

	empty := design.NewNode("1:1", design.KindFrame, "Frame 1")
	assert.Equal(t, Stats{}, Scan([]*design.Node{empty}))
}

func TestSelect(t *testing.T) {
	t.Parallel()

	doc := auditDocument()
	tests := []struct {
		check Check
		want  []string
	}{
		{CheckHidden, []string{"1:3", "1:10"}},
		{CheckLocked, []string{"1:10"}},
		{CheckUnnamed, []string{"1:2", "1:3", "1:4"}},
		{CheckEmpty, []string{"1:2", "1:10"}},
		{CheckDeeplyNested, []string{"1:14", "1:15"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.check), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Select(doc.Pages(), tt.check)))
		})
	}
}

func TestParseCheck(t *testing.T) {
	t.Parallel()

	c, err := ParseCheck(" Deeply-Nested ")
	require.NoError(t, err)
	assert.Equal(t, CheckDeeplyNested, c)

	_, err = ParseCheck("contrast")
	assert.ErrorIs(t, err, ErrUnknownCheck)
}

func TestHiddenLayers(t *testing.T) {
	t.Parallel()

	doc := auditDocument()
	hidden, locked := HiddenLayers(doc.Pages())
	assert.Equal(t, []string{"1:3"}, ids(hidden))
	assert.Equal(t, 1, locked)

	inside, err := doc.Lookup("1:9")
	require.NoError(t, err)
	hidden, locked = HiddenLayers([]*design.Node{inside})
	assert.Empty(t, hidden)
	assert.Zero(t, locked)
}

func TestEmptyFramesAndRedundantWrappers(t *testing.T) {
	t.Parallel()

	doc := auditDocument()
	assert.Equal(t, []string{"1:2", "1:10"}, ids(EmptyFrames(doc.Pages())))
	assert.Equal(t, []string{"1:3", "1:6", "1:11", "1:12", "1:13", "1:14"}, ids(RedundantWrappers(doc.Pages())))
}

func TestRun(t *testing.T) {
	t.Parallel()

	_, err := Run(nil, Options{})
	assert.ErrorIs(t, err, ErrNoSelection)

	doc := auditDocument()
	report, err := Run(doc.Pages(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 14, report.Stats.Total)
	assert.Equal(t, Finding{Count: 1, NodeIDs: []string{"1:3"}, Locked: 1}, report.HiddenLayers)
	assert.Equal(t, 2, report.EmptyFrames.Count)
	assert.Equal(t, 6, report.RedundantWrappers.Count)
	require.NotNil(t, report.Quality)
	assert.Equal(t, 30, report.Quality.HealthScore)
}
