package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Batch Options and Smart Grouping:
// - Each preset transforms names as documented
// - A preset that clears the name falls back to "layer"
// - Find/replace is literal, case-sensitive or not
// - Prefix, suffix and sequence numbers apply after find/replace
// - Sequence numbers are zero-padded and placed by position
// - Nil and zero options leave names alone
// - ExtractPrefix recognizes PascalCase, space and separator heads
// - ExtractSuffix strips the prefix and capitalizes the rest
// - DetectPrefixGroups keeps only prefixes shared by two or more names

func TestApplyPreset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		preset Preset
		in     string
		want   string
	}{
		{PresetCleanDefaults, "Frame 12", ""},
		{PresetCleanDefaults, "rectangle", ""},
		{PresetCleanDefaults, "Hero", "Hero"},
		{PresetRemoveNumbers, "Card 12 - v2__final", "Card - v-final"},
		{PresetCapitalize, "hello-big_WORLD now", "Hello Big World Now"},
		{PresetLowercase, "Hero Image", "hero image"},
		{PresetUppercase, "Hero Image", "HERO IMAGE"},
		{PresetNone, "Hero Image", "Hero Image"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ApplyPreset(tt.in, tt.preset), "%s(%q)", tt.preset, tt.in)
	}
}

func TestOptions_Apply(t *testing.T) {
	t.Parallel()

	var nilOpts *Options
	assert.Equal(t, "Hero", nilOpts.Apply("Hero", 3))
	assert.True(t, nilOpts.Empty())
	assert.True(t, (&Options{}).Empty())
	assert.Equal(t, "Hero", (&Options{}).Apply("Hero", 0))

	cleared := &Options{Preset: PresetCleanDefaults}
	assert.Equal(t, "layer", cleared.Apply("Group 4", 0))

	ci := &Options{FindReplace: &FindReplace{Find: "btn", Replace: "button"}}
	assert.Equal(t, "button-button", ci.Apply("BTN-btn", 0))

	cs := &Options{FindReplace: &FindReplace{Find: "btn", Replace: "button", CaseSensitive: true}}
	assert.Equal(t, "BTN-button", cs.Apply("BTN-btn", 0))

	meta := &Options{FindReplace: &FindReplace{Find: "(1)", Replace: "$1"}}
	assert.Equal(t, "copy $1", meta.Apply("copy (1)", 0))

	full := &Options{
		Preset:      PresetLowercase,
		FindReplace: &FindReplace{Find: "frame", Replace: "card"},
		Prefix:      "ui-",
		Suffix:      "-x",
		Sequence:    &Sequence{Start: 1, Padding: 3, Position: NumberSuffix},
	}
	assert.False(t, full.Empty())
	assert.Equal(t, "ui-card-x-001", full.Apply("Frame", 0))
	assert.Equal(t, "ui-card-x-012", full.Apply("Frame", 11))

	prefixed := &Options{Sequence: &Sequence{Start: 5, Position: NumberPrefix}}
	assert.Equal(t, "7-Row", prefixed.Apply("Row", 2))
}

func TestExtractPrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ButtonPrimary":     "Button",
		"Button Primary":    "Button",
		"button-primary":    "button",
		"card_hero":         "card",
		"Button / Primary":  "Button",
		"Solo":              "",
		"42 Items":          "",
		"ABTest":            "",
		"CardProduct Large": "Card",
	}

	for in, want := range tests {
		assert.Equal(t, want, ExtractPrefix(in), "input %q", in)
	}
}

func TestExtractSuffix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Primary", ExtractSuffix("ButtonPrimary", "Button"))
	assert.Equal(t, "Primary", ExtractSuffix("button - primary", "Button"))
	assert.Equal(t, "Large", ExtractSuffix("Card_large", "Card"))
	assert.Equal(t, "", ExtractSuffix("Button", "Button"))
	assert.Equal(t, "Button / Primary", GroupedName("Button", "Primary"))
}

func TestDetectPrefixGroups(t *testing.T) {
	t.Parallel()

	names := []string{"ButtonPrimary", "Card Hero", "Button Secondary", "Solo", "button-ghost", "Card_small", "Icon close"}
	groups := DetectPrefixGroups(names)

	assert.Equal(t, []PrefixGroup{
		{Prefix: "Button", Members: []int{0, 2}},
		{Prefix: "Card", Members: []int{1, 5}},
	}, groups)

	assert.Empty(t, DetectPrefixGroups([]string{"Solo", "Alone"}))
	assert.Empty(t, DetectPrefixGroups(nil))
}
