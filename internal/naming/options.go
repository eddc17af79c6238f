package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// Preset is a whole-name cleanup applied before other options.
type Preset string

const (
	PresetNone          Preset = ""
	PresetCleanDefaults Preset = "clean-defaults"
	PresetRemoveNumbers Preset = "remove-numbers"
	PresetCapitalize    Preset = "capitalize"
	PresetLowercase     Preset = "lowercase"
	PresetUppercase     Preset = "uppercase"
)

// Valid reports whether p is a known preset. The empty preset is valid.
func (p Preset) Valid() bool {
	switch p {
	case PresetNone, PresetCleanDefaults, PresetRemoveNumbers, PresetCapitalize, PresetLowercase, PresetUppercase:
		return true
	}
	return false
}

// NumberPosition places the sequence number before or after the name.
type NumberPosition string

const (
	NumberPrefix NumberPosition = "prefix"
	NumberSuffix NumberPosition = "suffix"
)

// FindReplace substitutes literal text in names.
type FindReplace struct {
	Find          string
	Replace       string
	CaseSensitive bool
}

// Sequence numbers names in batch order, starting at Start and zero-padded
// to Padding digits.
type Sequence struct {
	Start    int
	Padding  int
	Position NumberPosition
}

// Options are batch post-processing steps applied to each generated name, in
// order: preset, find/replace, prefix/suffix, sequence number.
type Options struct {
	Preset      Preset
	FindReplace *FindReplace
	Prefix      string
	Suffix      string
	Sequence    *Sequence
}

// Empty reports whether o would leave every name unchanged.
func (o *Options) Empty() bool {
	return o == nil || (o.Preset == PresetNone && o.FindReplace == nil && o.Prefix == "" && o.Suffix == "" && o.Sequence == nil)
}

var (
	cleanDefaultName = regexp.MustCompile(`(?i)^(Frame|Group|Rectangle|Ellipse|Vector|Component|Instance)\s*\d*$`)
	digitRun         = regexp.MustCompile(`\d+`)
	dashRun          = regexp.MustCompile(`[-_]+`)
	capitalizeSplit  = regexp.MustCompile(`[\s\-_]`)
)

// Apply runs the options over name. index is the zero-based batch position
// used for sequence numbering.
func (o *Options) Apply(name string, index int) string {
	if o == nil {
		return name
	}

	if o.Preset != PresetNone {
		name = ApplyPreset(name, o.Preset)
		if name == "" {
			name = fallbackName
		}
	}
	if o.FindReplace != nil && o.FindReplace.Find != "" {
		name = findReplace(name, *o.FindReplace)
	}
	name = o.Prefix + name + o.Suffix
	if o.Sequence != nil {
		name = o.Sequence.number(name, index)
	}
	return name
}

// ApplyPreset applies a single preset. clean-defaults returns "" for
// untouched tool-default names.
func ApplyPreset(name string, p Preset) string {
	switch p {
	case PresetCleanDefaults:
		if cleanDefaultName.MatchString(name) {
			return ""
		}
		return name
	case PresetRemoveNumbers:
		name = digitRun.ReplaceAllString(name, "")
		name = whitespaceRun.ReplaceAllString(name, " ")
		name = dashRun.ReplaceAllString(name, "-")
		return strings.TrimSpace(name)
	case PresetCapitalize:
		words := capitalizeSplit.Split(name, -1)
		for i, w := range words {
			if w != "" {
				words[i] = titleWord(w)
			}
		}
		return strings.Join(words, " ")
	case PresetLowercase:
		return strings.ToLower(name)
	case PresetUppercase:
		return strings.ToUpper(name)
	}
	return name
}

func findReplace(name string, fr FindReplace) string {
	if fr.CaseSensitive {
		return strings.ReplaceAll(name, fr.Find, fr.Replace)
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(fr.Find))
	return re.ReplaceAllLiteralString(name, fr.Replace)
}

func (s *Sequence) number(name string, index int) string {
	num := fmt.Sprintf("%0*d", max(s.Padding, 0), s.Start+index)
	if s.Position == NumberPrefix {
		return num + "-" + name
	}
	return name + "-" + num
}
