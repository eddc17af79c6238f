package naming

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Casing is the surface form applied to generated base names.
type Casing string

const (
	// CasingPascal concatenates title-cased words: "hero image" -> "HeroImage".
	CasingPascal Casing = "pascal"
	// CasingKebab lowercases and hyphenates: "HeroImage" -> "hero-image".
	CasingKebab Casing = "kebab"
)

// Valid reports whether c is a supported casing.
func (c Casing) Valid() bool {
	return c == CasingPascal || c == CasingKebab
}

// ParseCasing converts a config or flag value into a Casing.
func ParseCasing(s string) (Casing, error) {
	c := Casing(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown casing %q (want kebab or pascal)", s)
	}
	return c, nil
}

var (
	camelBoundary   = regexp.MustCompile(`([a-z])([A-Z])`)
	kebabSeparators = regexp.MustCompile(`[\s_]+`)
)

// ApplyCasing normalizes text into the given casing. Any casing other than
// kebab is treated as pascal. Empty input is returned unchanged.
//
// Pascal splits before every uppercase letter as well as on separators, so a
// result never re-splits differently and applying the casing twice is a no-op.
func ApplyCasing(text string, c Casing) string {
	if text == "" {
		return text
	}
	if c == CasingKebab {
		return kebab(text)
	}
	return pascal(text)
}

func kebab(text string) string {
	s := camelBoundary.ReplaceAllString(text, "$1-$2")
	s = kebabSeparators.ReplaceAllString(s, "-")
	return strings.ToLower(s)
}

func pascal(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, word := range pascalWords(text) {
		b.WriteString(titleWord(word))
	}
	return b.String()
}

// pascalWords splits on '-', '_' and whitespace runs, and before each uppercase letter.
func pascalWords(text string) []string {
	var words []string
	start := -1
	for i, r := range text {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
		case unicode.IsUpper(r):
			if start >= 0 {
				words = append(words, text[start:i])
			}
			start = i
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// titleWord uppercases the first rune and lowercases the rest.
func titleWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError && size <= 1 {
		return strings.ToLower(w)
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}
