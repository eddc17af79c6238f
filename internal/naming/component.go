package naming

import (
	"regexp"
	"strings"
)

var (
	slashRun       = regexp.MustCompile(`\s*/\s*`)
	wordSeparators = regexp.MustCompile(`[-_]`)
)

// ToComponent rewrites name into design-library slash notation. The first
// word becomes the group and the remaining words the variant:
//
//	"ButtonPrimary" -> "Button / Primary"
//	"card-hero"     -> "Card / Hero"
//	"Solo"          -> "Solo"
func ToComponent(name string) string {
	normalized := slashRun.ReplaceAllString(name, " ")
	normalized = strings.TrimSpace(wordSeparators.ReplaceAllString(normalized, " "))
	normalized = camelBoundary.ReplaceAllString(normalized, "$1 $2")

	fields := strings.Fields(normalized)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		words = append(words, titleWord(f))
	}

	switch len(words) {
	case 0:
		return name
	case 1:
		return words[0]
	}
	return words[0] + " / " + strings.Join(words[1:], " ")
}
