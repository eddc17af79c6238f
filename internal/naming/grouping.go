package naming

import (
	"regexp"
	"strings"
)

var (
	pascalHead    = regexp.MustCompile(`^([A-Z][a-z]+)[A-Z]`)
	spaceHead     = regexp.MustCompile(`^([A-Za-z]+)\s+`)
	separatorHead = regexp.MustCompile(`^([A-Za-z]+)[-_]`)
	leadingSeps   = regexp.MustCompile(`^[-_\s]+`)
)

// PrefixGroup is a set of names sharing a leading word.
type PrefixGroup struct {
	Prefix string
	// Members are indexes into the slice passed to DetectPrefixGroups.
	Members []int
}

// ExtractPrefix returns the leading word of name: the head of a PascalCase
// run, the word before the first space, or the word before the first '-' or
// '_'. Existing slashes are ignored. It returns "" when there is none.
func ExtractPrefix(name string) string {
	name = slashRun.ReplaceAllString(name, "")
	for _, re := range []*regexp.Regexp{pascalHead, spaceHead, separatorHead} {
		if m := re.FindStringSubmatch(name); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractSuffix returns what follows prefix in name with leading separators
// removed and the first letter capitalized.
func ExtractSuffix(name, prefix string) string {
	name = slashRun.ReplaceAllString(name, "")
	if len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
		name = name[len(prefix):]
	}
	suffix := leadingSeps.ReplaceAllString(strings.TrimSpace(name), "")
	if suffix == "" {
		return ""
	}
	first := []rune(suffix)
	return strings.ToUpper(string(first[0])) + string(first[1:])
}

// GroupedName joins prefix and suffix in slash notation.
func GroupedName(prefix, suffix string) string {
	return prefix + " / " + suffix
}

// DetectPrefixGroups buckets names by ExtractPrefix. Only prefixes shared by
// at least two names form a group. Groups are ordered by first appearance.
func DetectPrefixGroups(names []string) []PrefixGroup {
	index := make(map[string]int)
	var groups []PrefixGroup
	for i, name := range names {
		prefix := ExtractPrefix(name)
		if prefix == "" {
			continue
		}
		gi, ok := index[prefix]
		if !ok {
			gi = len(groups)
			index[prefix] = gi
			groups = append(groups, PrefixGroup{Prefix: prefix})
		}
		groups[gi].Members = append(groups[gi].Members, i)
	}

	result := groups[:0]
	for _, g := range groups {
		if len(g.Members) >= 2 {
			result = append(result, g)
		}
	}
	return result
}
