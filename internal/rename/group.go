package rename

import (
	"errors"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/naming"
)

// ErrNoGroups indicates no two selected layers share a name prefix.
var ErrNoGroups = errors.New(`no groupable layers found: names need a shared prefix (e.g. "Button Primary", "Button Secondary")`)

// Group renames selected layers that share a leading word into slash
// notation, "Button Primary" becoming "Button / Primary". Only the selected
// layers themselves are considered, never their descendants.
func (d *Driver) Group(roots []*design.Node, apply bool) (*Result, error) {
	if len(roots) == 0 {
		return nil, ErrNoSelection
	}

	var candidates []*design.Node
	for _, n := range roots {
		if naming.IsProtected(n) || d.filter.skipsState(n) {
			continue
		}
		candidates = append(candidates, n)
	}

	names := make([]string, len(candidates))
	for i, n := range candidates {
		names[i] = n.Name
	}
	groups := naming.DetectPrefixGroups(names)
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}

	result := newResult(0)
	for _, g := range groups {
		result.Groups = append(result.Groups, g.Prefix)
		for _, idx := range g.Members {
			n := candidates[idx]
			result.Total++
			suffix := naming.ExtractSuffix(n.Name, g.Prefix)
			if suffix == "" {
				result.Skipped++
				continue
			}
			name := naming.GroupedName(g.Prefix, suffix)
			if name == n.Name {
				result.Unchanged++
				continue
			}
			result.Changes = append(result.Changes, Preview{NodeID: n.ID, OldName: n.Name, NewName: name})
			result.Renamed++
			if apply {
				n.Name = name
			}
		}
	}
	return result, nil
}
