package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mvp-joe/layerlint/internal/rename"
)

// printResult writes a human summary of a batch.
func printResult(w io.Writer, verb string, r *rename.Result, showChanges bool) {
	if showChanges {
		printChanges(w, r.Changes)
	}

	fmt.Fprintf(w, "✓ %s %d of %d layers", verb, r.Renamed, r.Total)
	var extra []string
	if r.Unchanged > 0 {
		extra = append(extra, fmt.Sprintf("%d unchanged", r.Unchanged))
	}
	if r.Skipped > 0 {
		extra = append(extra, fmt.Sprintf("%d skipped", r.Skipped))
	}
	if r.Failed > 0 {
		extra = append(extra, fmt.Sprintf("%d failed", r.Failed))
	}
	if len(extra) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(extra, ", "))
	}
	fmt.Fprintln(w)

	if len(r.Stats) > 0 {
		fmt.Fprintf(w, "  %s\n", formatStats(r.Stats))
	}
	if len(r.Groups) > 0 {
		fmt.Fprintf(w, "  Groups: %s\n", strings.Join(r.Groups, ", "))
	}
}

func printChanges(w io.Writer, changes []rename.Preview) {
	width := 0
	for _, c := range changes {
		if n := len([]rune(c.OldName)); n > width {
			width = n
		}
	}
	for _, c := range changes {
		pad := width - len([]rune(c.OldName))
		fmt.Fprintf(w, "  %-8s %s%s  →  %s\n", c.NodeID, c.OldName, strings.Repeat(" ", pad), c.NewName)
	}
}

// formatStats renders the histogram sorted by count, then category.
func formatStats(stats rename.Stats) string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if stats[keys[i]] != stats[keys[j]] {
			return stats[keys[i]] > stats[keys[j]]
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, stats[k]))
	}
	return strings.Join(parts, ", ")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
