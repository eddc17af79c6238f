// Package rename runs naming over a selection of layers: it collects and
// filters nodes, names each one independently, and either applies the new
// names or returns them as a preview.
package rename

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/naming"
)

var (
	// ErrNoSelection indicates an empty selection.
	ErrNoSelection = errors.New("no layers selected")

	// ErrNothingToRename indicates every selected layer was filtered out.
	ErrNothingToRename = errors.New("no renameable layers found (check your filters)")
)

// Preview is one staged rename.
type Preview struct {
	NodeID  string `json:"nodeId"`
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

// Stats is a histogram of renamed layers by category.
type Stats map[string]int

// statCategories are checked in order; a name lands in the first category it contains.
var statCategories = []string{"text", "shape", "img", "item", "container", "section", "block"}

func (s Stats) record(name string) {
	lower := strings.ToLower(name)
	for _, c := range statCategories {
		if strings.Contains(lower, c) {
			s[c]++
			return
		}
	}
}

// Result summarizes one batch.
type Result struct {
	// Total is the number of layers collected after filtering.
	Total int `json:"total"`
	// Renamed counts layers whose name changed, or would change in a preview.
	Renamed   int `json:"renamed"`
	Unchanged int `json:"unchanged"`
	// Skipped counts layers the generator chose to leave out.
	Skipped int       `json:"skipped"`
	Failed  int       `json:"failed"`
	Stats   Stats     `json:"stats"`
	Changes []Preview `json:"changes"`
	// Groups lists the prefixes found by smart grouping.
	Groups []string `json:"groups,omitempty"`
}

func newResult(total int) *Result {
	return &Result{Total: total, Stats: Stats{}, Changes: []Preview{}}
}

// Driver runs batches with one generator and filter.
type Driver struct {
	gen      *naming.Generator
	filter   *Filter
	opts     *naming.Options
	progress ProgressReporter
	verbose  bool
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithOptions post-processes every generated name.
func WithOptions(opts *naming.Options) DriverOption {
	return func(d *Driver) { d.opts = opts }
}

// WithProgress reports batch progress to p.
func WithProgress(p ProgressReporter) DriverOption {
	return func(d *Driver) {
		if p != nil {
			d.progress = p
		}
	}
}

// WithVerbose logs every per-layer failure.
func WithVerbose(v bool) DriverOption {
	return func(d *Driver) { d.verbose = v }
}

// NewDriver creates a Driver. A nil filter skips nothing.
func NewDriver(gen *naming.Generator, filter *Filter, opts ...DriverOption) *Driver {
	d := &Driver{gen: gen, filter: filter, progress: NoOpProgressReporter{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Rename names every collected layer under roots and writes the names that changed.
func (d *Driver) Rename(ctx context.Context, roots []*design.Node) (*Result, error) {
	return d.run(ctx, roots, true)
}

// Preview computes the same changes as Rename without writing them.
func (d *Driver) Preview(ctx context.Context, roots []*design.Node) (*Result, error) {
	return d.run(ctx, roots, false)
}

func (d *Driver) run(ctx context.Context, roots []*design.Node, apply bool) (*Result, error) {
	if len(roots) == 0 {
		return nil, ErrNoSelection
	}
	nodes := Collect(roots, d.filter)
	if len(nodes) == 0 {
		return nil, ErrNothingToRename
	}

	result := newResult(len(nodes))
	d.progress.OnStart(len(nodes))
	for i, n := range nodes {
		d.process(ctx, n, i, apply, result)
		d.progress.OnNodeProcessed(n)
	}
	d.progress.OnComplete(result)

	if result.Failed > 0 {
		log.Printf("Warning: %d of %d layers could not be named", result.Failed, result.Total)
	}
	return result, nil
}

func (d *Driver) process(ctx context.Context, n *design.Node, index int, apply bool, result *Result) {
	oldName := n.Name
	name, ok, err := d.nameFor(ctx, n, index)
	switch {
	case err != nil:
		result.Failed++
		if d.verbose {
			log.Printf("Warning: skipping layer %s (%s): %v", n.ID, oldName, err)
		}
		return
	case !ok:
		result.Skipped++
		return
	case name == oldName:
		result.Unchanged++
		return
	}

	if apply {
		n.Name = name
	}
	result.Renamed++
	result.Stats.record(name)
	result.Changes = append(result.Changes, Preview{NodeID: n.ID, OldName: oldName, NewName: name})
}

// nameFor isolates one layer: a panic while reading a malformed node becomes an error.
func (d *Driver) nameFor(ctx context.Context, n *design.Node, index int) (name string, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("naming panicked: %v", r)
		}
	}()

	name, ok = d.gen.Name(ctx, n)
	if ok && !d.opts.Empty() && !naming.IsDesignSystemComponent(n) {
		name = d.opts.Apply(name, index)
	}
	return name, ok, nil
}

// CommitResult reports how a staged plan was applied.
type CommitResult struct {
	Applied int `json:"applied"`
	// Missing lists node IDs that no longer exist in the document.
	Missing []string `json:"missing"`
	// Protected lists node IDs that are, or now sit inside, design-system layers.
	Protected []string `json:"protected"`
}

// Commit applies staged changes, re-resolving each node ID against doc. Nodes
// that disappeared are reported and skipped; the rest are written one by one.
func Commit(doc *design.Document, changes []Preview) *CommitResult {
	res := &CommitResult{Missing: []string{}, Protected: []string{}}
	for _, c := range changes {
		n, err := doc.Lookup(c.NodeID)
		if err != nil {
			res.Missing = append(res.Missing, c.NodeID)
			continue
		}
		if naming.IsProtected(n) {
			res.Protected = append(res.Protected, c.NodeID)
			continue
		}
		if n.Name != c.NewName {
			n.Name = c.NewName
			res.Applied++
		}
	}
	return res
}
