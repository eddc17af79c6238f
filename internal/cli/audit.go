package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/layerlint/internal/audit"
	"github.com/mvp-joe/layerlint/internal/design"
)

var (
	auditSelection    []string
	auditIgnoreHidden bool
	auditJSON         bool
	auditList         string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <document>",
	Short: "Report layer hygiene and quality problems without changing the document",
	Long: `Audit scans the selected layers (default: every page) and reports hidden,
locked, default-named, empty and deeply nested layers, single-child
wrappers, and a quality score covering default names, font sizes, touch
targets and text layers without a linked style.

Use --list <check> to print the layers matching one check: hidden, locked,
unnamed, empty or deeply-nested.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, nil)
		if err != nil {
			return err
		}
		path, err := e.documentPath(args[0])
		if err != nil {
			return err
		}
		ignoreHidden := e.cfg.Filters.SkipHidden
		if cmd.Flags().Changed("ignore-hidden") {
			ignoreHidden = auditIgnoreHidden
		}

		if auditList != "" {
			check, err := audit.ParseCheck(auditList)
			if err != nil {
				return err
			}
			nodes, err := runAuditList(path, auditSelection, check)
			if err != nil {
				return err
			}
			if auditJSON {
				return printJSON(e.out, nodeSummaries(nodes))
			}
			printNodeList(e.out, check, nodes)
			return nil
		}

		report, err := runAudit(path, auditSelection, ignoreHidden)
		if err != nil {
			return err
		}
		if auditJSON {
			return printJSON(e.out, report)
		}
		printAudit(e.out, report)
		return nil
	},
}

func init() {
	fl := auditCmd.Flags()
	fl.StringSliceVarP(&auditSelection, "select", "s", nil, "node IDs to audit (default: every page)")
	fl.BoolVar(&auditIgnoreHidden, "ignore-hidden", false, "leave hidden layers out of the quality score (default: filters.skip_hidden)")
	fl.BoolVar(&auditJSON, "json", false, "print the report as JSON")
	fl.StringVar(&auditList, "list", "", "list the layers matching one check instead of the full report")
	rootCmd.AddCommand(auditCmd)
}

// auditRoots resolves the selection, falling back to every page.
func auditRoots(path string, selection []string) ([]*design.Node, error) {
	doc, err := design.Load(path)
	if err != nil {
		return nil, err
	}
	if len(selection) == 0 {
		return doc.Pages(), nil
	}
	return doc.Select(selection)
}

func runAudit(path string, selection []string, ignoreHidden bool) (*audit.Report, error) {
	roots, err := auditRoots(path, selection)
	if err != nil {
		return nil, err
	}
	return audit.Run(roots, audit.Options{IgnoreHidden: ignoreHidden})
}

func runAuditList(path string, selection []string, check audit.Check) ([]*design.Node, error) {
	roots, err := auditRoots(path, selection)
	if err != nil {
		return nil, err
	}
	return audit.Select(roots, check), nil
}

type nodeSummary struct {
	NodeID string `json:"nodeId"`
	Name   string `json:"name"`
	Path   string `json:"path"`
}

func nodeSummaries(nodes []*design.Node) []nodeSummary {
	out := make([]nodeSummary, len(nodes))
	for i, n := range nodes {
		out[i] = nodeSummary{NodeID: n.ID, Name: n.Name, Path: n.Path()}
	}
	return out
}

func printNodeList(w io.Writer, check audit.Check, nodes []*design.Node) {
	if len(nodes) == 0 {
		fmt.Fprintf(w, "No %s layers found\n", check)
		return
	}
	fmt.Fprintf(w, "%d %s layers:\n", len(nodes), check)
	for _, n := range nodes {
		fmt.Fprintf(w, "  %-8s %s\n", n.ID, n.Path())
	}
}

func printAudit(w io.Writer, r *audit.Report) {
	s := r.Stats
	fmt.Fprintf(w, "Layers: %d (hidden %d, locked %d, unnamed %d, empty %d, deeply nested %d)\n",
		s.Total, s.Hidden, s.Locked, s.Unnamed, s.Empty, s.DeeplyNested)
	fmt.Fprintf(w, "Cleanup: %d hidden layers (%d locked), %d empty frames, %d redundant wrappers\n",
		r.HiddenLayers.Count, r.HiddenLayers.Locked, r.EmptyFrames.Count, r.RedundantWrappers.Count)

	q := r.Quality
	fmt.Fprintf(w, "Health score: %d%% (%d of %d checks passed)\n", q.HealthScore, q.PassedChecks, q.TotalChecks)
	for _, tip := range q.Tips {
		fmt.Fprintf(w, "  - %s\n", tip)
	}
}
