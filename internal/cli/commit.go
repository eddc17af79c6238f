package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/plans"
	"github.com/mvp-joe/layerlint/internal/rename"
)

// commitCmd represents the commit command
var commitCmd = &cobra.Command{
	Use:   "commit <plan-id>",
	Short: "Apply a saved preview plan to its document",
	Long: `Commit applies the renames stored by "layerlint preview --save".

Each change is matched to its layer by node ID. Layers deleted since the
preview are reported and skipped; the rest of the plan is still applied.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, nil)
		if err != nil {
			return err
		}
		res, err := runCommit(e, args[0])
		if err != nil {
			return err
		}
		printCommit(e, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
}

// runCommit applies plan id and marks it committed.
func runCommit(e *env, id string) (*rename.CommitResult, error) {
	store, err := plans.OpenDir(e.cfg.PlansPath(e.root))
	if err != nil {
		return nil, err
	}
	defer store.Close()

	plan, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	if plan.Committed() {
		return nil, fmt.Errorf("%w: %s", plans.ErrPlanCommitted, id)
	}

	lock, err := design.LockFile(plan.Document)
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	doc, err := design.Load(plan.Document)
	if err != nil {
		return nil, err
	}
	res := rename.Commit(doc, plan.Changes)
	if res.Applied > 0 {
		if err := doc.Save(plan.Document); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", plan.Document, err)
		}
	}
	if err := store.MarkCommitted(id, time.Now().UTC()); err != nil {
		return nil, err
	}
	return res, nil
}

func printCommit(e *env, res *rename.CommitResult) {
	fmt.Fprintf(e.out, "✓ Applied %d renames\n", res.Applied)
	if len(res.Missing) > 0 {
		fmt.Fprintf(e.out, "  %d layers no longer exist: %s\n", len(res.Missing), strings.Join(res.Missing, ", "))
	}
	if len(res.Protected) > 0 {
		fmt.Fprintf(e.out, "  %d layers are now design-system components: %s\n", len(res.Protected), strings.Join(res.Protected, ", "))
	}
}
