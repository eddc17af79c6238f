package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/rename"
)

var (
	groupFlags      namingFlags
	groupDryRun     bool
	structureFlags  namingFlags
	structureDryRun bool
)

// groupCmd represents the group command
var groupCmd = &cobra.Command{
	Use:   "group <document>",
	Short: "Group selected layers by shared name prefix",
	Long: `Group finds selected layers whose names share a leading word and
renames them into slash notation, so "Button Primary" and
"Button Secondary" become "Button / Primary" and "Button / Secondary".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLayoutCommand(cmd, args[0], &groupFlags, groupDryRun, "Grouped", (*rename.Driver).Group)
	},
}

// structureCmd represents the structure command
var structureCmd = &cobra.Command{
	Use:   "structure <document>",
	Short: "Name selected frames as sections and their child frames by role",
	Long: `Structure renames each selected frame with children to
"section.<name>" and each direct child frame to "<name>-<role>", where the
role (list-item, grid-item, row-item, card-item or item) follows the
parent's auto-layout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLayoutCommand(cmd, args[0], &structureFlags, structureDryRun, "Restructured", (*rename.Driver).Structure)
	},
}

func init() {
	groupFlags.register(groupCmd)
	groupCmd.Flags().BoolVar(&groupDryRun, "dry-run", false, "show the changes without writing the document")
	structureFlags.register(structureCmd)
	structureCmd.Flags().BoolVar(&structureDryRun, "dry-run", false, "show the changes without writing the document")
	rootCmd.AddCommand(groupCmd, structureCmd)
}

// layoutFunc is a whole-selection operation such as Group or Structure.
type layoutFunc func(d *rename.Driver, roots []*design.Node, apply bool) (*rename.Result, error)

func runLayoutCommand(cmd *cobra.Command, arg string, flags *namingFlags, dryRun bool, verb string, op layoutFunc) error {
	e, err := loadEnv(cmd, flags)
	if err != nil {
		return err
	}
	path, err := e.documentPath(arg)
	if err != nil {
		return err
	}
	result, err := runLayout(e, path, flags.selection, !dryRun, op)
	if err != nil {
		return err
	}
	if dryRun {
		verb = "Would change"
	}
	if !e.quiet {
		printResult(e.out, verb, result, true)
	}
	return nil
}

// runLayout applies op to the selection, saving the document when apply is
// set and something changed.
func runLayout(e *env, path string, selection []string, apply bool, op layoutFunc) (*rename.Result, error) {
	if apply {
		l, err := design.LockFile(path)
		if err != nil {
			return nil, err
		}
		defer l.Release()
	}

	doc, err := design.Load(path)
	if err != nil {
		return nil, err
	}
	roots, err := doc.Select(selection)
	if err != nil {
		return nil, err
	}

	driver, closeFn, err := e.newDriver(nil)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	result, err := op(driver, roots, apply)
	if err != nil {
		return nil, err
	}
	if apply && result.Renamed > 0 {
		if err := doc.Save(path); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", path, err)
		}
	}
	return result, nil
}
