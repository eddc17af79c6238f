package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/naming"
	"github.com/mvp-joe/layerlint/internal/rename"
)

var (
	renameFlags   namingFlags
	renameOptions optionFlags
	renameShow    bool
)

// renameCmd represents the rename command
var renameCmd = &cobra.Command{
	Use:   "rename <document>",
	Short: "Rename layers in a design document",
	Long: `Rename infers a name for every selected layer and its descendants and
writes the result back to the document.

Layers linked to a design-system component are never renamed. Use
--select to limit the batch to specific node IDs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, &renameFlags)
		if err != nil {
			return err
		}
		opts, err := renameOptions.options()
		if err != nil {
			return err
		}
		path, err := e.documentPath(args[0])
		if err != nil {
			return err
		}

		result, err := runRename(cmd.Context(), e, path, renameFlags.selection, opts, true)
		if err != nil {
			return err
		}
		if !e.quiet {
			printResult(e.out, "Renamed", result, renameShow)
		}
		return nil
	},
}

func init() {
	renameFlags.register(renameCmd)
	renameOptions.register(renameCmd)
	renameCmd.Flags().BoolVar(&renameShow, "show", false, "list every change")
	rootCmd.AddCommand(renameCmd)
}

// runRename loads the document, renames the selection and saves the document
// when anything changed. With lock set it holds the document's write lock for
// the whole pass; watch mode takes the lock itself.
func runRename(ctx context.Context, e *env, path string, selection []string, opts *naming.Options, lock bool) (*rename.Result, error) {
	if lock {
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

	driver, closeFn, err := e.newDriver(opts)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	result, err := driver.Rename(ctx, roots)
	if err != nil {
		return nil, err
	}
	if result.Renamed > 0 {
		if err := doc.Save(path); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", path, err)
		}
	}
	return result, nil
}
