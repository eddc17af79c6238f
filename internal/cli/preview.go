package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/naming"
	"github.com/mvp-joe/layerlint/internal/plans"
	"github.com/mvp-joe/layerlint/internal/rename"
)

var (
	previewFlags   namingFlags
	previewOptions optionFlags
	previewJSON    bool
	previewSave    bool
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview <document>",
	Short: "Show the names a rename would produce without changing the document",
	Long: `Preview runs the same batch as rename but leaves the document untouched.

With --save the changes are stored as a plan that "layerlint commit"
applies later, even after the document has been edited.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, &previewFlags)
		if err != nil {
			return err
		}
		opts, err := previewOptions.options()
		if err != nil {
			return err
		}
		path, err := e.documentPath(args[0])
		if err != nil {
			return err
		}

		result, err := runPreview(cmd.Context(), e, path, previewFlags.selection, opts)
		if err != nil {
			return err
		}

		var planID string
		if previewSave {
			planID, err = savePlan(e, path, result)
			if err != nil {
				return err
			}
		}

		if previewJSON {
			return printJSON(e.out, previewOutput{PlanID: planID, Result: result})
		}
		printResult(e.out, "Would rename", result, true)
		if planID != "" {
			fmt.Fprintf(e.out, "Saved plan %s (apply with: layerlint commit %s)\n", planID, planID)
		}
		return nil
	},
}

type previewOutput struct {
	PlanID string `json:"planId,omitempty"`
	*rename.Result
}

func init() {
	previewFlags.register(previewCmd)
	previewOptions.register(previewCmd)
	previewCmd.Flags().BoolVar(&previewJSON, "json", false, "print the preview as JSON")
	previewCmd.Flags().BoolVar(&previewSave, "save", false, "store the preview as a plan for a later commit")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(ctx context.Context, e *env, path string, selection []string, opts *naming.Options) (*rename.Result, error) {
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

	return driver.Preview(ctx, roots)
}

// savePlan stores a preview in the project's plan database.
func savePlan(e *env, path string, result *rename.Result) (string, error) {
	store, err := plans.OpenDir(e.cfg.PlansPath(e.root))
	if err != nil {
		return "", err
	}
	defer store.Close()

	return store.Save(&plans.Plan{
		Document:   path,
		Convention: string(e.cfg.Convention()),
		Casing:     string(e.cfg.Casing()),
		Changes:    result.Changes,
	})
}
