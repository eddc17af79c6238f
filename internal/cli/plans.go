package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/layerlint/internal/plans"
)

var plansJSON bool

// plansCmd represents the plans command
var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Manage saved preview plans",
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved plans, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, nil)
		if err != nil {
			return err
		}
		return withPlanStore(e, func(store *plans.Store) error {
			list, err := store.List()
			if err != nil {
				return err
			}
			if plansJSON {
				return printJSON(e.out, list)
			}
			printPlans(e, list)
			return nil
		})
	},
}

var plansShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Show the changes stored in a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, nil)
		if err != nil {
			return err
		}
		return withPlanStore(e, func(store *plans.Store) error {
			plan, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if plansJSON {
				return printJSON(e.out, plan)
			}
			fmt.Fprintf(e.out, "Plan %s (%s, %s)\n", plan.ID, plan.Convention, plan.Casing)
			fmt.Fprintf(e.out, "Document: %s\n", plan.Document)
			printChanges(e.out, plan.Changes)
			return nil
		})
	},
}

var plansDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Delete a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, nil)
		if err != nil {
			return err
		}
		return withPlanStore(e, func(store *plans.Store) error {
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "✓ Deleted plan %s\n", args[0])
			return nil
		})
	},
}

func init() {
	plansCmd.PersistentFlags().BoolVar(&plansJSON, "json", false, "print as JSON")
	plansCmd.AddCommand(plansListCmd, plansShowCmd, plansDeleteCmd)
	rootCmd.AddCommand(plansCmd)
}

func withPlanStore(e *env, fn func(*plans.Store) error) error {
	store, err := plans.OpenDir(e.cfg.PlansPath(e.root))
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func printPlans(e *env, list []*plans.Plan) {
	if len(list) == 0 {
		fmt.Fprintln(e.out, "No saved plans")
		return
	}
	tw := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tCHANGES\tSTATUS\tDOCUMENT")
	for _, p := range list {
		status := "pending"
		if p.Committed() {
			status = "committed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", p.ID, p.CreatedAt.Local().Format("2006-01-02 15:04"), p.ChangeCount, status, p.Document)
	}
	tw.Flush()
}
