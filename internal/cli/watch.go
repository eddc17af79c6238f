package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/layerlint/internal/watch"
)

var (
	watchFlags   namingFlags
	watchOptions optionFlags
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <document>",
	Short: "Rename layers now and again whenever the document changes",
	Long: `Watch renames the document once, then keeps watching it and runs
again after every change made by another tool. Changes are debounced
(watch.debounce_ms) and writes made by layerlint itself are ignored.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, &watchFlags)
		if err != nil {
			return err
		}
		opts, err := watchOptions.options()
		if err != nil {
			return err
		}
		path, err := e.documentPath(args[0])
		if err != nil {
			return err
		}
		// Progress bars would interleave with the pass summaries.
		e.quiet = true

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		files, err := watch.NewFileWatcher(path, e.cfg.Debounce())
		if err != nil {
			return err
		}
		runner := watch.NewRunner(path, files, func(ctx context.Context) error {
			result, err := runRename(ctx, e, path, watchFlags.selection, opts, false)
			if err != nil {
				return err
			}
			printResult(e.out, "Renamed", result, false)
			return nil
		})

		fmt.Fprintf(e.out, "Watching %s (Ctrl+C to stop)\n", path)
		if err := runner.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Fprintf(e.out, "Stopped after %d passes\n", runner.Passes())
		return nil
	},
}

func init() {
	watchFlags.register(watchCmd)
	watchOptions.register(watchCmd)
	rootCmd.AddCommand(watchCmd)
}
