package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/config"
	"github.com/hupe1980/survivorpie/internal/logging"
	"github.com/hupe1980/survivorpie/internal/watch"
)

type watchOptions struct {
	selectionOptions

	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute the aggregate whenever the dataset changes",
		Long: `Watch monitors the dataset files and reloads them when they are written,
printing the Survived/Died split of the selection after every reload
together with how the counts moved since the previous one.

File changes are debounced to avoid rapid re-runs. A reload that fails
keeps the previously loaded rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts)
		},
	}

	registerSelectionFlags(cmd, &opts.selectionOptions)
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	sel, err := resolveSelection(cmd, cfg, &opts.selectionOptions)
	if err != nil {
		return err
	}

	engine, initial, err := loadEngine(ctx, cfg)
	if err != nil {
		return err
	}

	engine.SetSelection(sel)

	first := true

	runFn := func(fnCtx context.Context) (*watch.RunResult, error) {
		ds := initial

		// The initial run reuses the rows loaded above.
		if first {
			first = false
		} else {
			fresh, loadErr := loadDataset(fnCtx, cfg)
			if loadErr != nil {
				return nil, loadErr
			}

			ds = fresh
			engine.Load(ds.Rows)
		}

		return &watch.RunResult{
			Rows:      engine.Len(),
			Skipped:   ds.Skipped(),
			Aggregate: engine.Aggregate(),
		}, nil
	}

	watchOpts := watch.DefaultOptions()
	watchOpts.Files = cfg.DataPaths()
	watchOpts.Debounce = opts.debounce
	watchOpts.Logger = logging.FromContext(ctx)
	watchOpts.Out = cmd.ErrOrStderr()

	if err := watch.Run(ctx, watchOpts, runFn); err != nil {
		return runtimeError(err)
	}

	return nil
}
