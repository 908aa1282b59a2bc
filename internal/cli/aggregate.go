package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/config"
	"github.com/hupe1980/survivorpie/internal/logging"
	"github.com/hupe1980/survivorpie/internal/report"
)

type aggregateOptions struct {
	selectionOptions

	format string
	output string
}

func newAggregateCommand() *cobra.Command {
	opts := &aggregateOptions{}

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Print the Survived/Died split of a selection",
		Long: `Aggregate loads the dataset, applies the selection given by the filter
flags (or a preset) and prints how many matching passengers survived and
died, with percentages and the number of rows each filter excluded.

Without any filter the whole dataset is aggregated.`,
		Example: `  survivorpie aggregate --sex female --pclass 1
  survivorpie aggregate --embarked C,Q --age 0,unknown --format json
  survivorpie aggregate --preset children -o children.md --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAggregate(cmd, opts)
		},
	}

	registerSelectionFlags(cmd, &opts.selectionOptions)
	registerFormatFlags(cmd, &opts.format, &opts.output)

	return cmd
}

func runAggregate(cmd *cobra.Command, opts *aggregateOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	sel, err := resolveSelection(cmd, cfg, &opts.selectionOptions)
	if err != nil {
		return err
	}

	engine, _, err := loadEngine(ctx, cfg)
	if err != nil {
		return err
	}

	r, err := report.Build(ctx, engine.Rows(), sel)
	if err != nil {
		return runtimeError(err)
	}

	logging.FromContext(ctx).Debug("aggregate computed",
		slog.String("filter", r.Filter),
		slog.Int("matched", r.Matched),
		slog.Int("rows", r.Rows),
	)

	return writeFormatted(cmd, opts.format, r, opts.output)
}
