package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/compare"
	"github.com/hupe1980/survivorpie/internal/config"
	"github.com/hupe1980/survivorpie/internal/filter"
)

type compareOptions struct {
	context  int
	exitCode bool
}

func newCompareCommand() *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare <left> <right>",
		Short: "Compare the survival split of two selections",
		Long: `Compare builds the reports of two selections over the same dataset and
prints the change in survival rate followed by a unified diff of the two
reports.

Each selection is a preset name, "all", or an inline filter such as
"sex=female class=1 embarked=C,Q age=0,unknown".`,
		Example: `  survivorpie compare women-first-class "sex=male pclass=3"
  survivorpie compare all children --context 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1], opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.context, "context", 3, "number of context lines in the diff")
	f.BoolVar(&opts.exitCode, "exit-code", false, "exit with code 1 when the reports differ")

	return cmd
}

func runCompare(cmd *cobra.Command, leftArg, rightArg string, opts *compareOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	left, err := filter.ResolveSelection(leftArg, cfg.Presets)
	if err != nil {
		return usageError(fmt.Errorf("left selection: %w", err))
	}

	right, err := filter.ResolveSelection(rightArg, cfg.Presets)
	if err != nil {
		return usageError(fmt.Errorf("right selection: %w", err))
	}

	engine, _, err := loadEngine(ctx, cfg)
	if err != nil {
		return err
	}

	// Empty labels make the diff headers show the selection summaries.
	c, err := compare.Compare(ctx, engine.Rows(), left, right, compare.DiffOptions{Context: opts.context})
	if err != nil {
		return runtimeError(err)
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, c.Summary())
	_, _ = fmt.Fprintln(w)

	compare.WriteDiff(w, c.Diff, !cfg.NoColor)

	if opts.exitCode && c.Diff.HasDifferences {
		return &ExitError{Code: 1, Err: fmt.Errorf("reports differ")}
	}

	return nil
}
