package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/config"
	"github.com/hupe1980/survivorpie/internal/report"
)

type rangesOptions struct {
	format string
	output string
	counts bool
}

func newRangesCommand() *cobra.Command {
	opts := &rangesOptions{}

	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "List the age ranges",
		Long: `Ranges prints the age bins accepted by --age. A bin can be addressed by
its index, its key or its label.

With --counts the dataset is loaded and every bin shows how many of its
passengers survived and died.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRanges(cmd, opts)
		},
	}

	registerFormatFlags(cmd, &opts.format, &opts.output)
	cmd.Flags().BoolVar(&opts.counts, "counts", false, "load the dataset and show survival per range")

	return cmd
}

func runRanges(cmd *cobra.Command, opts *rangesOptions) error {
	ctx := cmd.Context()

	var t *report.AgeRangeTable

	if opts.counts {
		engine, _, err := loadEngine(ctx, config.FromContext(ctx))
		if err != nil {
			return err
		}

		t = report.BuildAgeRanges(engine.Rows())
	} else {
		t = report.BuildAgeRanges(nil)
	}

	return writeFormatted(cmd, opts.format, t, opts.output)
}
