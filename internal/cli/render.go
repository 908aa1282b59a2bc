package cli

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/chart"
	"github.com/hupe1980/survivorpie/internal/config"
	"github.com/hupe1980/survivorpie/internal/report"
)

type renderOptions struct {
	selectionOptions

	output string
	format string
	width  int
	height int
	title  string
}

func newRenderCommand() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the survival pie chart to an image",
		Long: `Render draws the Survived/Died pie chart of a selection to a PNG or SVG
file. The format follows the output file extension unless --format is set.

Size, title and slice colors default to the "render" section of the config
file and can be overridden with flags.`,
		Example: `  survivorpie render --sex male --pclass 3 -o men-third.png
  survivorpie render --preset women-first-class -o women.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	registerSelectionFlags(cmd, &opts.selectionOptions)

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "survival.png", "output image path")
	f.StringVar(&opts.format, "format", "", "image format: png, svg (default: from extension)")
	f.IntVar(&opts.width, "width", 0, "image width in pixels")
	f.IntVar(&opts.height, "height", 0, "image height in pixels")
	f.StringVar(&opts.title, "title", "", "chart title")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"png", "svg"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	format := chart.FormatFromPath(opts.output)
	if opts.format != "" {
		f, err := chart.ParseFormat(opts.format)
		if err != nil {
			return usageError(err)
		}

		format = f
	}

	rc, err := config.LoadRenderConfig(cfg.ConfigFile)
	if err != nil {
		return usageError(err)
	}

	if opts.width > 0 {
		rc.Width = opts.width
	}

	if opts.height > 0 {
		rc.Height = opts.height
	}

	if opts.title != "" {
		rc.Title = opts.title
	}

	if err := rc.Validate(); err != nil {
		return usageError(err)
	}

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

	pie, err := chart.FromReport(r, rc)
	if err != nil {
		if errors.Is(err, chart.ErrNoMatches) {
			return runtimeError(fmt.Errorf("%w for %s", err, r.Filter))
		}

		return runtimeError(err)
	}

	var buf bytes.Buffer
	if err := pie.Render(&buf, format); err != nil {
		return runtimeError(fmt.Errorf("rendering chart: %w", err))
	}

	return writeBytes(cmd, buf.Bytes(), opts.output)
}
