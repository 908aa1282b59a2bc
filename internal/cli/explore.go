package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/config"
	"github.com/hupe1980/survivorpie/internal/dataset"
	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/logging"
	"github.com/hupe1980/survivorpie/internal/passenger"
	"github.com/hupe1980/survivorpie/internal/tui"
)

type exploreOptions struct {
	selectionOptions

	logFile string
}

func newExploreCommand() *cobra.Command {
	opts := &exploreOptions{}

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore survival interactively in the terminal",
		Long: `Explore opens a terminal UI with the filter controls on the left and the
live Survived/Died split on the right. Move with the arrow keys, toggle a
control with space, clear all filters with c and reload the dataset with r.

The filter flags set the initial selection. Logs are discarded while the
UI owns the terminal unless --log-file is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExplore(cmd, opts)
		},
	}

	registerSelectionFlags(cmd, &opts.selectionOptions)
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the UI runs")

	return cmd
}

func runExplore(cmd *cobra.Command, opts *exploreOptions) error {
	cfg := config.FromContext(cmd.Context())

	sel, err := resolveSelection(cmd, cfg, &opts.selectionOptions)
	if err != nil {
		return err
	}

	logger := logging.Discard()

	if opts.logFile != "" {
		fileLogger, closeLog, logErr := logging.SetupFile(cfg, opts.logFile)
		if logErr != nil {
			return usageError(logErr)
		}

		defer func() { _ = closeLog() }()

		logger = fileLogger
	}

	ctx := logging.NewContext(cmd.Context(), logger)
	paths := cfg.DataPaths()

	load := func(ctx context.Context) ([]passenger.Row, error) {
		ds, err := dataset.Load(ctx, paths, dataset.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("loading dataset: %w", err)
		}

		return ds.Rows, nil
	}

	deps := tui.Deps{
		Engine: filter.NewEngine(filter.WithLogger(logger), filter.WithSelection(sel)),
		Load:   load,
		Source: strings.Join(paths, ", "),
		Logger: logger,
	}

	var tuiOpts []tui.Option
	if cfg.NoColor {
		tuiOpts = append(tuiOpts, tui.WithTheme(tui.PlainTheme()))
	}

	if err := tui.Run(ctx, deps, tuiOpts...); err != nil {
		return runtimeError(err)
	}

	return nil
}
