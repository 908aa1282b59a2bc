package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/config"
	"github.com/hupe1980/survivorpie/internal/dataset"
	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/logging"
	"github.com/hupe1980/survivorpie/internal/output"
	"github.com/hupe1980/survivorpie/internal/report"
)

// resolveSelection combines the configured preset with the filter flags.
// The default preset from the config applies only when no filter flag is
// given; an explicit --preset always applies.
func resolveSelection(cmd *cobra.Command, cfg *config.Config, opts *selectionOptions) (filter.Selection, error) {
	v := opts.values()
	if err := v.Validate(); err != nil {
		return filter.Selection{}, usageError(err)
	}

	var sel filter.Selection

	if cfg.Preset != "" && (v.IsEmpty() || cmd.Flags().Changed("preset")) {
		p, err := filter.ResolvePreset(cfg.Preset, cfg.Presets)
		if err != nil {
			return filter.Selection{}, usageError(err)
		}

		sel = p.Selection()
	}

	return sel.Apply(v), nil
}

// loadEngine reads the configured dataset into a new engine.
func loadEngine(ctx context.Context, cfg *config.Config, opts ...filter.EngineOption) (*filter.Engine, *dataset.Dataset, error) {
	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]filter.EngineOption{filter.WithLogger(logging.FromContext(ctx))}, opts...)

	engine := filter.NewEngine(opts...)
	engine.Load(ds.Rows)

	return engine, ds, nil
}

// loadDataset reads the configured dataset files.
func loadDataset(ctx context.Context, cfg *config.Config) (*dataset.Dataset, error) {
	logger := logging.FromContext(ctx)

	ds, err := dataset.Load(ctx, cfg.DataPaths(), dataset.WithLogger(logger))
	if err != nil {
		return nil, runtimeError(fmt.Errorf("loading dataset: %w", err))
	}

	if skipped := ds.Skipped(); skipped > 0 {
		logger.Warn("malformed records skipped", slog.Int("skipped", skipped))
	}

	return ds, nil
}

// writeFormatted encodes v in format and writes it to path, or to the
// command's stdout when path is empty.
func writeFormatted(cmd *cobra.Command, format string, v any, path string) error {
	data, err := report.NewRegistry().Encode(format, v)
	if err != nil {
		return usageError(err)
	}

	return writeBytes(cmd, data, path)
}

func writeBytes(cmd *cobra.Command, data []byte, path string) error {
	logger := logging.FromContext(cmd.Context())

	w := output.NewWriter(cmd.OutOrStdout(), path, output.WithLogger(logger))
	if err := w.Write(data); err != nil {
		return runtimeError(fmt.Errorf("writing output: %w", err))
	}

	if cfg := config.FromContext(cmd.Context()); path != "" && path != "-" && !cfg.Quiet {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Written to %s\n", path)
	}

	return nil
}
