package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/survivorpie/internal/passenger"
)

// DefaultPath is the dataset loaded when no path is configured.
const DefaultPath = "train.csv"

// Dataset is a loaded, immutable row snapshot.
type Dataset struct {
	// Rows holds the rows of every source, in source order.
	Rows []passenger.Row
	// Sources describes each input file.
	Sources []Source
}

// Skipped returns the number of malformed records dropped across sources.
func (d *Dataset) Skipped() int {
	n := 0
	for _, s := range d.Sources {
		n += s.Skipped
	}

	return n
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	parallel int
	logger   *slog.Logger
}

// WithParallel limits how many files are read at once (default 4).
func WithParallel(n int) Option {
	return func(o *loadOptions) {
		o.parallel = n
	}
}

// WithLogger sets the logger used for skipped records and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(o *loadOptions) {
		o.logger = logger
	}
}

// Load reads every path and concatenates the rows in argument order. The
// first failing file aborts the whole load; no partial dataset is returned.
func Load(ctx context.Context, paths []string, opts ...Option) (*Dataset, error) {
	o := loadOptions{parallel: 4, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if len(paths) == 0 {
		paths = []string{DefaultPath}
	}

	parts := make([][]passenger.Row, len(paths))
	sources := make([]Source, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	if o.parallel > 0 {
		g.SetLimit(o.parallel)
	}

	for i, path := range paths {
		g.Go(func() error {
			rows, src, err := LoadFile(gCtx, path, o.logger)
			if err != nil {
				return err
			}

			parts[i] = rows
			sources[i] = src

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}

	ds := &Dataset{Rows: make([]passenger.Row, 0, total), Sources: sources}
	for _, p := range parts {
		ds.Rows = append(ds.Rows, p...)
	}

	o.logger.Info("dataset loaded",
		slog.Int("files", len(paths)),
		slog.Int("rows", len(ds.Rows)),
		slog.Int("skipped", ds.Skipped()),
	)

	return ds, nil
}

// LoadFile parses a single CSV file.
func LoadFile(ctx context.Context, path string, logger *slog.Logger) ([]passenger.Row, Source, error) {
	f, err := os.Open(path) //nolint:gosec // path is a user-provided dataset
	if err != nil {
		return nil, Source{Path: path}, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	if logger == nil {
		logger = slog.Default()
	}

	rows, src, err := Parse(ctx, f, logger.With(slog.String("path", path)))
	src.Path = path

	if err != nil {
		return nil, src, fmt.Errorf("parsing dataset %s: %w", path, err)
	}

	return rows, src, nil
}
