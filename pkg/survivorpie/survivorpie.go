// Package survivorpie provides a public Go API for filtering the Titanic
// passenger dataset and computing its Survived/Died split.
//
// This package exposes the dataset loader and the filter engine as a
// library, allowing programmatic use without the CLI.
//
// Basic usage:
//
//	engine, err := survivorpie.Open(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine.SetFilter(survivorpie.FieldSex, "female")
//	engine.SetFilter(survivorpie.FieldEmbarked, "C")
//	agg := engine.Aggregate()
//	fmt.Println(agg.Survived, agg.Died)
//
// With options:
//
//	engine, err := survivorpie.Open(ctx,
//	    survivorpie.WithFiles("train.csv", "test-labelled.csv"),
//	    survivorpie.WithPreset("women-first-class"),
//	)
package survivorpie

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/survivorpie/internal/dataset"
	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/logging"
	"github.com/hupe1980/survivorpie/internal/passenger"
	"github.com/hupe1980/survivorpie/internal/report"
)

type (
	// Row is one passenger record.
	Row = passenger.Row
	// Selection is an immutable filter selection.
	Selection = filter.Selection
	// Field names a filterable dimension.
	Field = filter.Field
	// Aggregate holds the Survived and Died counts of a selection.
	Aggregate = filter.Aggregate
	// AgeRange is one bin of the age range table.
	AgeRange = filter.AgeRange
	// Engine holds the loaded rows and the current selection.
	Engine = filter.Engine
	// Report is the survival report of one selection.
	Report = report.Report
)

// Filterable fields.
const (
	FieldSex      = filter.FieldSex
	FieldAge      = filter.FieldAge
	FieldEmbarked = filter.FieldEmbarked
	FieldPclass   = filter.FieldPclass
)

// ErrMissingColumn is returned when a dataset lacks a required column.
var ErrMissingColumn = dataset.ErrMissingColumn

// Option configures Open.
type Option func(*options)

type options struct {
	files    []string
	logger   *slog.Logger
	preset   string
	presets  map[string]filter.PresetConfig
	parallel int
	err      error
}

// WithFiles sets the dataset CSV files, concatenated in order. The default
// is "train.csv".
func WithFiles(paths ...string) Option {
	return func(o *options) { o.files = paths }
}

// WithLogger sets a structured logger. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPreset starts the engine from a named preset.
func WithPreset(name string) Option {
	return func(o *options) { o.preset = name }
}

// WithPresetFile adds the custom presets of a YAML file with a top-level
// "presets" key. They are available to WithPreset.
func WithPresetFile(path string) Option {
	return func(o *options) {
		presets, err := filter.LoadPresetFile(path)
		if err != nil {
			o.err = err
			return
		}

		if o.presets == nil {
			o.presets = make(map[string]filter.PresetConfig, len(presets))
		}

		for name, p := range presets {
			o.presets[name] = p
		}
	}
}

// WithParallel bounds the number of files read concurrently.
func WithParallel(n int) Option {
	return func(o *options) { o.parallel = n }
}

// Open loads the dataset and returns an engine in the Loaded state. A load
// failure returns an error and no engine.
func Open(ctx context.Context, opts ...Option) (*Engine, error) {
	o := &options{
		files:  []string{dataset.DefaultPath},
		logger: logging.Discard(),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.err != nil {
		return nil, o.err
	}

	var sel Selection

	if o.preset != "" {
		p, err := filter.ResolvePreset(o.preset, o.presets)
		if err != nil {
			return nil, err
		}

		sel = p.Selection()
	}

	loadOpts := []dataset.Option{dataset.WithLogger(o.logger)}
	if o.parallel > 0 {
		loadOpts = append(loadOpts, dataset.WithParallel(o.parallel))
	}

	ds, err := dataset.Load(ctx, o.files, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}

	engine := filter.NewEngine(filter.WithLogger(o.logger), filter.WithSelection(sel))
	engine.Load(ds.Rows)

	return engine, nil
}

// AgeRanges returns the age range table.
func AgeRanges() []AgeRange { return filter.AgeRanges() }

// Compute returns the Survived/Died split of the rows matching sel, or nil
// when rows is empty.
func Compute(rows []Row, sel Selection) *Aggregate { return filter.Compute(rows, sel) }

// ParseSelection resolves "all", a built-in preset name, or an inline filter
// such as "sex=female class=1 embarked=C,Q age=0,unknown".
func ParseSelection(expr string) (Selection, error) {
	return filter.ResolveSelection(expr, nil)
}

// BuildReport computes the survival report of sel over rows, including
// percentages and per-filter exclusion counts.
func BuildReport(ctx context.Context, rows []Row, sel Selection) (*Report, error) {
	return report.Build(ctx, rows, sel)
}
