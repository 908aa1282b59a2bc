// Package compare contrasts the survival reports of two selections over the
// same dataset.
package compare

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/output"
	"github.com/hupe1980/survivorpie/internal/passenger"
	"github.com/hupe1980/survivorpie/internal/report"
)

// Comparison is the outcome of comparing two selections.
type Comparison struct {
	Left  *report.Report
	Right *report.Report
	// RateDelta is the right survival rate minus the left one, in
	// percentage points.
	RateDelta decimal.Decimal
	Diff      *DiffResult
}

// Compare builds the reports of left and right over rows and diffs their
// YAML renderings. Diff labels default to the selection summaries.
func Compare(ctx context.Context, rows []passenger.Row, left, right filter.Selection, opts DiffOptions) (*Comparison, error) {
	lr, err := report.Build(ctx, rows, left)
	if err != nil {
		return nil, fmt.Errorf("building left report: %w", err)
	}

	rr, err := report.Build(ctx, rows, right)
	if err != nil {
		return nil, fmt.Errorf("building right report: %w", err)
	}

	ly, err := output.Serialize(lr)
	if err != nil {
		return nil, err
	}

	ry, err := output.Serialize(rr)
	if err != nil {
		return nil, err
	}

	if opts.LeftLabel == "" {
		opts.LeftLabel = lr.Filter
	}

	if opts.RightLabel == "" {
		opts.RightLabel = rr.Filter
	}

	diff, err := ComputeDiff(string(ly), string(ry), opts)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Left:      lr,
		Right:     rr,
		RateDelta: survivalRate(rr).Sub(survivalRate(lr)),
		Diff:      diff,
	}, nil
}

// Summary is a one-line description of the survival rate change.
func (c *Comparison) Summary() string {
	if !c.Left.Loaded || !c.Right.Loaded {
		return "survival rate: " + report.NoDataMessage
	}

	sign := ""
	if c.RateDelta.IsPositive() {
		sign = "+"
	}

	return fmt.Sprintf("survival rate: %s%% (%d) -> %s%% (%d), %s%s pts",
		survivalRate(c.Left).StringFixed(2), c.Left.Matched,
		survivalRate(c.Right).StringFixed(2), c.Right.Matched,
		sign, c.RateDelta.StringFixed(2))
}

func survivalRate(r *report.Report) decimal.Decimal {
	for _, s := range r.Slices {
		if s.Label == filter.LabelSurvived {
			return s.Percent
		}
	}

	return decimal.Zero
}
