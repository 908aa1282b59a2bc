// Package report turns a selection and its aggregate into a survival report
// that can be rendered as a terminal table, Markdown, YAML or JSON.
package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/passenger"
)

// percentPlaces is the number of decimal places kept in percentages.
const percentPlaces = 2

var hundred = decimal.NewFromInt(100)

// Slice is one pie slice of a report.
type Slice struct {
	Label   string          `json:"label"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}

// Report summarises the survival split of one selection.
type Report struct {
	// Filter is the one-line selection summary, e.g. "sex=female pclass=1".
	Filter string `json:"filter"`
	// Selection lists the active filter values by field.
	Selection filter.Description `json:"selection"`
	// Loaded is false when no rows were available.
	Loaded bool `json:"loaded"`
	// Rows is the size of the full dataset.
	Rows int `json:"rows"`
	// Matched is the number of rows passing every filter.
	Matched int `json:"matched"`
	// Slices holds Survived and Died, in that order. Empty when not loaded.
	Slices []Slice `json:"slices,omitempty"`
	// ExcludedBy counts rows removed per field, attributed to the first
	// filter they failed.
	ExcludedBy map[string]int `json:"excludedBy,omitempty"`
}

// Build computes the report of sel over rows.
func Build(ctx context.Context, rows []passenger.Row, sel filter.Selection) (*Report, error) {
	r := &Report{
		Filter:    sel.String(),
		Selection: sel.Describe(),
		Rows:      len(rows),
	}

	agg := filter.Compute(rows, sel)
	if agg == nil {
		return r, nil
	}

	result, err := filter.NewChain(sel.Predicates()...).Apply(ctx, rows)
	if err != nil {
		return nil, err
	}

	r.Loaded = true
	r.Matched = agg.Total()
	r.Slices = slicesOf(*agg)

	for field, n := range result.ExcludedBy() {
		if r.ExcludedBy == nil {
			r.ExcludedBy = make(map[string]int)
		}

		r.ExcludedBy[string(field)] = n
	}

	return r, nil
}

// FromAggregate builds a report from an already computed aggregate. A nil
// aggregate yields an unloaded report.
func FromAggregate(sel filter.Selection, agg *filter.Aggregate, rows int) *Report {
	r := &Report{
		Filter:    sel.String(),
		Selection: sel.Describe(),
		Rows:      rows,
	}

	if agg == nil {
		return r
	}

	r.Loaded = true
	r.Matched = agg.Total()
	r.Slices = slicesOf(*agg)

	return r
}

// Aggregate returns the counts carried by the report, or nil when the
// report was built without data.
func (r *Report) Aggregate() *filter.Aggregate {
	if !r.Loaded {
		return nil
	}

	agg := &filter.Aggregate{}

	for _, s := range r.Slices {
		switch s.Label {
		case filter.LabelSurvived:
			agg.Survived = s.Count
		case filter.LabelDied:
			agg.Died = s.Count
		}
	}

	return agg
}

// ExcludedFields returns the fields with exclusions in field order.
func (r *Report) ExcludedFields() []string {
	out := make([]string, 0, len(r.ExcludedBy))
	for _, f := range filter.Fields {
		if _, ok := r.ExcludedBy[string(f)]; ok {
			out = append(out, string(f))
		}
	}

	return out
}

// Percent returns count/total as a percentage rounded to two places.
// A zero total yields zero.
func Percent(count, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(int64(count)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(percentPlaces)
}

// slicesOf derives Died's share as the remainder so the two percentages
// always sum to exactly 100.
func slicesOf(agg filter.Aggregate) []Slice {
	total := agg.Total()
	survived := Percent(agg.Survived, total)

	died := decimal.Zero
	if total > 0 {
		died = hundred.Sub(survived)
	}

	return []Slice{
		{Label: filter.LabelSurvived, Count: agg.Survived, Percent: survived},
		{Label: filter.LabelDied, Count: agg.Died, Percent: died},
	}
}
