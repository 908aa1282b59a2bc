package report

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/passenger"
)

// AgeRangeRow is one line of the age range table.
type AgeRangeRow struct {
	Index  int    `json:"index"`
	Key    string `json:"key"`
	Label  string `json:"label"`
	Bounds string `json:"bounds"`
	// Aggregate is the survival split of the bin alone. Nil without data.
	Aggregate *filter.Aggregate `json:"aggregate,omitempty"`
}

// AgeRangeTable lists the age bins, optionally with per-bin counts.
type AgeRangeTable struct {
	Ranges []AgeRangeRow `json:"ranges"`
}

// BuildAgeRanges returns the age range table. When rows is non-empty every
// bin carries the survival split of the rows falling into it.
func BuildAgeRanges(rows []passenger.Row) *AgeRangeTable {
	ranges := filter.AgeRanges()
	out := &AgeRangeTable{Ranges: make([]AgeRangeRow, 0, len(ranges))}

	for _, r := range ranges {
		out.Ranges = append(out.Ranges, AgeRangeRow{
			Index:     r.Index,
			Key:       r.Key,
			Label:     r.Label,
			Bounds:    r.Bounds(),
			Aggregate: filter.Compute(rows, filter.Selection{}.Set(filter.FieldAge, strconv.Itoa(r.Index))),
		})
	}

	return out
}

// Table renders the age ranges.
func (t *AgeRangeTable) Table(m Mode) string {
	withCounts := len(t.Ranges) > 0 && t.Ranges[0].Aggregate != nil

	w := newWriter(m)

	header := table.Row{"#", "Key", "Label", "Bounds"}
	if withCounts {
		header = append(header, "Survived", "Died")
	}

	w.AppendHeader(header)

	for _, r := range t.Ranges {
		row := table.Row{r.Index, r.Key, r.Label, r.Bounds}
		if withCounts && r.Aggregate != nil {
			row = append(row, r.Aggregate.Survived, r.Aggregate.Died)
		}

		w.AppendRow(row)
	}

	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	return render(w, m)
}
