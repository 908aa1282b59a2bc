package filter

import "github.com/hupe1980/survivorpie/internal/passenger"

// Slice labels of an Aggregate.
const (
	LabelSurvived = "Survived"
	LabelDied     = "Died"
)

// Aggregate is the two-count summary of a filtered row set.
// Survived + Died always equals the number of matching rows.
type Aggregate struct {
	Survived int `json:"survived"`
	Died     int `json:"died"`
}

// Total returns the number of matching rows.
func (a Aggregate) Total() int { return a.Survived + a.Died }

// Slice is one labelled count of an Aggregate.
type Slice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Slices returns the aggregate as labelled counts, Survived first.
func (a Aggregate) Slices() []Slice {
	return []Slice{
		{Label: LabelSurvived, Count: a.Survived},
		{Label: LabelDied, Count: a.Died},
	}
}

// Compute filters rows by sel and counts survivors. It returns nil when rows
// is empty, so that "no data loaded" stays distinguishable from a selection
// that matches nothing ({0, 0}).
func Compute(rows []passenger.Row, sel Selection) *Aggregate {
	if len(rows) == 0 {
		return nil
	}

	agg := &Aggregate{}
	matched := 0

	for _, row := range rows {
		if !sel.Matches(row) {
			continue
		}

		matched++

		if row.HasSurvived() {
			agg.Survived++
		}
	}

	agg.Died = matched - agg.Survived

	return agg
}
