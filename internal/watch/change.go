package watch

import (
	"fmt"
	"strings"

	"github.com/hupe1980/survivorpie/internal/filter"
)

// Change describes how one aggregate count moved between two runs.
type Change struct {
	// Label is the slice label, "Survived" or "Died".
	Label  string
	Before int
	After  int
}

// Delta is After - Before.
func (c Change) Delta() int { return c.After - c.Before }

// DiffAggregates returns the slices whose counts differ between prev and
// curr. A nil side counts as zero, so the first load reports every
// non-empty slice.
func DiffAggregates(prev, curr *filter.Aggregate) []Change {
	var p, c filter.Aggregate
	if prev != nil {
		p = *prev
	}

	if curr != nil {
		c = *curr
	}

	var changes []Change

	before := p.Slices()
	for i, s := range c.Slices() {
		if before[i].Count != s.Count {
			changes = append(changes, Change{Label: s.Label, Before: before[i].Count, After: s.Count})
		}
	}

	return changes
}

// ChangeSummary returns a one-line summary such as
// "Survived 342 -> 345 (+3), Died 549 -> 546 (-3)".
func ChangeSummary(changes []Change) string {
	if len(changes) == 0 {
		return "no changes"
	}

	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, fmt.Sprintf("%s %d -> %d (%+d)", c.Label, c.Before, c.After, c.Delta()))
	}

	return strings.Join(parts, ", ")
}
