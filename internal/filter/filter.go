package filter

import (
	"context"
	"fmt"
	"slices"

	"github.com/hupe1980/survivorpie/internal/passenger"
)

// Predicate is a single field constraint. Predicates are stateless and
// never fail: malformed cells simply do not match.
type Predicate interface {
	// Field returns the dimension the predicate constrains.
	Field() Field
	// Match reports whether row satisfies the constraint.
	Match(row passenger.Row) bool
	// String describes the constraint for exclusion reasons.
	String() string
}

// SexPredicate matches rows with an exact Sex value.
type SexPredicate struct {
	Value string
}

// Field implements Predicate.
func (p SexPredicate) Field() Field { return FieldSex }

// Match implements Predicate.
func (p SexPredicate) Match(row passenger.Row) bool { return row.Sex == p.Value }

func (p SexPredicate) String() string { return "sex=" + p.Value }

// PclassPredicate matches rows with an exact Pclass value.
type PclassPredicate struct {
	Value string
}

// Field implements Predicate.
func (p PclassPredicate) Field() Field { return FieldPclass }

// Match implements Predicate.
func (p PclassPredicate) Match(row passenger.Row) bool { return row.Pclass == p.Value }

func (p PclassPredicate) String() string { return "pclass=" + p.Value }

// EmbarkedPredicate matches rows whose port is one of a set.
type EmbarkedPredicate struct {
	ports map[string]bool
	order []string
}

// NewEmbarkedPredicate creates a predicate over the given port codes.
func NewEmbarkedPredicate(ports []string) EmbarkedPredicate {
	m := make(map[string]bool, len(ports))
	for _, p := range ports {
		m[p] = true
	}

	return EmbarkedPredicate{ports: m, order: slices.Clone(ports)}
}

// Field implements Predicate.
func (p EmbarkedPredicate) Field() Field { return FieldEmbarked }

// Match implements Predicate.
func (p EmbarkedPredicate) Match(row passenger.Row) bool { return p.ports[row.Embarked] }

func (p EmbarkedPredicate) String() string { return fmt.Sprintf("embarked in %v", p.order) }

// AgePredicate matches rows whose age falls in at least one selected bin.
//
// A row without a usable age matches only when the Unknown bin is selected,
// whatever bounded bins are selected alongside it. A known age never
// matches the Unknown bin. Bin indices outside the table match nothing.
type AgePredicate struct {
	bins    []AgeRange
	unknown bool
	labels  []string
}

// NewAgePredicate creates a predicate over the given bin indices.
func NewAgePredicate(indices []int) AgePredicate {
	var p AgePredicate

	for _, i := range indices {
		p.labels = append(p.labels, ageBinLabel(i))

		r, ok := AgeRangeAt(i)
		if !ok {
			continue
		}

		if r.Unknown {
			p.unknown = true
			continue
		}

		p.bins = append(p.bins, r)
	}

	return p
}

// Field implements Predicate.
func (p AgePredicate) Field() Field { return FieldAge }

// Match implements Predicate.
func (p AgePredicate) Match(row passenger.Row) bool {
	age, ok := row.ParsedAge()
	if !ok {
		return p.unknown
	}

	for _, r := range p.bins {
		if r.Contains(age) {
			return true
		}
	}

	return false
}

func (p AgePredicate) String() string { return fmt.Sprintf("age in %v", p.labels) }

// ExcludedRow records a row rejected by a predicate.
type ExcludedRow struct {
	// Row is the rejected row.
	Row passenger.Row
	// Field is the first dimension the row failed.
	Field Field
	// Reason is a human-readable explanation for the exclusion.
	Reason string
}

// Result holds the outcome of applying a chain to a row set.
type Result struct {
	// Included are the rows that passed every predicate.
	Included []passenger.Row
	// Excluded are the rows removed, attributed to the first failing predicate.
	Excluded []ExcludedRow
}

// ExcludedBy counts exclusions per field.
func (r *Result) ExcludedBy() map[Field]int {
	counts := make(map[Field]int, len(Fields))
	for _, e := range r.Excluded {
		counts[e.Field]++
	}

	return counts
}

// Chain applies predicates in order, passing the rows included by each
// predicate on to the next.
type Chain struct {
	predicates []Predicate
}

// NewChain creates a chain from the given predicates.
func NewChain(predicates ...Predicate) *Chain {
	return &Chain{predicates: predicates}
}

// Apply runs every predicate over rows. The context is checked between
// predicates so that large scans can be abandoned.
func (c *Chain) Apply(ctx context.Context, rows []passenger.Row) (*Result, error) {
	current := rows

	var excluded []ExcludedRow

	for _, p := range c.predicates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		next := make([]passenger.Row, 0, len(current))

		for _, row := range current {
			if p.Match(row) {
				next = append(next, row)
				continue
			}

			excluded = append(excluded, ExcludedRow{
				Row:    row,
				Field:  p.Field(),
				Reason: "excluded by " + p.String(),
			})
		}

		current = next
	}

	return &Result{Included: current, Excluded: excluded}, nil
}

// Apply returns the rows of rows that match sel, in input order.
func Apply(rows []passenger.Row, sel Selection) []passenger.Row {
	out := make([]passenger.Row, 0, len(rows))

	for _, row := range rows {
		if sel.Matches(row) {
			out = append(out, row)
		}
	}

	return out
}
