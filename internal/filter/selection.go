package filter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/survivorpie/internal/passenger"
)

// Field names a filterable dimension.
type Field string

// Filterable fields.
const (
	FieldSex      Field = passenger.ColumnSex
	FieldAge      Field = passenger.ColumnAge
	FieldEmbarked Field = passenger.ColumnEmbarked
	FieldPclass   Field = passenger.ColumnPclass
)

// Fields lists the filterable fields in evaluation order.
var Fields = []Field{FieldSex, FieldAge, FieldEmbarked, FieldPclass}

// ParseField resolves a field name case-insensitively. "class" is accepted
// as an alias for Pclass.
func ParseField(s string) (Field, bool) {
	s = strings.TrimSpace(s)

	for _, f := range Fields {
		if strings.EqualFold(s, string(f)) {
			return f, true
		}
	}

	if strings.EqualFold(s, "class") {
		return FieldPclass, true
	}

	return "", false
}

// Selection is the set of active constraints. The zero value selects every
// row. A Selection is never modified in place; Set returns a new value.
type Selection struct {
	sex      string
	pclass   string
	embarked []string
	ages     []int
	// badAges holds age values that name no bin, trimmed. Each is its own
	// never-matching bin.
	badAges []string
}

// Set returns a copy of s with one dimension updated.
//
// Sex and Pclass are single-select: the last value wins and an empty value
// clears the constraint. Embarked toggles a port code. Age toggles a bin
// given as an index into [AgeRanges] (keys and labels are accepted too).
// Unknown fields leave the selection unchanged; unknown values are kept and
// simply match nothing.
func (s Selection) Set(field Field, value string) Selection {
	next := s.clone()

	switch field {
	case FieldSex:
		next.sex = value
	case FieldPclass:
		next.pclass = value
	case FieldEmbarked:
		next.embarked = toggle(next.embarked, value)
	case FieldAge:
		if i, ok := ageBinIndex(value); ok {
			next.ages = toggle(next.ages, i)
		} else {
			next.badAges = toggle(next.badAges, strings.TrimSpace(value))
		}
	}

	return next
}

// Sex returns the selected sex, or "" when unconstrained.
func (s Selection) Sex() string { return s.sex }

// Pclass returns the selected passenger class, or "" when unconstrained.
func (s Selection) Pclass() string { return s.pclass }

// Embarked returns the selected port codes in selection order.
func (s Selection) Embarked() []string { return slices.Clone(s.embarked) }

// AgeBins returns the selected age bin indices in selection order. Indices
// outside the age table are invalid bins that match nothing.
func (s Selection) AgeBins() []int { return slices.Clone(s.ages) }

// hasAge reports whether the age value, as given to Set, is selected.
func (s Selection) hasAge(value string) bool {
	if i, ok := ageBinIndex(value); ok {
		return slices.Contains(s.ages, i)
	}

	return slices.Contains(s.badAges, strings.TrimSpace(value))
}

// HasEmbarked reports whether port is currently selected.
func (s Selection) HasEmbarked(port string) bool { return slices.Contains(s.embarked, port) }

// HasAgeBin reports whether bin i is currently selected.
func (s Selection) HasAgeBin(i int) bool { return slices.Contains(s.ages, i) }

// IsEmpty reports whether no constraint is active.
func (s Selection) IsEmpty() bool {
	return s.sex == "" && s.pclass == "" && len(s.embarked) == 0 && !s.hasAgeConstraint()
}

func (s Selection) hasAgeConstraint() bool { return len(s.ages) > 0 || len(s.badAges) > 0 }

// Equal reports whether two selections hold the same constraints. Order of
// multi-select values is ignored.
func (s Selection) Equal(o Selection) bool {
	if s.sex != o.sex || s.pclass != o.pclass {
		return false
	}

	return sameSet(s.embarked, o.embarked) && sameSet(s.ages, o.ages) && sameSet(s.badAges, o.badAges)
}

// Matches reports whether row passes every active constraint.
func (s Selection) Matches(row passenger.Row) bool {
	for _, p := range s.Predicates() {
		if !p.Match(row) {
			return false
		}
	}

	return true
}

// Predicates returns the active constraints in evaluation order.
func (s Selection) Predicates() []Predicate {
	var preds []Predicate

	if s.sex != "" {
		preds = append(preds, SexPredicate{Value: s.sex})
	}

	if s.hasAgeConstraint() {
		p := NewAgePredicate(s.ages)
		for _, v := range s.badAges {
			p.labels = append(p.labels, badAgeLabel(v))
		}

		preds = append(preds, p)
	}

	if len(s.embarked) > 0 {
		preds = append(preds, NewEmbarkedPredicate(s.embarked))
	}

	if s.pclass != "" {
		preds = append(preds, PclassPredicate{Value: s.pclass})
	}

	return preds
}

// Description is a serializable view of a Selection.
type Description struct {
	Sex      string   `json:"sex,omitempty"`
	Age      []string `json:"age,omitempty"`
	Embarked []string `json:"embarked,omitempty"`
	Pclass   string   `json:"pclass,omitempty"`
}

// Describe returns the selection with age bins replaced by their labels.
func (s Selection) Describe() Description {
	d := Description{
		Sex:      s.sex,
		Embarked: s.Embarked(),
		Pclass:   s.pclass,
	}

	for _, i := range s.ages {
		d.Age = append(d.Age, ageBinLabel(i))
	}

	for _, v := range s.badAges {
		d.Age = append(d.Age, badAgeLabel(v))
	}

	return d
}

// String renders the selection as space-separated key=value pairs.
func (s Selection) String() string {
	if s.IsEmpty() {
		return "all passengers"
	}

	d := s.Describe()

	var parts []string

	if d.Sex != "" {
		parts = append(parts, "sex="+d.Sex)
	}

	if len(d.Age) > 0 {
		parts = append(parts, "age=["+strings.Join(d.Age, ", ")+"]")
	}

	if len(d.Embarked) > 0 {
		parts = append(parts, "embarked=["+strings.Join(d.Embarked, ", ")+"]")
	}

	if d.Pclass != "" {
		parts = append(parts, "pclass="+d.Pclass)
	}

	return strings.Join(parts, " ")
}

func (s Selection) clone() Selection {
	return Selection{
		sex:      s.sex,
		pclass:   s.pclass,
		embarked: slices.Clone(s.embarked),
		ages:     slices.Clone(s.ages),
		badAges:  slices.Clone(s.badAges),
	}
}

// toggle adds v when absent and removes it when present. The result is nil
// once the last element is removed.
func toggle[T comparable](items []T, v T) []T {
	if i := slices.Index(items, v); i >= 0 {
		items = slices.Delete(items, i, i+1)
		if len(items) == 0 {
			return nil
		}

		return items
	}

	return append(items, v)
}

func sameSet[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	for _, v := range a {
		if !slices.Contains(b, v) {
			return false
		}
	}

	return true
}

// ageBinIndex resolves a bin key, label or non-negative index. Numeric
// indices past the table are returned as is and match nothing.
func ageBinIndex(value string) (int, bool) {
	if r, ok := ResolveAgeRange(value); ok {
		return r.Index, true
	}

	if i, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && i >= 0 {
		return i, true
	}

	return 0, false
}

func ageBinLabel(i int) string {
	if r, ok := AgeRangeAt(i); ok {
		return r.Label
	}

	return fmt.Sprintf("invalid(%d)", i)
}

func badAgeLabel(v string) string { return "invalid(" + v + ")" }
