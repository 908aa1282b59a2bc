package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/survivorpie/internal/passenger"
)

var validClasses = []string{"1", "2", "3"}

// Normalize trims the values and folds sex to lower case and port codes to
// upper case.
func (v Values) Normalize() Values {
	out := Values{
		Sex:    strings.ToLower(strings.TrimSpace(v.Sex)),
		Pclass: strings.TrimSpace(v.Pclass),
	}

	for _, a := range v.Age {
		if a = strings.TrimSpace(a); a != "" {
			out.Age = append(out.Age, a)
		}
	}

	for _, p := range v.Embarked {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out.Embarked = append(out.Embarked, p)
		}
	}

	return out
}

// IsEmpty reports whether v constrains nothing.
func (v Values) IsEmpty() bool {
	return v.Sex == "" && v.Pclass == "" && len(v.Age) == 0 && len(v.Embarked) == 0
}

// Validate rejects values that can never match a passenger. Selections
// built through [Selection.Set] tolerate such values; user input should be
// checked first.
func (v Values) Validate() error {
	var errs []error

	if v.Sex != "" && v.Sex != passenger.SexMale && v.Sex != passenger.SexFemale {
		errs = append(errs, fmt.Errorf("invalid sex %q (must be male or female)", v.Sex))
	}

	if v.Pclass != "" && !slices.Contains(validClasses, v.Pclass) {
		errs = append(errs, fmt.Errorf("invalid pclass %q (must be 1, 2 or 3)", v.Pclass))
	}

	for _, p := range v.Embarked {
		if !slices.Contains(passenger.Ports, p) {
			errs = append(errs, fmt.Errorf("invalid port %q (must be one of %s)", p, strings.Join(passenger.Ports, ", ")))
		}
	}

	for _, a := range v.Age {
		if _, ok := ResolveAgeRange(a); !ok {
			errs = append(errs, fmt.Errorf("invalid age range %q (see the ranges command)", a))
		}
	}

	return errors.Join(errs...)
}

// ParseValues parses an inline selection such as
// "sex=female pclass=1 embarked=C,Q age=0,unknown". Fields are separated by
// whitespace; ports and age bins by commas.
func ParseValues(expr string) (Values, error) {
	var v Values

	for _, tok := range strings.Fields(expr) {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			return Values{}, fmt.Errorf("invalid filter %q: expected field=value", tok)
		}

		field, ok := ParseField(key)
		if !ok {
			return Values{}, fmt.Errorf("invalid filter %q: unknown field %q", tok, key)
		}

		switch field {
		case FieldSex:
			v.Sex = val
		case FieldPclass:
			v.Pclass = val
		case FieldEmbarked:
			v.Embarked = append(v.Embarked, strings.Split(val, ",")...)
		case FieldAge:
			v.Age = append(v.Age, strings.Split(val, ",")...)
		}
	}

	v = v.Normalize()

	if err := v.Validate(); err != nil {
		return Values{}, err
	}

	return v, nil
}

// ResolveSelection turns an argument into a selection. The argument is an
// inline filter when it contains "=", "all" or empty for no filter, and a
// preset name otherwise.
func ResolveSelection(arg string, custom map[string]PresetConfig) (Selection, error) {
	arg = strings.TrimSpace(arg)

	switch {
	case arg == "" || strings.EqualFold(arg, "all"):
		return Selection{}, nil
	case strings.Contains(arg, "="):
		v, err := ParseValues(arg)
		if err != nil {
			return Selection{}, err
		}

		return Selection{}.Apply(v), nil
	default:
		p, err := ResolvePreset(arg, custom)
		if err != nil {
			return Selection{}, err
		}

		return p.Selection(), nil
	}
}
