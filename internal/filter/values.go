package filter

// Values is a declarative selection, as given on the command line or in a
// preset. Unlike repeated Set calls, listing the same port or bin twice
// selects it once.
type Values struct {
	Sex      string
	Age      []string
	Embarked []string
	Pclass   string
}

// Apply lays v over s. Sex and Pclass replace the current value when
// non-empty; ports and bins are added when not already selected.
func (s Selection) Apply(v Values) Selection {
	next := s

	if v.Sex != "" {
		next = next.Set(FieldSex, v.Sex)
	}

	for _, a := range v.Age {
		if !next.hasAge(a) {
			next = next.Set(FieldAge, a)
		}
	}

	for _, port := range v.Embarked {
		if !next.HasEmbarked(port) {
			next = next.Set(FieldEmbarked, port)
		}
	}

	if v.Pclass != "" {
		next = next.Set(FieldPclass, v.Pclass)
	}

	return next
}
