package filter

import "github.com/hupe1980/survivorpie/internal/passenger"

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func makeRow(sex, age, embarked, pclass, survived string) passenger.Row {
	return passenger.Row{
		Sex:      sex,
		Age:      age,
		Embarked: embarked,
		Pclass:   pclass,
		Survived: survived,
	}
}

// exampleRows is the two-row fixture used throughout the engine tests.
func exampleRows() []passenger.Row {
	return []passenger.Row{
		makeRow("male", "22", "S", "3", "0"),
		makeRow("female", "", "C", "1", "1"),
	}
}

// sampleRows covers every age bin, port and class.
func sampleRows() []passenger.Row {
	return []passenger.Row{
		makeRow("male", "22", "S", "3", "0"),
		makeRow("female", "38", "C", "1", "1"),
		makeRow("female", "26", "S", "3", "1"),
		makeRow("female", "35", "S", "1", "1"),
		makeRow("male", "35", "S", "3", "0"),
		makeRow("male", "", "Q", "3", "0"),
		makeRow("male", "54", "S", "1", "0"),
		makeRow("male", "2", "S", "3", "0"),
		makeRow("female", "27", "S", "3", "1"),
		makeRow("female", "14", "C", "2", "1"),
		makeRow("female", "4", "S", "3", "1"),
		makeRow("female", "58", "S", "1", "1"),
		makeRow("male", "0.83", "S", "2", "1"),
		makeRow("male", "66", "S", "2", "0"),
		makeRow("female", "", "Q", "3", "1"),
		makeRow("male", "71", "C", "1", "0"),
		makeRow("male", "28.5", "C", "3", "0"),
		makeRow("female", "", "", "1", "1"),
		makeRow("male", "n/a", "S", "3", "x"),
	}
}
