// Package passenger defines the immutable passenger record consumed by the
// filter engine.
package passenger

import (
	"math"
	"strconv"
	"strings"
)

// Column names the loader requires in the dataset header.
const (
	ColumnSex      = "Sex"
	ColumnAge      = "Age"
	ColumnEmbarked = "Embarked"
	ColumnPclass   = "Pclass"
	ColumnSurvived = "Survived"
)

// RequiredColumns lists the header fields every dataset must carry.
var RequiredColumns = []string{ColumnSex, ColumnAge, ColumnEmbarked, ColumnPclass, ColumnSurvived}

// Known categorical values.
const (
	SexMale   = "male"
	SexFemale = "female"

	PortCherbourg   = "C"
	PortQueenstown  = "Q"
	PortSouthampton = "S"
)

// Ports lists the embarkation ports in display order.
var Ports = []string{PortCherbourg, PortQueenstown, PortSouthampton}

// PortName returns the human-readable port name for a port code.
func PortName(code string) string {
	switch code {
	case PortCherbourg:
		return "Cherbourg"
	case PortQueenstown:
		return "Queenstown"
	case PortSouthampton:
		return "Southampton"
	default:
		return code
	}
}

// Row is one passenger record. All cells are kept as loaded; numeric
// interpretation happens on access.
type Row struct {
	Sex      string
	Age      string
	Embarked string
	Pclass   string
	Survived string

	// Extra holds the remaining CSV columns. Never filtered on.
	Extra map[string]string
}

// ParsedAge returns the passenger's age truncated to whole years. ok is false
// when the age is empty, unparseable, NaN or infinite.
func (r Row) ParsedAge() (age int, ok bool) {
	s := strings.TrimSpace(r.Age)
	if s == "" {
		return 0, false
	}

	// Ages such as "0.42" or "28.5" appear in the dataset; truncate like an
	// integer parse of the leading digits.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	// Huge finite ages still belong to the unbounded top bin.
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}

	return int(f), true
}

// HasSurvived reports whether the Survived flag parses as 1. Malformed
// flags count as not survived.
func (r Row) HasSurvived() bool {
	n, err := strconv.Atoi(strings.TrimSpace(r.Survived))
	if err != nil {
		return false
	}

	return n == 1
}
