package filter

import (
	"strconv"
	"strings"
)

// NoUpperBound marks an age range without an upper edge.
const NoUpperBound = -1

// UnknownAgeRange is the index of the bin that matches rows without an age.
const UnknownAgeRange = 5

// AgeRange is one bin of the static age table. Min is inclusive, Max is
// exclusive. The Unknown bin has no bounds and matches only missing ages.
type AgeRange struct {
	Index   int    `json:"index"`
	Key     string `json:"key"`
	Label   string `json:"label"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Unknown bool   `json:"unknown,omitempty"`
}

// Contains reports whether a known age falls inside the range. The Unknown
// bin never contains a known age.
func (r AgeRange) Contains(age int) bool {
	if r.Unknown {
		return false
	}

	if age < r.Min {
		return false
	}

	return r.Max == NoUpperBound || age < r.Max
}

// Bounds returns a compact interval notation, e.g. "[16,25)".
func (r AgeRange) Bounds() string {
	if r.Unknown {
		return "-"
	}

	if r.Max == NoUpperBound {
		return "[" + strconv.Itoa(r.Min) + ",∞)"
	}

	return "[" + strconv.Itoa(r.Min) + "," + strconv.Itoa(r.Max) + ")"
}

var ageRanges = [...]AgeRange{
	{Index: 0, Key: "under-16", Label: "Under 16", Min: 0, Max: 16},
	{Index: 1, Key: "16-25", Label: "16 to 25", Min: 16, Max: 25},
	{Index: 2, Key: "25-40", Label: "25 to 40", Min: 25, Max: 40},
	{Index: 3, Key: "40-60", Label: "40 to 60", Min: 40, Max: 60},
	{Index: 4, Key: "over-60", Label: "Over 60", Min: 60, Max: NoUpperBound},
	{Index: UnknownAgeRange, Key: "unknown", Label: "Unknown", Unknown: true},
}

// AgeRanges returns a copy of the age range table in display order.
func AgeRanges() []AgeRange {
	out := make([]AgeRange, len(ageRanges))
	copy(out, ageRanges[:])

	return out
}

// AgeRangeAt returns the bin at index i.
func AgeRangeAt(i int) (AgeRange, bool) {
	if i < 0 || i >= len(ageRanges) {
		return AgeRange{}, false
	}

	return ageRanges[i], true
}

// ResolveAgeRange accepts a bin index ("2"), key ("25-40") or label
// ("25 to 40") and returns the matching bin.
func ResolveAgeRange(s string) (AgeRange, bool) {
	s = strings.TrimSpace(s)

	if i, err := strconv.Atoi(s); err == nil {
		return AgeRangeAt(i)
	}

	for _, r := range ageRanges {
		if strings.EqualFold(s, r.Key) || strings.EqualFold(s, r.Label) {
			return r, true
		}
	}

	return AgeRange{}, false
}
