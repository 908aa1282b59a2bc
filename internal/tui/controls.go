package tui

import (
	"strconv"

	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/passenger"
)

// control is one selectable filter value.
type control struct {
	field filter.Field
	value string
	label string
}

var fieldTitles = map[filter.Field]string{
	filter.FieldSex:      "Sex",
	filter.FieldEmbarked: "Embarked",
	filter.FieldAge:      "Age",
	filter.FieldPclass:   "Class",
}

// buildControls lists every filter value in display order.
func buildControls() []control {
	controls := []control{
		{field: filter.FieldSex, value: passenger.SexFemale, label: "Female"},
		{field: filter.FieldSex, value: passenger.SexMale, label: "Male"},
	}

	for _, port := range passenger.Ports {
		controls = append(controls, control{
			field: filter.FieldEmbarked,
			value: port,
			label: passenger.PortName(port) + " (" + port + ")",
		})
	}

	for _, r := range filter.AgeRanges() {
		controls = append(controls, control{
			field: filter.FieldAge,
			value: strconv.Itoa(r.Index),
			label: r.Label,
		})
	}

	for _, c := range []string{"1", "2", "3"} {
		controls = append(controls, control{
			field: filter.FieldPclass,
			value: c,
			label: classLabel(c),
		})
	}

	return controls
}

func classLabel(c string) string {
	switch c {
	case "1":
		return "1st class"
	case "2":
		return "2nd class"
	default:
		return "3rd class"
	}
}

// selected reports whether c is active in sel.
func (c control) selected(sel filter.Selection) bool {
	switch c.field {
	case filter.FieldSex:
		return sel.Sex() == c.value
	case filter.FieldPclass:
		return sel.Pclass() == c.value
	case filter.FieldEmbarked:
		return sel.HasEmbarked(c.value)
	case filter.FieldAge:
		i, err := strconv.Atoi(c.value)
		return err == nil && sel.HasAgeBin(i)
	default:
		return false
	}
}

// toggleValue is the value to send to the engine when c is toggled.
// Single-select fields clear when their active value is toggled again.
func (c control) toggleValue(sel filter.Selection) string {
	switch c.field {
	case filter.FieldSex, filter.FieldPclass:
		if c.selected(sel) {
			return ""
		}
	}

	return c.value
}
