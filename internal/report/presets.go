package report

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hupe1980/survivorpie/internal/filter"
)

// Preset sources.
const (
	SourceBuiltin = "builtin"
	SourceCustom  = "custom"
)

// PresetRow describes one named selection.
type PresetRow struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Description string `json:"description,omitempty"`
	Filter      string `json:"filter"`
}

// PresetList lists built-in and custom presets.
type PresetList struct {
	Presets []PresetRow `json:"presets"`
}

// BuildPresetList resolves every preset. Custom presets shadow built-ins of
// the same name; presets that fail to resolve are reported as errors.
func BuildPresetList(custom map[string]filter.PresetConfig) (*PresetList, error) {
	names := make(map[string]string)
	for _, n := range filter.BuiltinPresetNames() {
		names[n] = SourceBuiltin
	}

	for n := range custom {
		names[n] = SourceCustom
	}

	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}

	sort.Strings(sorted)

	out := &PresetList{Presets: make([]PresetRow, 0, len(sorted))}

	for _, n := range sorted {
		p, err := filter.ResolvePreset(n, custom)
		if err != nil {
			return nil, err
		}

		out.Presets = append(out.Presets, PresetRow{
			Name:        n,
			Source:      names[n],
			Description: p.Description,
			Filter:      p.Selection().String(),
		})
	}

	return out, nil
}

// Table renders the preset list.
func (l *PresetList) Table(m Mode) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Name", "Source", "Filter", "Description"})

	for _, p := range l.Presets {
		w.AppendRow(table.Row{p.Name, p.Source, p.Filter, p.Description})
	}

	return render(w, m)
}
