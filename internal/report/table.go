package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hupe1980/survivorpie/internal/output"
)

// Mode controls the table output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// Format names registered by RegisterFormats.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
)

// NoDataMessage is shown instead of a table when no dataset is loaded.
const NoDataMessage = "no data loaded"

// Tabular is implemented by values that can render themselves as a table.
type Tabular interface {
	Table(m Mode) string
}

// RegisterFormats adds the table and markdown formats to reg. Both accept
// any Tabular value.
func RegisterFormats(reg *output.Registry) {
	reg.Register(FormatTable, tabularEncoder(ASCII))
	reg.Register(FormatMarkdown, tabularEncoder(Markdown))
}

// NewRegistry returns the default structured formats plus table and markdown.
func NewRegistry() *output.Registry {
	reg := output.DefaultRegistry()
	RegisterFormats(reg)

	return reg
}

func tabularEncoder(m Mode) output.Encoder {
	return func(v any) ([]byte, error) {
		t, ok := v.(Tabular)
		if !ok {
			return nil, fmt.Errorf("value of type %T cannot be rendered as a table", v)
		}

		return []byte(t.Table(m)), nil
	}
}

func newWriter(m Mode) table.Writer {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}

	return w
}

func render(w table.Writer, m Mode) string {
	var s string

	switch m {
	case Markdown:
		s = w.RenderMarkdown()
	default:
		s = w.Render()
	}

	return s + "\n"
}

// Table renders the report. Unloaded reports render as NoDataMessage.
func (r *Report) Table(m Mode) string {
	var b strings.Builder

	heading := "Filter: " + r.Filter
	if m == Markdown {
		heading = "**Filter:** " + r.Filter
	}

	b.WriteString(heading + "\n\n")

	if !r.Loaded {
		b.WriteString(NoDataMessage + "\n")
		return b.String()
	}

	w := newWriter(m)
	w.AppendHeader(table.Row{"Outcome", "Passengers", "Percent"})

	for _, s := range r.Slices {
		w.AppendRow(table.Row{s.Label, s.Count, s.Percent.StringFixed(percentPlaces) + "%"})
	}

	total := "0.00%"
	if r.Matched > 0 {
		total = "100.00%"
	}

	w.AppendFooter(table.Row{"Total", r.Matched, total})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	b.WriteString(render(w, m))

	if fields := r.ExcludedFields(); len(fields) > 0 {
		ex := newWriter(m)
		ex.AppendHeader(table.Row{"Filter", "Excluded"})

		for _, f := range fields {
			ex.AppendRow(table.Row{f, r.ExcludedBy[f]})
		}

		ex.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})

		b.WriteString("\n")
		b.WriteString(render(ex, m))
	}

	fmt.Fprintf(&b, "\n%d of %d passengers matched\n", r.Matched, r.Rows)

	return b.String()
}
