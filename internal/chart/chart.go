// Package chart draws the survival pie chart of a report as a PNG or SVG
// image.
package chart

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/hupe1980/survivorpie/internal/config"
	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/report"
)

// Format is an image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

const (
	defaultWidth  = 512
	defaultHeight = 512
)

var (
	// ErrNoData is returned when the report was built without a dataset.
	ErrNoData = errors.New("no data loaded")
	// ErrNoMatches is returned when no passenger matches the selection;
	// an empty pie cannot be drawn.
	ErrNoMatches = errors.New("no passengers match the selection")
)

// DefaultColors are the slice fill colors used when none are configured.
var DefaultColors = map[string]string{
	filter.LabelSurvived: "#2e7d32",
	filter.LabelDied:     "#c62828",
}

// ParseFormat validates an image format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported image format %q (must be png or svg)", s)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to PNG.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return FormatSVG
	}

	return FormatPNG
}

// Slice is one drawn wedge.
type Slice struct {
	Label   string
	Count   int
	Percent string
	Color   string
}

// Pie describes a chart ready to be rendered.
type Pie struct {
	Title  string
	Width  int
	Height int
	Slices []Slice
}

// FromReport describes the pie of r using the overrides in cfg.
func FromReport(r *report.Report, cfg *config.RenderConfig) (*Pie, error) {
	if !r.Loaded {
		return nil, ErrNoData
	}

	if r.Matched == 0 {
		return nil, ErrNoMatches
	}

	if cfg == nil {
		cfg = &config.RenderConfig{}
	}

	p := &Pie{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	if p.Title == "" {
		p.Title = "Survival: " + r.Filter
	}

	if p.Width == 0 {
		p.Width = defaultWidth
	}

	if p.Height == 0 {
		p.Height = defaultHeight
	}

	for _, s := range r.Slices {
		color := cfg.Colors[s.Label]
		if color == "" {
			color = DefaultColors[s.Label]
		}

		p.Slices = append(p.Slices, Slice{
			Label:   s.Label,
			Count:   s.Count,
			Percent: s.Percent.StringFixed(2),
			Color:   color,
		})
	}

	return p, nil
}

// Render encodes the pie to w.
func (p *Pie) Render(w io.Writer, format Format) error {
	var provider gochart.RendererProvider

	switch format {
	case FormatPNG:
		provider = gochart.PNG
	case FormatSVG:
		provider = gochart.SVG
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}

	pie := gochart.PieChart{
		Title:  p.Title,
		Width:  p.Width,
		Height: p.Height,
		Values: p.values(),
	}

	if err := pie.Render(provider, w); err != nil {
		return fmt.Errorf("rendering %s chart: %w", format, err)
	}

	return nil
}

// values skips empty wedges, which the pie renderer cannot draw.
func (p *Pie) values() []gochart.Value {
	out := make([]gochart.Value, 0, len(p.Slices))

	for _, s := range p.Slices {
		if s.Count == 0 {
			continue
		}

		out = append(out, gochart.Value{
			Value: float64(s.Count),
			Label: fmt.Sprintf("%s %d (%s%%)", s.Label, s.Count, s.Percent),
			Style: gochart.Style{
				FillColor:   drawing.ColorFromHex(strings.TrimPrefix(s.Color, "#")),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
			},
		})
	}

	return out
}
