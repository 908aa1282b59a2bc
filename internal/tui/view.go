package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/report"
)

const barWidth = 40

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	header := m.theme.Title.Render("Titanic survival explorer") + "\n" +
		m.theme.Subtitle.Render(m.statusLine()) + "\n"

	if m.loadErr != nil {
		header += m.theme.Error.Render("load failed: "+m.loadErr.Error()) + "\n"
	}

	sel := m.deps.Engine.Selection()

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Card.Render(m.renderControls(sel)),
		"  ",
		m.theme.Card.Render(m.renderSummary(sel)),
	)

	return wrap.Render(header + "\n" + body + "\n" + m.help.View(m.keys))
}

func (m model) statusLine() string {
	source := m.deps.Source
	if source == "" {
		source = "dataset"
	}

	switch {
	case m.loading:
		return "loading " + source + "…"
	case m.deps.Engine.Loaded():
		return fmt.Sprintf("%s: %d passengers", source, m.deps.Engine.Len())
	default:
		return source + ": " + report.NoDataMessage
	}
}

func (m model) renderControls(sel filter.Selection) string {
	var b strings.Builder

	var current filter.Field

	for i, c := range m.controls {
		if c.field != current {
			if current != "" {
				b.WriteString("\n")
			}

			b.WriteString(m.theme.Heading.Render(fieldTitles[c.field]) + "\n")
			current = c.field
		}

		box := "[ ]"
		if c.selected(sel) {
			box = "[x]"
		}

		line := box + " " + c.label
		if i == m.cursor {
			b.WriteString(m.theme.Cursor.Render("> "+line) + "\n")
			continue
		}

		b.WriteString("  " + line + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m model) renderSummary(sel filter.Selection) string {
	var b strings.Builder

	b.WriteString(m.theme.Heading.Render("Survival") + "\n")
	b.WriteString(m.theme.Subtitle.Render(sel.String()) + "\n\n")

	agg := m.deps.Engine.Aggregate()

	switch {
	case agg == nil:
		b.WriteString(report.NoDataMessage)
		return b.String()
	case agg.Total() == 0:
		b.WriteString("0 matches")
		return b.String()
	}

	b.WriteString(m.renderBar(*agg) + "\n\n")

	total := agg.Total()
	fmt.Fprintf(&b, "%s %4d  %6s%%\n", m.theme.Survived.Render("■ Survived"), agg.Survived,
		report.Percent(agg.Survived, total).StringFixed(2))
	fmt.Fprintf(&b, "%s %4d  %6s%%\n", m.theme.Died.Render("■ Died    "), agg.Died,
		report.Percent(agg.Died, total).StringFixed(2))
	fmt.Fprintf(&b, "\n%d of %d passengers", total, m.deps.Engine.Len())

	return b.String()
}

// renderBar draws the survived share as a proportional horizontal bar.
func (m model) renderBar(agg filter.Aggregate) string {
	n := barCells(agg.Survived, agg.Total(), barWidth)

	return m.theme.Survived.Render(strings.Repeat("█", n)) +
		m.theme.Died.Render(strings.Repeat("█", barWidth-n))
}

// barCells rounds count/total*width to the nearest cell.
func barCells(count, total, width int) int {
	if total == 0 {
		return 0
	}

	return (2*count*width + total) / (2 * total)
}
