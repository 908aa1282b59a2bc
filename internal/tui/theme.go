package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Heading  lipgloss.Style
	Cursor   lipgloss.Style
	Error    lipgloss.Style
	Survived lipgloss.Style
	Died     lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Heading:  lipgloss.NewStyle().Bold(true).Underline(true),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Survived: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Died:     lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	}
}

// PlainTheme renders without colors or borders, for --no-color.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()

	return Theme{
		Title:    plain,
		Subtitle: plain,
		Help:     plain,
		Card:     plain,
		Heading:  plain,
		Cursor:   plain,
		Error:    plain,
		Survived: plain,
		Died:     plain,
	}
}
