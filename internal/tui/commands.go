package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func cmdLoadDataset(ctx context.Context, load LoadFunc) tea.Cmd {
	if load == nil {
		return nil
	}

	return func() tea.Msg {
		rows, err := load(ctx)
		return datasetLoadedMsg{rows: rows, err: err}
	}
}
