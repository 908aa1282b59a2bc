// Package tui implements the interactive survival explorer: a cursor over
// the filter controls, toggled with space, and a live pie summary.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/logging"
)

type model struct {
	ctx   context.Context
	theme Theme
	deps  Deps
	keys  keyMap
	help  help.Model

	controls []control
	cursor   int
	width    int

	loading bool
	loadErr error
}

// Option tweaks the explorer.
type Option func(*model)

// WithTheme overrides the default theme.
func WithTheme(t Theme) Option {
	return func(m *model) { m.theme = t }
}

// Run starts the explorer and blocks until the user quits or ctx is done.
func Run(ctx context.Context, deps Deps, opts ...Option) error {
	if deps.Engine == nil {
		return errors.New("tui: engine is required")
	}

	m := newModel(ctx, deps, opts...)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

func newModel(ctx context.Context, deps Deps, opts ...Option) model {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}

	m := model{
		ctx:      ctx,
		theme:    DefaultTheme(),
		deps:     deps,
		keys:     defaultKeyMap(),
		help:     help.New(),
		controls: buildControls(),
		loading:  deps.Load != nil,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

func (m model) Init() tea.Cmd {
	return cmdLoadDataset(m.ctx, m.deps.Load)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case datasetLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// A failed load keeps whatever the engine already had.
			m.loadErr = msg.err
			m.deps.Logger.Error("dataset load failed", slog.String("error", msg.err.Error()))
			return m, nil
		}

		m.loadErr = nil
		m.deps.Engine.Load(msg.rows)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.controls)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			c := m.controls[m.cursor]
			m.deps.Engine.SetFilter(c.field, c.toggleValue(m.deps.Engine.Selection()))
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.deps.Engine.SetSelection(filter.Selection{})
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			if m.deps.Load == nil || m.loading {
				return m, nil
			}
			m.loading = true
			return m, cmdLoadDataset(m.ctx, m.deps.Load)
		}
	}

	return m, nil
}
