package filter

import (
	"log/slog"
	"sync"

	"github.com/hupe1980/survivorpie/internal/passenger"
)

// State is the engine's load state.
type State int

// Engine states. The transition Unloaded -> Loaded is one-way.
const (
	StateUnloaded State = iota
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}

	return "unloaded"
}

// Engine holds a loaded row set and the current selection. Every call to
// Aggregate rescans the full row set; this is fine for datasets of a few
// thousand rows and is the engine's scalability ceiling.
//
// Engine is safe for concurrent use so that a reloading watcher and an
// interactive front end can share one instance.
type Engine struct {
	mu     sync.RWMutex
	rows   []passenger.Row
	state  State
	sel    Selection
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSelection sets the initial selection.
func WithSelection(sel Selection) EngineOption {
	return func(e *Engine) {
		e.sel = sel
	}
}

// NewEngine creates an unloaded engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: slog.Default()}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Load installs a row set and moves the engine to Loaded. Calling Load again
// replaces the snapshot; the engine never returns to Unloaded. The slice is
// retained, callers must not modify it afterwards.
func (e *Engine) Load(rows []passenger.Row) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.state
	e.rows = rows
	e.state = StateLoaded

	e.logger.Debug("dataset installed",
		slog.Int("rows", len(rows)),
		slog.String("previousState", prev.String()),
	)
}

// State returns the current load state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.state
}

// Loaded reports whether a dataset has arrived.
func (e *Engine) Loaded() bool { return e.State() == StateLoaded }

// Len returns the size of the loaded row set.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.rows)
}

// Rows returns the loaded row set.
func (e *Engine) Rows() []passenger.Row {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.rows
}

// SetFilter updates one dimension of the selection; see [Selection.Set].
func (e *Engine) SetFilter(field Field, value string) Selection {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sel = e.sel.Set(field, value)

	e.logger.Debug("filter updated",
		slog.String("field", string(field)),
		slog.String("value", value),
		slog.String("selection", e.sel.String()),
	)

	return e.sel
}

// SetSelection replaces the whole selection.
func (e *Engine) SetSelection(sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sel = sel
}

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.sel
}

// Aggregate computes the Survived/Died counts for the current selection.
// It returns nil while no data is loaded.
func (e *Engine) Aggregate() *Aggregate {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Compute(e.rows, e.sel)
}

// AgeRanges returns the static age range table.
func (e *Engine) AgeRanges() []AgeRange { return AgeRanges() }
