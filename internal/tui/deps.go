package tui

import (
	"context"
	"log/slog"

	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/passenger"
)

// LoadFunc fetches the dataset. It runs off the UI goroutine.
type LoadFunc func(ctx context.Context) ([]passenger.Row, error)

// Deps are the collaborators of the explorer.
type Deps struct {
	// Engine holds rows and the selection. Required.
	Engine *filter.Engine
	// Load fetches the dataset on start and on reload. When nil the engine
	// is used as is.
	Load LoadFunc
	// Source names the dataset in the header, e.g. "train.csv".
	Source string

	Logger *slog.Logger
}
