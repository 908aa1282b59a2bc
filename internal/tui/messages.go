package tui

import "github.com/hupe1980/survivorpie/internal/passenger"

type datasetLoadedMsg struct {
	rows []passenger.Row
	err  error
}
