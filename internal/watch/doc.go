// Package watch monitors dataset CSV files for changes, debounces rapid
// events and triggers a reload-and-recompute run after each quiet period.
package watch
