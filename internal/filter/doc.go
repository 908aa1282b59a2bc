// Package filter implements the survival filter engine: evaluation of a
// passenger [Selection] against in-memory rows and aggregation of the
// matching rows into Survived/Died counts.
//
// The package is built around the immutable [Selection] value, the frozen
// age range table returned by [AgeRanges], and the [Predicate] interface
// with its [Chain], which apply the active constraints in a fixed order.
// [Engine] wraps a loaded row set and the current selection for callers
// that drive the engine interactively.
package filter
