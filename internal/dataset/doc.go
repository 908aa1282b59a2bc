// Package dataset loads passenger CSV files into immutable rows.
//
// Loading is the only asynchronous boundary of the application: a one-shot
// read-and-parse that either yields a complete snapshot or an error. Several
// files may be read concurrently; their rows are concatenated in argument
// order.
package dataset
