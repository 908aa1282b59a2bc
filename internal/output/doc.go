// Package output provides deterministic YAML/JSON serialization, output
// writers and a format registry for survival reports.
//
// The package is organized around three concerns:
//
//   - Serialization (serializer.go): Canonical YAML/JSON with sorted keys,
//     null stripping and a guaranteed trailing newline.
//
//   - Writers (writer.go): Pluggable output destinations via the [Writer]
//     interface, with [StdoutWriter] and [FileWriter] implementations.
//
//   - Formats (registry.go): A [Registry] mapping format names such as
//     "yaml" or "table" to [Encoder] functions.
package output
