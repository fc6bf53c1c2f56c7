// Package output renders grouped manifests and writes them to disk.
//
// The package is organized around three concerns:
//
//   - Serialization (serializer.go): YAML through the same library used for
//     decoding, and indented JSON.
//
//   - Formats (registry.go): A [Registry] of named [Format] values pairing a
//     serializer with a file extension.
//
//   - Files (files.go, writer.go): [Plan] maps each grouping key to a path
//     inside the output directory and [WriteFiles] writes them one by one
//     through a [Writer], normally a [FileWriter].
package output
