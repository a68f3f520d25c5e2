// Package domain defines the core types of the Xapian binding layer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Term: An indexed token with its within-document frequency and positions
//   - ValueNumber: A value slot within a document
//   - Stemmer: The closed table of stemming languages
//   - QueryOp: Operators used to combine queries
//   - Match: One entry of a match set
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
