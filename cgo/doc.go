// Package cgo provides CGO bindings for native libraries.
// This package isolates all CGO code from the pure Go core.
//
// Sub-packages:
//   - xapian: libxapian bindings implementing the native engine port
package cgo
