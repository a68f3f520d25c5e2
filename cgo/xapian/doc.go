// Package xapian binds libxapian through a small C shim and implements
// driven.Engine on top of it.
//
// Every shim function that can throw takes a char** out-parameter; a
// non-NULL value is a malloc'd "ErrorType: description" string that the
// Go side copies into a *domain.NativeError and frees. Strings crossing
// the boundary carry explicit lengths.
//
// Build requires:
//   - Xapian development libraries (xapian-core)
//   - Install via: brew install xapian (macOS) or apt install libxapian-dev (Linux)
//   - The xapian build tag: go build -tags xapian
//
// Without the tag (or without cgo) New reports domain.ErrNotImplemented.
package xapian
