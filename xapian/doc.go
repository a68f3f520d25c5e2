// Package xapian is a safe Go API over a native Xapian search engine.
//
// The package never exposes native handles. Every wrapper (Document,
// Database, WritableDatabase, Query, Enquire, Stemmer) owns exactly one
// native object and frees it on Close; using a wrapper after Close is a
// programming error and panics.
//
// Native iterators are drained eagerly: Terms, Values, AllTerms and
// Matches return plain slices and release the underlying cursors before
// returning, so results stay valid after the originating object is closed.
//
// Values and document data may hold arbitrary bytes. They cross the
// native C-string boundary through the binary-safe codec in
// internal/codec and are decoded on the way back. Terms are passed
// verbatim and therefore must not contain NUL.
//
// A Binding is created over an engine implementation:
//
//	b := xapian.New(embedded.New())        // pure Go, SQLite storage
//	e, err := cxapian.New()                // libxapian, requires -tags xapian
//	b := xapian.New(e)
//
// Wrappers are not safe for concurrent use.
package xapian
