// Package sqlite provides the SQLite-backed index store used by the
// embedded engine.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, so the embedded engine works wherever libxapian is unavailable.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Document data blobs are zstd-compressed; positions are delta-encoded uvarints.
//
// # Data Location
//
// An index is a directory holding a single index.sqlite file, mirroring the
// directory layout of native Xapian databases.
//
// # Transactions
//
// Writes accumulate in one transaction until Commit or Close. Reads made
// through the same Store see pending writes. A Store is not safe for
// concurrent use.
package sqlite
