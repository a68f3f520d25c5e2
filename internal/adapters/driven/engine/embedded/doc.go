// Package embedded provides a pure-Go implementation of the native
// engine port.
//
// It honours the same contract as the libxapian binding (documents with
// postings and values, begin/end cursors, a term generator, stemmers,
// read-only and writable databases, boolean queries and match sets) so
// that the binding layer and everything above it runs without cgo.
//
// It is not a reimplementation of Xapian:
//
//   - Storage is a SQLite file per database directory (storage/sqlite).
//   - Stemming uses the Snowball algorithms in github.com/kljensen/snowball
//     and github.com/blevesearch/snowballstem. lovins and kraaij_pohlmann
//     have neither and report ErrNotImplemented.
//   - Match weights are the sum of the within-document frequencies of the
//     weighted query terms.
//   - The term generator numbers positions from zero and, when a stemmer
//     is set, posts the stemmed form of each word at its position.
package embedded
