package xapian

import (
	"fmt"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/handle"
)

// Database is a read-only view of an index.
type Database struct {
	h *handle.Handle[driven.Database]
}

// DocCount returns the number of documents.
func (db *Database) DocCount() uint32 {
	return db.h.Get().DocCount()
}

// UUID returns the database's unique identifier.
func (db *Database) UUID() string {
	return db.h.Get().UUID()
}

// Document loads a copy of the stored document id.
// The caller owns the returned document and must Close it.
func (db *Database) Document(id domain.DocumentID) (*Document, error) {
	doc, err := db.h.Get().Document(id)
	if err != nil {
		return nil, fmt.Errorf("xapian: get document %d: %w", id, err)
	}
	return &Document{h: handle.New(doc, driven.Document.Close)}, nil
}

// AllTerms returns every indexed term starting with prefix, in term order.
func (db *Database) AllTerms(prefix string) []string {
	native := db.h.Get()
	return drainTerms(termNameOps, native.AllTermsBegin(prefix), native.AllTermsEnd(prefix))
}

// Close releases the native database.
func (db *Database) Close() {
	db.h.Release()
}

// WritableDatabase is a database that accepts documents.
type WritableDatabase struct {
	Database
}

// AddDocument copies doc into the index and returns its ID.
// doc may be closed afterwards without affecting the stored copy.
func (w *WritableDatabase) AddDocument(doc *Document) (domain.DocumentID, error) {
	id, err := w.native().AddDocument(doc.native())
	if err != nil {
		return 0, fmt.Errorf("xapian: add document: %w", err)
	}
	return id, nil
}

// ReplaceDocument replaces the documents indexed by uniqueTerm with doc,
// adding doc when none exists.
func (w *WritableDatabase) ReplaceDocument(uniqueTerm string, doc *Document) (domain.DocumentID, error) {
	if err := validateTerm(uniqueTerm); err != nil {
		return 0, err
	}
	id, err := w.native().ReplaceDocument(uniqueTerm, doc.native())
	if err != nil {
		return 0, fmt.Errorf("xapian: replace document %q: %w", uniqueTerm, err)
	}
	return id, nil
}

// DeleteDocument removes the documents indexed by uniqueTerm.
func (w *WritableDatabase) DeleteDocument(uniqueTerm string) error {
	if err := validateTerm(uniqueTerm); err != nil {
		return err
	}
	if err := w.native().DeleteDocument(uniqueTerm); err != nil {
		return fmt.Errorf("xapian: delete document %q: %w", uniqueTerm, err)
	}
	return nil
}

// Commit flushes pending changes.
func (w *WritableDatabase) Commit() error {
	if err := w.native().Commit(); err != nil {
		return fmt.Errorf("xapian: commit: %w", err)
	}
	return nil
}

// Close commits pending changes and releases the native database.
// Closing twice is a no-op.
func (w *WritableDatabase) Close() error {
	if w.h.Released() {
		return nil
	}
	err := w.Commit()
	w.h.Release()
	return err
}

func (w *WritableDatabase) native() driven.WritableDatabase {
	return w.h.Get().(driven.WritableDatabase)
}
