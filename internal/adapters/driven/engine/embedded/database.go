package embedded

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/logger"
)

// Ensure database implements the interfaces.
var (
	_ driven.Database         = (*database)(nil)
	_ driven.WritableDatabase = (*database)(nil)
)

// database wraps an index store. The native ABI has no error channel for
// read accessors, so their store failures panic like a native exception
// would.
type database struct {
	store    driven.IndexStore
	path     string
	writable bool
	closed   bool
}

func (db *database) DocCount() uint32 {
	db.check()
	n, err := db.store.DocCount(context.Background())
	if err != nil {
		panic(fmt.Sprintf("embedded: %s: %v", db.path, err))
	}
	return n
}

func (db *database) UUID() string {
	db.check()
	return db.store.UUID()
}

func (db *database) Document(id domain.DocumentID) (driven.Document, error) {
	db.check()
	stored, err := db.store.Get(context.Background(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.NativeError{
			Op:      "get document",
			Message: fmt.Sprintf("DocNotFoundError: Document %d not found", id),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("embedded: %w", err)
	}
	return documentFromStored(stored), nil
}

func (db *database) AllTermsBegin(prefix string) driven.TermCursor {
	begin, _ := termCursors(db.allTerms(prefix))
	return begin
}

func (db *database) AllTermsEnd(prefix string) driven.TermCursor {
	_, end := termCursors(db.allTerms(prefix))
	return end
}

func (db *database) allTerms(prefix string) []termSnapshot {
	db.check()
	terms, err := db.store.Terms(context.Background(), prefix)
	if err != nil {
		panic(fmt.Sprintf("embedded: %s: %v", db.path, err))
	}
	out := make([]termSnapshot, len(terms))
	for i, t := range terms {
		out[i] = termSnapshot{name: t}
	}
	return out
}

func (db *database) AddDocument(doc driven.Document) (domain.DocumentID, error) {
	d, err := db.writableDoc(doc)
	if err != nil {
		return 0, err
	}
	id, err := db.store.Add(context.Background(), d.stored())
	if err != nil {
		return 0, fmt.Errorf("embedded: %w", err)
	}
	logger.Debug("embedded: added document %d to %s", id, db.path)
	return id, nil
}

func (db *database) ReplaceDocument(uniqueTerm string, doc driven.Document) (domain.DocumentID, error) {
	d, err := db.writableDoc(doc)
	if err != nil {
		return 0, err
	}
	id, err := db.store.Replace(context.Background(), uniqueTerm, d.stored())
	if err != nil {
		return 0, fmt.Errorf("embedded: %w", err)
	}
	logger.Debug("embedded: replaced document %d (%s) in %s", id, uniqueTerm, db.path)
	return id, nil
}

func (db *database) DeleteDocument(uniqueTerm string) error {
	if err := db.checkWritable(); err != nil {
		return err
	}
	n, err := db.store.DeleteByTerm(context.Background(), uniqueTerm)
	if err != nil {
		return fmt.Errorf("embedded: %w", err)
	}
	logger.Debug("embedded: deleted %d document(s) indexed by %s", n, uniqueTerm)
	return nil
}

func (db *database) Commit() error {
	if err := db.checkWritable(); err != nil {
		return err
	}
	if err := db.store.Commit(); err != nil {
		return fmt.Errorf("embedded: %w", err)
	}
	return nil
}

// Close commits pending changes. Commit failures are logged because the
// native ABI's delete call cannot report them.
func (db *database) Close() {
	if db.closed {
		return
	}
	db.closed = true
	if err := db.store.Close(); err != nil {
		logger.Warn("embedded: closing %s: %v", db.path, err)
	}
}

func (db *database) writableDoc(doc driven.Document) (*document, error) {
	if err := db.checkWritable(); err != nil {
		return nil, err
	}
	d, ok := doc.(*document)
	if !ok {
		return nil, fmt.Errorf("embedded: %w", domain.ErrEngineMismatch)
	}
	d.check()
	return d, nil
}

func (db *database) checkWritable() error {
	db.check()
	if !db.writable {
		return &domain.NativeError{Op: "write", Message: "InvalidOperationError: database is read-only"}
	}
	return nil
}

func (db *database) check() {
	if db.closed {
		panic("embedded: use of closed database")
	}
}
