package embedded

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/sercha-xapian/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/logger"
)

// Name identifies the embedded engine.
const Name = "embedded"

// Ensure Engine implements the interface.
var _ driven.Engine = (*Engine)(nil)

// Engine is the pure-Go engine.
type Engine struct{}

// New creates an embedded engine.
func New() *Engine {
	return &Engine{}
}

// Name identifies the implementation.
func (e *Engine) Name() string {
	return Name
}

// OpenDatabase opens an existing database directory for reading.
func (e *Engine) OpenDatabase(path string) (driven.Database, error) {
	store, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, openError(path, err)
	}
	logger.Debug("embedded: opened %s read-only (uuid %s)", path, store.UUID())
	return &database{store: store, path: path}, nil
}

// OpenWritableDatabase opens or creates a database directory for writing.
func (e *Engine) OpenWritableDatabase(path string, action domain.DBAction) (driven.WritableDatabase, error) {
	store, err := sqlite.Open(path, action)
	if err != nil {
		return nil, openError(path, err)
	}
	logger.Debug("embedded: opened %s for writing (%s, uuid %s)", path, action, store.UUID())
	return &database{store: store, path: path, writable: true}, nil
}

// openError reports store failures in the native engine's terms.
func openError(path string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return &domain.NativeError{
			Op:      "open database",
			Message: fmt.Sprintf("DatabaseOpeningError: Couldn't detect type of database: %s", path),
		}
	case errors.Is(err, domain.ErrAlreadyExists):
		return &domain.NativeError{
			Op:      "create database",
			Message: fmt.Sprintf("DatabaseCreateError: Can't create new database at '%s': a database already exists", path),
		}
	default:
		return &domain.NativeError{Op: "open database", Message: "DatabaseOpeningError: " + err.Error()}
	}
}

// NewDocument allocates an empty document.
func (e *Engine) NewDocument() driven.Document {
	return newDocument()
}

// NewQuery creates a single-term query.
func (e *Engine) NewQuery(term string) driven.Query {
	return &query{term: term}
}

// CombineQueries joins copies of a and b.
func (e *Engine) CombineQueries(op domain.QueryOp, a, b driven.Query) (driven.Query, error) {
	qa, okA := a.(*query)
	qb, okB := b.(*query)
	if !okA || !okB {
		return nil, fmt.Errorf("embedded: %w", domain.ErrEngineMismatch)
	}
	if !op.IsValid() {
		return nil, &domain.NativeError{
			Op:      "combine queries",
			Message: fmt.Sprintf("InvalidArgumentError: Unknown query operator %d", int(op)),
		}
	}
	qa.check()
	qb.check()
	return &query{op: op, left: qa.clone(), right: qb.clone()}, nil
}

// NewEnquire creates a query-execution context over db.
func (e *Engine) NewEnquire(db driven.Database) (driven.Enquire, error) {
	d, ok := db.(*database)
	if !ok {
		return nil, fmt.Errorf("embedded: %w", domain.ErrEngineMismatch)
	}
	d.check()
	return &enquire{db: d}, nil
}

// NewStemmer creates a stemmer for a native language identifier.
func (e *Engine) NewStemmer(language string) (driven.Stemmer, error) {
	s, err := newStemmer(language)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewTermGenerator creates a term generator.
func (e *Engine) NewTermGenerator() driven.TermGenerator {
	return newTermGenerator()
}
