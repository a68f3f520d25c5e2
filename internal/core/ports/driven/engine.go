package driven

import (
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

// Engine is the native search-engine ABI consumed by the binding layer.
// Implementations: cgo/xapian (libxapian) and engine/embedded (pure Go).
//
// Every object returned by an Engine is exclusively owned by its caller
// and must be released exactly once through its Close method. Objects
// are not safe for concurrent use.
type Engine interface {
	// Name identifies the implementation (e.g. "xapian 1.4.22").
	Name() string

	// OpenDatabase opens a read-only database.
	// Failures are reported as *domain.NativeError.
	OpenDatabase(path string) (Database, error)

	// OpenWritableDatabase opens or creates a writable database.
	// Failures are reported as *domain.NativeError.
	OpenWritableDatabase(path string, action domain.DBAction) (WritableDatabase, error)

	// NewDocument allocates an empty document.
	NewDocument() Document

	// NewQuery creates a single-term query.
	NewQuery(term string) Query

	// CombineQueries joins two queries. The result copies both operands,
	// so a and b may be closed independently.
	CombineQueries(op domain.QueryOp, a, b Query) (Query, error)

	// NewEnquire creates a query-execution context over db.
	NewEnquire(db Database) (Enquire, error)

	// NewStemmer creates a stemmer from a native language identifier.
	NewStemmer(language string) (Stemmer, error)

	// NewTermGenerator creates a term generator with no stemmer or document.
	NewTermGenerator() TermGenerator
}

// Database is a read-only view of an index.
type Database interface {
	// DocCount returns the number of documents.
	DocCount() uint32

	// UUID returns the database's unique identifier.
	UUID() string

	// Document loads a copy of a stored document.
	// Unknown IDs are reported as *domain.NativeError wrapping ErrNotFound semantics.
	Document(id domain.DocumentID) (Document, error)

	// AllTermsBegin and AllTermsEnd bound the terms starting with prefix.
	AllTermsBegin(prefix string) TermCursor
	AllTermsEnd(prefix string) TermCursor

	// Close releases the database handle.
	Close()
}

// WritableDatabase is a database that accepts changes.
// Pending changes are committed by Commit or Close.
type WritableDatabase interface {
	Database

	// AddDocument copies doc into the index and returns its new ID.
	AddDocument(doc Document) (domain.DocumentID, error)

	// ReplaceDocument replaces every document indexed by uniqueTerm with doc,
	// or adds doc when none exists.
	ReplaceDocument(uniqueTerm string, doc Document) (domain.DocumentID, error)

	// DeleteDocument removes every document indexed by uniqueTerm.
	DeleteDocument(uniqueTerm string) error

	// Commit flushes pending changes.
	Commit() error
}

// Document is a native document handle.
type Document interface {
	// SetData replaces the data blob. data must not contain NUL.
	SetData(data string)

	// Data returns the data blob.
	Data() string

	// AddPosting records term at pos and increases its wdf by wdfInc.
	AddPosting(term string, pos domain.Position, wdfInc uint32)

	// AddTerm increases the wdf of term by wdfInc without a position.
	AddTerm(term string, wdfInc uint32)

	// AddValue sets the value in slot, replacing any previous one.
	// value must not contain NUL.
	AddValue(slot domain.ValueNumber, value string)

	// TermsBegin and TermsEnd bound the document's term list.
	TermsBegin() TermCursor
	TermsEnd() TermCursor

	// ValuesBegin and ValuesEnd bound the document's values in slot order.
	ValuesBegin() ValueCursor
	ValuesEnd() ValueCursor

	// Close releases the document handle.
	Close()
}

// Query is a native query tree.
type Query interface {
	// Describe returns the engine's textual description of the query.
	Describe() string

	// Close releases the query handle.
	Close()
}

// Enquire runs queries against a database.
type Enquire interface {
	// SetQuery selects the query to run. The query is copied.
	SetQuery(q Query)

	// MSet runs the query and returns up to maxItems matches starting at first.
	MSet(first, maxItems int) (MSet, error)

	// Close releases the enquire handle.
	Close()
}

// MSet is a page of ranked matches.
type MSet interface {
	// Size returns the number of matches in the page.
	Size() int

	// Begin and End bound the matches in rank order.
	Begin() MatchCursor
	End() MatchCursor

	// Close releases the match set.
	Close()
}

// Stemmer reduces words to their stems.
type Stemmer interface {
	// Stem returns the stemmed form of word.
	Stem(word string) string

	// Describe returns the engine's description of the stemmer.
	Describe() string

	// Close releases the stemmer handle.
	Close()
}

// TermGenerator tokenises text into a document's postings.
type TermGenerator interface {
	// SetStemmer attaches a stemmer. The stemmer is copied.
	SetStemmer(s Stemmer)

	// SetDocument binds the generator to doc. doc must outlive the generator's use.
	SetDocument(doc Document)

	// IndexText tokenises text and adds postings with the given wdf increment and prefix.
	IndexText(text string, wdfInc uint32, prefix string)

	// Close releases the generator handle.
	Close()
}

// Cursor is one end of a native begin/end iterator pair.
type Cursor[T any] interface {
	// Next advances the cursor by one element.
	Next()

	// Get returns the element under the cursor without moving it.
	Get() T

	// Equal reports whether the cursor has reached other.
	Equal(other Cursor[T]) bool

	// Close releases the cursor handle.
	Close()
}

// TermEntry is the element produced by a TermCursor.
type TermEntry struct {
	// Name is the term.
	Name string

	// Wdf is the within-document frequency (zero for all-terms lists).
	Wdf uint32

	// PositionCount is the number of recorded positions.
	PositionCount int
}

// TermCursor walks a term list and can open the positions of the current term.
type TermCursor interface {
	Cursor[TermEntry]

	// PositionsBegin and PositionsEnd bound the positions of the current term.
	PositionsBegin() PositionCursor
	PositionsEnd() PositionCursor
}

// PositionCursor walks the positions of a term.
type PositionCursor = Cursor[domain.Position]

// ValueEntry is the element produced by a ValueCursor.
type ValueEntry struct {
	// Slot is the value number.
	Slot domain.ValueNumber

	// Value is the stored value.
	Value string
}

// ValueCursor walks a document's values.
type ValueCursor = Cursor[ValueEntry]

// MatchCursor walks a match set.
type MatchCursor = Cursor[domain.Match]
