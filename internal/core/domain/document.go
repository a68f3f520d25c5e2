package domain

// DocumentID identifies a document stored in a database.
// IDs are assigned by the engine and start at 1.
type DocumentID uint32

// Position is the offset of a term occurrence within a document's text.
type Position uint32

// ValueNumber identifies a value slot within a document.
type ValueNumber uint32

// Term is an indexed token of a document.
type Term struct {
	// Name is the term as stored in the index, including any prefix.
	Name string

	// Wdf is the within-document frequency.
	Wdf uint32

	// Positions lists occurrences in ascending order.
	// Empty when the document carries no positional data for the term.
	Positions []Position
}

// DBAction selects how a writable database is opened.
// The numeric values match the native engine's constants.
type DBAction int

const (
	// DBCreateOrOpen opens an existing database or creates a new one.
	DBCreateOrOpen DBAction = 1

	// DBCreate creates a new database and fails if one exists.
	DBCreate DBAction = 2

	// DBCreateOrOverwrite replaces any existing database.
	DBCreateOrOverwrite DBAction = 3

	// DBOpen opens an existing database and fails if none exists.
	DBOpen DBAction = 4
)

// String returns the string representation.
func (a DBAction) String() string {
	switch a {
	case DBCreateOrOpen:
		return "create_or_open"
	case DBCreate:
		return "create"
	case DBCreateOrOverwrite:
		return "create_or_overwrite"
	case DBOpen:
		return "open"
	default:
		return unknownDescription
	}
}

// IsValid returns true if the action is recognised.
func (a DBAction) IsValid() bool {
	return a >= DBCreateOrOpen && a <= DBOpen
}

// DocumentDetails is the stored content of a single document.
type DocumentDetails struct {
	// ID is the document's identifier.
	ID DocumentID

	// Data is the document's data blob.
	Data []byte

	// Terms lists the document's terms in term order.
	Terms []Term

	// Values maps slots to stored values.
	Values map[ValueNumber][]byte
}
