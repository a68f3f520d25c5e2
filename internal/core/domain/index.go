package domain

// StoredPosting is one term of a stored document.
type StoredPosting struct {
	// Term is the indexed term.
	Term string

	// Wdf is the within-document frequency.
	Wdf uint32

	// Positions lists occurrences in ascending order.
	Positions []Position
}

// StoredDocument is the persisted form of a document.
// Data and values hold codec-escaped, NUL-free strings.
type StoredDocument struct {
	// ID is zero until the document is stored.
	ID DocumentID

	// Data is the document's data blob.
	Data string

	// Postings lists the terms in ascending term order.
	Postings []StoredPosting

	// Values maps slots to values.
	Values map[ValueNumber]string
}

// PostingEntry is one document in a term's posting list.
type PostingEntry struct {
	// DocID is the document containing the term.
	DocID DocumentID

	// Wdf is the term's within-document frequency in that document.
	Wdf uint32
}
