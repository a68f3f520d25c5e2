package domain

import (
	"fmt"
	"strings"
)

// QueryOp combines two subqueries.
// The numeric values match the native engine's operator codes.
type QueryOp int

// Supported query operators.
const (
	// OpAnd matches documents matching both subqueries.
	OpAnd QueryOp = 0

	// OpOr matches documents matching either subquery.
	OpOr QueryOp = 1

	// OpAndNot matches the left subquery minus the right one.
	OpAndNot QueryOp = 2

	// OpXor matches documents matching exactly one subquery.
	OpXor QueryOp = 3

	// OpAndMaybe matches the left subquery; the right one only adds weight.
	OpAndMaybe QueryOp = 4

	// OpFilter matches both subqueries; only the left one adds weight.
	OpFilter QueryOp = 5
)

// String returns the operator name used in query descriptions.
func (op QueryOp) String() string {
	switch op {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpAndNot:
		return "AND_NOT"
	case OpXor:
		return "XOR"
	case OpAndMaybe:
		return "AND_MAYBE"
	case OpFilter:
		return "FILTER"
	default:
		return unknownDescription
	}
}

// IsValid returns true if the operator is recognised.
func (op QueryOp) IsValid() bool {
	return op >= OpAnd && op <= OpFilter
}

// ParseQueryOp resolves an operator name such as "and" or "AND_NOT".
func ParseQueryOp(v string) (QueryOp, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), "-", "_")
	for op := OpAnd; op <= OpFilter; op++ {
		if strings.EqualFold(v, op.String()) {
			return op, nil
		}
	}
	return OpAnd, fmt.Errorf("%w: query operator %q", ErrInvalidInput, v)
}

// Match is one entry of a match set.
type Match struct {
	// DocID is the matching document.
	DocID DocumentID

	// Rank is the zero-based position in the full result list.
	Rank int

	// Weight is the relevance weight assigned by the engine.
	Weight float64

	// Percent is the weight scaled against the best match (0-100).
	Percent int
}

// SearchHit represents a single search result with its stored fields.
type SearchHit struct {
	// Match carries the engine's ranking data.
	Match

	// Path is the file the document was indexed from.
	Path string

	// Data is the document's data blob.
	Data string
}

// SearchResults is the outcome of a search.
type SearchResults struct {
	// Query is the engine's description of the executed query.
	Query string

	// Hits are the matches in rank order.
	Hits []SearchHit
}
