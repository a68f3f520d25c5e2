package xapian

import (
	"fmt"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/handle"
)

// Query is a native boolean query tree.
type Query struct {
	h *handle.Handle[driven.Query]
}

// NewQuery creates a query matching documents indexed by term.
func (b *Binding) NewQuery(term string) (*Query, error) {
	if err := validateTerm(term); err != nil {
		return nil, err
	}
	return &Query{h: handle.New(b.engine.NewQuery(term), driven.Query.Close)}, nil
}

// Combine joins a and c with op. The result is independent of its
// operands, which may be closed afterwards.
func (b *Binding) Combine(op domain.QueryOp, a, c *Query) (*Query, error) {
	if !op.IsValid() {
		return nil, fmt.Errorf("xapian: %w: query operator %d", domain.ErrInvalidInput, int(op))
	}
	q, err := b.engine.CombineQueries(op, a.h.Get(), c.h.Get())
	if err != nil {
		return nil, fmt.Errorf("xapian: combine queries with %s: %w", op, err)
	}
	return &Query{h: handle.New(q, driven.Query.Close)}, nil
}

// CombineTerms builds a left-deep tree joining one query per term with op.
// Intermediate queries are released as the tree grows.
func (b *Binding) CombineTerms(op domain.QueryOp, terms ...string) (*Query, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("xapian: %w: no query terms", domain.ErrInvalidInput)
	}

	acc, err := b.NewQuery(terms[0])
	if err != nil {
		return nil, err
	}
	for _, term := range terms[1:] {
		next, err := b.NewQuery(term)
		if err != nil {
			acc.Close()
			return nil, err
		}
		combined, err := b.Combine(op, acc, next)
		acc.Close()
		next.Close()
		if err != nil {
			return nil, err
		}
		acc = combined
	}
	return acc, nil
}

// Describe returns the engine's textual form of the query.
func (q *Query) Describe() string {
	return q.h.Get().Describe()
}

// String implements fmt.Stringer.
func (q *Query) String() string {
	return q.Describe()
}

// Close releases the native query.
func (q *Query) Close() {
	q.h.Release()
}
