package embedded

import (
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

// Ensure query implements the interface.
var _ driven.Query = (*query)(nil)

// query is an immutable query tree node. Leaves carry a term.
type query struct {
	term        string
	op          domain.QueryOp
	left, right *query
	closed      bool
}

func (q *query) isLeaf() bool {
	return q.left == nil
}

// Describe follows the native format, e.g. "Query((cat AND dog))".
func (q *query) Describe() string {
	q.check()
	return "Query(" + q.describe() + ")"
}

func (q *query) describe() string {
	if q.isLeaf() {
		return q.term
	}
	return "(" + q.left.describe() + " " + q.op.String() + " " + q.right.describe() + ")"
}

// clone copies the tree so the original handle can be closed.
func (q *query) clone() *query {
	c := &query{term: q.term, op: q.op}
	if !q.isLeaf() {
		c.left = q.left.clone()
		c.right = q.right.clone()
	}
	return c
}

func (q *query) Close() {
	q.closed = true
}

func (q *query) check() {
	if q.closed {
		panic("embedded: use of closed query")
	}
}
