package xapian

import (
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/handle"
	"github.com/custodia-labs/sercha-xapian/internal/iterator"
)

// cursorOps adapts a native cursor to the collector's operations.
func cursorOps[T any]() iterator.Ops[driven.Cursor[T], T] {
	return iterator.Ops[driven.Cursor[T], T]{
		Next:  func(c driven.Cursor[T]) { c.Next() },
		Get:   func(c driven.Cursor[T]) T { return c.Get() },
		AtEnd: func(c, end driven.Cursor[T]) bool { return c.Equal(end) },
	}
}

// drain collects a cursor pair and releases both cursors.
func drain[T any](begin, end driven.Cursor[T]) []T {
	b := handle.New(begin, driven.Cursor[T].Close)
	defer b.Release()
	e := handle.New(end, driven.Cursor[T].Close)
	defer e.Release()

	return iterator.Collect(cursorOps[T](), b.Get(), e.Get())
}

// termOps walks a term list, collecting each term's positions while
// the term cursor is still alive.
var termOps = iterator.Ops[driven.TermCursor, domain.Term]{
	Next:  func(c driven.TermCursor) { c.Next() },
	Get:   collectTerm,
	AtEnd: func(c, end driven.TermCursor) bool { return c.Equal(end) },
}

// termNameOps walks a term list yielding names only.
var termNameOps = iterator.Ops[driven.TermCursor, string]{
	Next:  termOps.Next,
	Get:   func(c driven.TermCursor) string { return c.Get().Name },
	AtEnd: termOps.AtEnd,
}

// collectTerm reads the term under c. Terms without positional data
// skip the position cursors entirely.
func collectTerm(c driven.TermCursor) domain.Term {
	entry := c.Get()
	term := domain.Term{
		Name:      entry.Name,
		Wdf:       entry.Wdf,
		Positions: []domain.Position{},
	}
	if entry.PositionCount == 0 {
		return term
	}
	term.Positions = drain(c.PositionsBegin(), c.PositionsEnd())
	return term
}

// drainTerms collects a term cursor pair with ops and releases both cursors.
func drainTerms[T any](ops iterator.Ops[driven.TermCursor, T], begin, end driven.TermCursor) []T {
	b := handle.New(begin, driven.TermCursor.Close)
	defer b.Release()
	e := handle.New(end, driven.TermCursor.Close)
	defer e.Release()

	return iterator.Collect(ops, b.Get(), e.Get())
}
