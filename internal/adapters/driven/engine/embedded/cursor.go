package embedded

import (
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

// sliceCursor walks a snapshot taken when the cursor was created.
type sliceCursor[T any] struct {
	items  []T
	pos    int
	closed bool
}

func beginCursor[T any](items []T) *sliceCursor[T] {
	return &sliceCursor[T]{items: items}
}

func endCursor[T any](items []T) *sliceCursor[T] {
	return &sliceCursor[T]{items: items, pos: len(items)}
}

func (c *sliceCursor[T]) Next() {
	c.check()
	c.pos++
}

func (c *sliceCursor[T]) Get() T {
	c.check()
	return c.items[c.pos]
}

func (c *sliceCursor[T]) Equal(other driven.Cursor[T]) bool {
	c.check()
	o, ok := other.(*sliceCursor[T])
	return ok && c.pos == o.pos
}

func (c *sliceCursor[T]) Close() {
	c.closed = true
}

func (c *sliceCursor[T]) check() {
	if c.closed {
		panic("embedded: use of closed cursor")
	}
}

// termSnapshot is one entry of a term list.
type termSnapshot struct {
	name      string
	wdf       uint32
	positions []domain.Position
}

// termCursor walks a term list and exposes the positions of the current term.
type termCursor struct {
	sliceCursor[termSnapshot]
}

var _ driven.TermCursor = (*termCursor)(nil)

func (c *termCursor) Get() driven.TermEntry {
	t := c.sliceCursor.Get()
	return driven.TermEntry{Name: t.name, Wdf: t.wdf, PositionCount: len(t.positions)}
}

func (c *termCursor) Equal(other driven.Cursor[driven.TermEntry]) bool {
	c.check()
	o, ok := other.(*termCursor)
	return ok && c.pos == o.pos
}

func (c *termCursor) PositionsBegin() driven.PositionCursor {
	return beginCursor(c.sliceCursor.Get().positions)
}

func (c *termCursor) PositionsEnd() driven.PositionCursor {
	return endCursor(c.sliceCursor.Get().positions)
}

func termCursors(terms []termSnapshot) (*termCursor, *termCursor) {
	return &termCursor{*beginCursor(terms)}, &termCursor{*endCursor(terms)}
}
