//go:build cgo && xapian

package xapian

/*
#include "xapian_wrapper.h"
*/
import "C"

import (
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

// Ensure cursors implement the interfaces.
var (
	_ driven.TermCursor     = (*termCursor)(nil)
	_ driven.PositionCursor = (*positionCursor)(nil)
	_ driven.ValueCursor    = (*valueCursor)(nil)
	_ driven.MatchCursor    = (*matchCursor)(nil)
)

type termCursor struct {
	p *C.xap_termit
}

func (c *termCursor) native() *C.xap_termit {
	if c.p == nil {
		panic("xapian: use of closed term iterator")
	}
	return c.p
}

func (c *termCursor) Next() {
	var cerr *C.char
	C.xap_termit_next(c.native(), &cerr)
	must("term iterator next", cerr)
}

func (c *termCursor) Get() driven.TermEntry {
	var cerr *C.char
	var n C.size_t
	p := C.xap_termit_term(c.native(), &n, &cerr)
	must("term iterator get", cerr)
	return driven.TermEntry{
		Name:          takeString(p, n),
		Wdf:           uint32(C.xap_termit_wdf(c.p)),
		PositionCount: int(C.xap_termit_positions_count(c.p)),
	}
}

func (c *termCursor) Equal(other driven.Cursor[driven.TermEntry]) bool {
	o, ok := other.(*termCursor)
	return ok && C.xap_termit_equal(c.native(), o.native()) != 0
}

func (c *termCursor) PositionsBegin() driven.PositionCursor {
	var cerr *C.char
	it := C.xap_termit_positions_begin(c.native(), &cerr)
	must("positions begin", cerr)
	return &positionCursor{p: it}
}

func (c *termCursor) PositionsEnd() driven.PositionCursor {
	var cerr *C.char
	it := C.xap_termit_positions_end(c.native(), &cerr)
	must("positions end", cerr)
	return &positionCursor{p: it}
}

func (c *termCursor) Close() {
	if c.p != nil {
		C.xap_termit_free(c.p)
		c.p = nil
	}
}

type positionCursor struct {
	p *C.xap_posit
}

func (c *positionCursor) native() *C.xap_posit {
	if c.p == nil {
		panic("xapian: use of closed position iterator")
	}
	return c.p
}

func (c *positionCursor) Next() {
	var cerr *C.char
	C.xap_posit_next(c.native(), &cerr)
	must("position iterator next", cerr)
}

func (c *positionCursor) Get() domain.Position {
	var cerr *C.char
	pos := C.xap_posit_get(c.native(), &cerr)
	must("position iterator get", cerr)
	return domain.Position(pos)
}

func (c *positionCursor) Equal(other driven.Cursor[domain.Position]) bool {
	o, ok := other.(*positionCursor)
	return ok && C.xap_posit_equal(c.native(), o.native()) != 0
}

func (c *positionCursor) Close() {
	if c.p != nil {
		C.xap_posit_free(c.p)
		c.p = nil
	}
}

type valueCursor struct {
	p *C.xap_valit
}

func (c *valueCursor) native() *C.xap_valit {
	if c.p == nil {
		panic("xapian: use of closed value iterator")
	}
	return c.p
}

func (c *valueCursor) Next() {
	var cerr *C.char
	C.xap_valit_next(c.native(), &cerr)
	must("value iterator next", cerr)
}

func (c *valueCursor) Get() driven.ValueEntry {
	var cerr *C.char
	slot := C.xap_valit_slot(c.native(), &cerr)
	must("value iterator slot", cerr)
	var n C.size_t
	p := C.xap_valit_value(c.p, &n, &cerr)
	must("value iterator get", cerr)
	return driven.ValueEntry{Slot: domain.ValueNumber(slot), Value: takeString(p, n)}
}

func (c *valueCursor) Equal(other driven.Cursor[driven.ValueEntry]) bool {
	o, ok := other.(*valueCursor)
	return ok && C.xap_valit_equal(c.native(), o.native()) != 0
}

func (c *valueCursor) Close() {
	if c.p != nil {
		C.xap_valit_free(c.p)
		c.p = nil
	}
}

type matchCursor struct {
	p *C.xap_msetit
}

func (c *matchCursor) native() *C.xap_msetit {
	if c.p == nil {
		panic("xapian: use of closed mset iterator")
	}
	return c.p
}

func (c *matchCursor) Next() {
	C.xap_msetit_next(c.native())
}

func (c *matchCursor) Get() domain.Match {
	var cerr *C.char
	id := C.xap_msetit_docid(c.native(), &cerr)
	must("mset iterator docid", cerr)
	w := C.xap_msetit_weight(c.p, &cerr)
	must("mset iterator weight", cerr)
	pct := C.xap_msetit_percent(c.p, &cerr)
	must("mset iterator percent", cerr)
	return domain.Match{
		DocID:   domain.DocumentID(id),
		Rank:    int(C.xap_msetit_rank(c.p)),
		Weight:  float64(w),
		Percent: int(pct),
	}
}

func (c *matchCursor) Equal(other driven.Cursor[domain.Match]) bool {
	o, ok := other.(*matchCursor)
	return ok && C.xap_msetit_equal(c.native(), o.native()) != 0
}

func (c *matchCursor) Close() {
	if c.p != nil {
		C.xap_msetit_free(c.p)
		c.p = nil
	}
}
