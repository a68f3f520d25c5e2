package embedded

import (
	"sort"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

// Ensure document implements the interface.
var _ driven.Document = (*document)(nil)

// posting accumulates one term of a document.
type posting struct {
	wdf       uint32
	positions []domain.Position // ascending, no duplicates
}

// document is an in-memory document.
type document struct {
	data   string
	terms  map[string]*posting
	values map[domain.ValueNumber]string
	closed bool
}

func newDocument() *document {
	return &document{
		terms:  make(map[string]*posting),
		values: make(map[domain.ValueNumber]string),
	}
}

// documentFromStored rebuilds a document loaded from the store.
func documentFromStored(stored *domain.StoredDocument) *document {
	d := newDocument()
	d.data = stored.Data
	for _, p := range stored.Postings {
		d.terms[p.Term] = &posting{wdf: p.Wdf, positions: append([]domain.Position(nil), p.Positions...)}
	}
	for slot, v := range stored.Values {
		d.values[slot] = v
	}
	return d
}

func (d *document) SetData(data string) {
	d.check()
	d.data = data
}

func (d *document) Data() string {
	d.check()
	return d.data
}

func (d *document) AddPosting(term string, pos domain.Position, wdfInc uint32) {
	p := d.posting(term)
	p.wdf += wdfInc
	i := sort.Search(len(p.positions), func(i int) bool { return p.positions[i] >= pos })
	if i < len(p.positions) && p.positions[i] == pos {
		return
	}
	p.positions = append(p.positions, 0)
	copy(p.positions[i+1:], p.positions[i:])
	p.positions[i] = pos
}

func (d *document) AddTerm(term string, wdfInc uint32) {
	d.posting(term).wdf += wdfInc
}

func (d *document) posting(term string) *posting {
	d.check()
	p, ok := d.terms[term]
	if !ok {
		p = &posting{}
		d.terms[term] = p
	}
	return p
}

func (d *document) AddValue(slot domain.ValueNumber, value string) {
	d.check()
	if value == "" {
		delete(d.values, slot)
		return
	}
	d.values[slot] = value
}

func (d *document) TermsBegin() driven.TermCursor {
	begin, _ := termCursors(d.termSnapshot())
	return begin
}

func (d *document) TermsEnd() driven.TermCursor {
	_, end := termCursors(d.termSnapshot())
	return end
}

func (d *document) ValuesBegin() driven.ValueCursor {
	return beginCursor(d.valueSnapshot())
}

func (d *document) ValuesEnd() driven.ValueCursor {
	return endCursor(d.valueSnapshot())
}

func (d *document) Close() {
	d.closed = true
}

// termSnapshot lists the terms in byte order.
func (d *document) termSnapshot() []termSnapshot {
	d.check()
	out := make([]termSnapshot, 0, len(d.terms))
	for name, p := range d.terms {
		out = append(out, termSnapshot{name: name, wdf: p.wdf, positions: p.positions})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// valueSnapshot lists the values in slot order.
func (d *document) valueSnapshot() []driven.ValueEntry {
	d.check()
	out := make([]driven.ValueEntry, 0, len(d.values))
	for slot, v := range d.values {
		out = append(out, driven.ValueEntry{Slot: slot, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// stored converts the document to its persisted form.
func (d *document) stored() domain.StoredDocument {
	snap := d.termSnapshot()
	postings := make([]domain.StoredPosting, len(snap))
	for i, t := range snap {
		postings[i] = domain.StoredPosting{Term: t.name, Wdf: t.wdf, Positions: t.positions}
	}
	values := make(map[domain.ValueNumber]string, len(d.values))
	for slot, v := range d.values {
		values[slot] = v
	}
	return domain.StoredDocument{Data: d.data, Postings: postings, Values: values}
}

func (d *document) check() {
	if d.closed {
		panic("embedded: use of closed document")
	}
}
