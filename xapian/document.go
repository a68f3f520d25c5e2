package xapian

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-xapian/internal/codec"
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/handle"
)

// Document is a native document being built or read back.
//
// A document added to a WritableDatabase is copied by the engine, so
// the caller may Close it immediately afterwards.
type Document struct {
	h *handle.Handle[driven.Document]
}

// AddPosting records an occurrence of term at pos.
// Terms cross the native boundary verbatim, without the codec, so a term
// containing NUL is rejected with domain.ErrInvalidInput. Every accepted
// term reads back unchanged from Terms.
func (d *Document) AddPosting(term string, pos domain.Position) error {
	if err := validateTerm(term); err != nil {
		return err
	}
	d.h.Get().AddPosting(term, pos, defaultWdfInc)
	return nil
}

// AddTerm records an occurrence of term without a position.
// Like AddPosting it rejects terms containing NUL with
// domain.ErrInvalidInput instead of escaping them.
func (d *Document) AddTerm(term string) error {
	if err := validateTerm(term); err != nil {
		return err
	}
	d.h.Get().AddTerm(term, defaultWdfInc)
	return nil
}

// AddValue stores value in slot, replacing any previous value.
func (d *Document) AddValue(slot domain.ValueNumber, value []byte) {
	d.h.Get().AddValue(slot, codec.Encode(value))
}

// SetData replaces the document's data blob.
func (d *Document) SetData(data []byte) {
	d.h.Get().SetData(codec.Encode(data))
}

// Data returns the document's data blob.
func (d *Document) Data() ([]byte, error) {
	data, err := codec.Decode(d.h.Get().Data())
	if err != nil {
		return nil, fmt.Errorf("xapian: decode document data: %w", err)
	}
	return data, nil
}

// Values returns every value slot of the document.
// A value that fails to decode fails the whole call.
func (d *Document) Values() (map[domain.ValueNumber][]byte, error) {
	doc := d.h.Get()
	entries := drain(doc.ValuesBegin(), doc.ValuesEnd())

	values := make(map[domain.ValueNumber][]byte, len(entries))
	for _, e := range entries {
		v, err := codec.Decode(e.Value)
		if err != nil {
			return nil, fmt.Errorf("xapian: decode value %d: %w", e.Slot, err)
		}
		values[e.Slot] = v
	}
	return values, nil
}

// Value returns the value in slot, or ErrNotFound when the slot is empty.
func (d *Document) Value(slot domain.ValueNumber) ([]byte, error) {
	values, err := d.Values()
	if err != nil {
		return nil, err
	}
	v, ok := values[slot]
	if !ok {
		return nil, fmt.Errorf("xapian: value %d: %w", slot, domain.ErrNotFound)
	}
	return v, nil
}

// Terms returns the document's terms in term order with their positions.
func (d *Document) Terms() []domain.Term {
	doc := d.h.Get()
	return drainTerms(termOps, doc.TermsBegin(), doc.TermsEnd())
}

// Close releases the native document.
func (d *Document) Close() {
	d.h.Release()
}

func (d *Document) native() driven.Document {
	return d.h.Get()
}

// validateTerm rejects terms the C string boundary cannot carry.
func validateTerm(term string) error {
	if term == "" {
		return fmt.Errorf("xapian: %w: empty term", domain.ErrInvalidInput)
	}
	if strings.IndexByte(term, 0) >= 0 {
		return fmt.Errorf("xapian: %w: term %q contains NUL", domain.ErrInvalidInput, term)
	}
	return nil
}
