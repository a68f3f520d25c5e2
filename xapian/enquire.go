package xapian

import (
	"fmt"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/handle"
)

// Enquire runs queries against one database.
type Enquire struct {
	h *handle.Handle[driven.Enquire]
}

// NewEnquire creates a query-execution context over db.
func (b *Binding) NewEnquire(db *Database) (*Enquire, error) {
	e, err := b.engine.NewEnquire(db.h.Get())
	if err != nil {
		return nil, fmt.Errorf("xapian: create enquire: %w", err)
	}
	return &Enquire{h: handle.New(e, driven.Enquire.Close)}, nil
}

// SetQuery selects the query to run. The query is copied.
func (e *Enquire) SetQuery(q *Query) {
	e.h.Get().SetQuery(q.h.Get())
}

// Matches runs the query and returns up to maxItems matches from rank first.
func (e *Enquire) Matches(first, maxItems int) ([]domain.Match, error) {
	if first < 0 || maxItems < 0 {
		return nil, fmt.Errorf("xapian: %w: match window %d+%d", domain.ErrInvalidInput, first, maxItems)
	}
	ms, err := e.h.Get().MSet(first, maxItems)
	if err != nil {
		return nil, fmt.Errorf("xapian: run query: %w", err)
	}
	mset := handle.New(ms, driven.MSet.Close)
	defer mset.Release()

	return drain(mset.Get().Begin(), mset.Get().End()), nil
}

// Close releases the native enquire.
func (e *Enquire) Close() {
	e.h.Release()
}
