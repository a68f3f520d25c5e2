package embedded

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

// Ensure enquire and mset implement the interfaces.
var (
	_ driven.Enquire = (*enquire)(nil)
	_ driven.MSet    = (*mset)(nil)
)

type enquire struct {
	db     *database
	query  *query
	closed bool
}

func (e *enquire) SetQuery(q driven.Query) {
	e.check()
	nq, ok := q.(*query)
	if !ok {
		panic("embedded: " + domain.ErrEngineMismatch.Error())
	}
	nq.check()
	e.query = nq.clone()
}

// MSet ranks matching documents by weight, then by ascending ID.
func (e *enquire) MSet(first, maxItems int) (driven.MSet, error) {
	e.check()
	e.db.check()
	if first < 0 || maxItems < 0 {
		return nil, &domain.NativeError{Op: "get mset", Message: "InvalidArgumentError: negative mset bounds"}
	}
	if e.query == nil {
		return &mset{}, nil
	}

	r, err := evaluate(context.Background(), e.db.store, e.query)
	if err != nil {
		return nil, fmt.Errorf("embedded: %w", err)
	}

	ids := r.docs.ToArray()
	sort.SliceStable(ids, func(i, j int) bool {
		return r.weights[ids[i]] > r.weights[ids[j]]
	})

	var best float64
	if len(ids) > 0 {
		best = r.weights[ids[0]]
	}

	end := len(ids)
	if first < end && maxItems < end-first {
		end = first + maxItems
	}
	matches := []domain.Match{}
	for rank := first; rank < end; rank++ {
		w := r.weights[ids[rank]]
		percent := 0
		if best > 0 {
			percent = int(math.Round(w / best * 100))
		}
		matches = append(matches, domain.Match{
			DocID:   domain.DocumentID(ids[rank]),
			Rank:    rank,
			Weight:  w,
			Percent: percent,
		})
	}
	return &mset{matches: matches}, nil
}

func (e *enquire) Close() {
	e.closed = true
}

func (e *enquire) check() {
	if e.closed {
		panic("embedded: use of closed enquire")
	}
}

// result is the set of documents matching a subquery with their weights.
type result struct {
	docs    *roaring.Bitmap
	weights map[uint32]float64
}

func evaluate(ctx context.Context, store driven.IndexStore, q *query) (result, error) {
	if q.isLeaf() {
		postings, err := store.Postings(ctx, q.term)
		if err != nil {
			return result{}, err
		}
		r := result{docs: roaring.New(), weights: make(map[uint32]float64, len(postings))}
		for _, p := range postings {
			r.docs.Add(uint32(p.DocID))
			r.weights[uint32(p.DocID)] = float64(p.Wdf)
		}
		return r, nil
	}

	left, err := evaluate(ctx, store, q.left)
	if err != nil {
		return result{}, err
	}
	right, err := evaluate(ctx, store, q.right)
	if err != nil {
		return result{}, err
	}

	var docs *roaring.Bitmap
	weighted := []result{left, right}
	switch q.op {
	case domain.OpAnd:
		docs = roaring.And(left.docs, right.docs)
	case domain.OpOr:
		docs = roaring.Or(left.docs, right.docs)
	case domain.OpAndNot:
		docs = roaring.AndNot(left.docs, right.docs)
		weighted = weighted[:1]
	case domain.OpXor:
		docs = roaring.Xor(left.docs, right.docs)
	case domain.OpAndMaybe:
		docs = left.docs.Clone()
	case domain.OpFilter:
		docs = roaring.And(left.docs, right.docs)
		weighted = weighted[:1]
	default:
		return result{}, fmt.Errorf("%w: query operator %d", domain.ErrInvalidInput, int(q.op))
	}

	r := result{docs: docs, weights: make(map[uint32]float64, docs.GetCardinality())}
	it := docs.Iterator()
	for it.HasNext() {
		id := it.Next()
		for _, sub := range weighted {
			r.weights[id] += sub.weights[id]
		}
	}
	return r, nil
}

type mset struct {
	matches []domain.Match
	closed  bool
}

func (m *mset) Size() int {
	m.check()
	return len(m.matches)
}

func (m *mset) Begin() driven.MatchCursor {
	m.check()
	return beginCursor(m.matches)
}

func (m *mset) End() driven.MatchCursor {
	m.check()
	return endCursor(m.matches)
}

func (m *mset) Close() {
	m.closed = true
}

func (m *mset) check() {
	if m.closed {
		panic("embedded: use of closed match set")
	}
}
