// Package iterator drains native begin/end iterator pairs into Go values.
//
// A native iterator is a pair of cursors: begin, which moves, and end,
// which marks the stop position. The package is parameterised by the
// three native operations (advance, dereference, end check) so one loop
// serves term, position, value and match iterators alike.
//
// The caller owns both cursors and releases them once draining is done.
// A cursor pair that never reaches its end makes every function here
// loop forever; that is a fault of the native layer and is not detected.
package iterator

import "iter"

// Ops are the native operations over a cursor of type P yielding T.
type Ops[P, T any] struct {
	// Next advances pos by one element.
	Next func(pos P)

	// Get produces the element under pos without moving it.
	Get func(pos P) T

	// AtEnd reports whether pos has reached end.
	AtEnd func(pos, end P) bool
}

// Collect drains the pair into a slice in native iteration order.
// An exhausted pair yields an empty, non-nil slice.
func Collect[P, T any](ops Ops[P, T], begin, end P) []T {
	out := []T{}
	for v := range Seq(ops, begin, end) {
		out = append(out, v)
	}
	return out
}

// Seq returns the pair as a single-use sequence. begin and end must stay
// alive until the sequence has been consumed or abandoned.
func Seq[P, T any](ops Ops[P, T], begin, end P) iter.Seq[T] {
	return func(yield func(T) bool) {
		for !ops.AtEnd(begin, end) {
			v := ops.Get(begin)
			ops.Next(begin)
			if !yield(v) {
				return
			}
		}
	}
}
