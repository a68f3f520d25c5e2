// Package handle wraps native objects with exactly-once release.
//
// A Handle owns one native value and the function that frees it. Owners
// call Release on every exit path (usually via defer); the release
// function runs when the last owner lets go. Accessing a handle after
// its final release is a programming error and panics.
//
// Handles that become unreachable without being released are freed by a
// runtime cleanup. An explicit release cancels the cleanup, so the
// release function never runs twice.
//
// Handles are not safe for concurrent use.
package handle

import (
	"fmt"
	"runtime"
)

// Handle owns a native value of type T.
type Handle[T any] struct {
	state *state[T]
}

// state is separated from Handle so the runtime cleanup can reach it
// without keeping the Handle itself alive.
type state[T any] struct {
	value    T
	kind     string
	release  func(T)
	refs     int
	released bool
}

// New takes ownership of value. release is called exactly once with value.
func New[T any](value T, release func(T)) *Handle[T] {
	s := &state[T]{value: value, kind: fmt.Sprintf("%T", value), release: release, refs: 1}
	h := &Handle[T]{state: s}
	cleanup := runtime.AddCleanup(h, func(s *state[T]) { s.free() }, s)
	s.release = func(v T) {
		cleanup.Stop()
		release(v)
	}
	return h
}

// Get returns the owned value. It panics if the handle was released.
func (h *Handle[T]) Get() T {
	if h.state.released {
		panic("handle: use of released " + h.state.kind)
	}
	return h.state.value
}

// Retain registers an additional owner. Each Retain must be matched by a Release.
func (h *Handle[T]) Retain() *Handle[T] {
	if h.state.released {
		panic("handle: retain of released " + h.state.kind)
	}
	h.state.refs++
	return h
}

// Release gives up one ownership. The native value is freed when the
// last owner releases. Releasing an already freed handle is a no-op.
func (h *Handle[T]) Release() {
	s := h.state
	if s.released {
		return
	}
	s.refs--
	if s.refs > 0 {
		return
	}
	s.free()
}

// Released reports whether the native value has been freed.
func (h *Handle[T]) Released() bool {
	return h.state.released
}

func (s *state[T]) free() {
	if s.released {
		return
	}
	s.released = true
	s.release(s.value)
	var zero T
	s.value = zero
}
