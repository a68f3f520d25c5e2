package handle

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nativeObject struct {
	id int
}

func TestHandle_ReleaseFiresOnce(t *testing.T) {
	calls := 0
	h := New(&nativeObject{id: 7}, func(o *nativeObject) {
		calls++
		assert.Equal(t, 7, o.id)
	})

	assert.Equal(t, 7, h.Get().id)
	assert.False(t, h.Released())

	h.Release()
	h.Release()

	assert.Equal(t, 1, calls)
	assert.True(t, h.Released())
}

func TestHandle_GetAfterReleasePanics(t *testing.T) {
	h := New(&nativeObject{}, func(*nativeObject) {})
	h.Release()

	assert.PanicsWithValue(t, "handle: use of released *handle.nativeObject", func() {
		h.Get()
	})
	assert.Panics(t, func() {
		h.Retain()
	})
}

func TestHandle_RetainDefersRelease(t *testing.T) {
	calls := 0
	h := New(&nativeObject{}, func(*nativeObject) { calls++ })

	h.Retain()
	h.Release()
	assert.Equal(t, 0, calls, "release must wait for the last owner")
	assert.NotPanics(t, func() { h.Get() })

	h.Release()
	assert.Equal(t, 1, calls)
}

func TestHandle_ReleasedOnErrorPath(t *testing.T) {
	calls := 0
	fail := func() (err error) {
		h := New(&nativeObject{}, func(*nativeObject) { calls++ })
		defer h.Release()
		return assert.AnError
	}

	require.Error(t, fail())
	assert.Equal(t, 1, calls)
}

func TestHandle_UnreachableHandleIsCleanedUp(t *testing.T) {
	freed := make(chan int, 1)
	func() {
		New(&nativeObject{id: 3}, func(o *nativeObject) { freed <- o.id })
	}()

	deadline := time.After(5 * time.Second)
	for {
		runtime.GC()
		select {
		case id := <-freed:
			assert.Equal(t, 3, id)
			return
		case <-deadline:
			t.Fatal("cleanup did not run for unreachable handle")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestHandle_ExplicitReleaseStopsCleanup(t *testing.T) {
	calls := make(chan struct{}, 2)
	func() {
		h := New(&nativeObject{}, func(*nativeObject) { calls <- struct{}{} })
		h.Release()
	}()

	for i := 0; i < 3; i++ {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Len(t, calls, 1)
}
