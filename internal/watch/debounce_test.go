package watch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureAfterFunc records scheduled callbacks instead of starting timers.
func captureAfterFunc(t *testing.T) *[]func() {
	t.Helper()
	orig := afterFunc
	t.Cleanup(func() { afterFunc = orig })

	var callbacks []func()
	afterFunc = func(_ time.Duration, f func()) *time.Timer {
		callbacks = append(callbacks, f)
		timer := time.NewTimer(time.Hour)
		timer.Stop()
		return timer
	}
	return &callbacks
}

func TestDebouncer_OnlyLatestCallbackRuns(t *testing.T) {
	callbacks := captureAfterFunc(t)
	var called atomic.Int32
	d := NewDebouncer(time.Second, func() { called.Add(1) })

	d.Trigger()
	d.Trigger()
	require.Len(t, *callbacks, 2)

	(*callbacks)[0]()
	(*callbacks)[1]()
	assert.Equal(t, int32(1), called.Load())
}

func TestDebouncer_StopDropsPendingCallback(t *testing.T) {
	callbacks := captureAfterFunc(t)
	var called atomic.Int32
	d := NewDebouncer(time.Second, func() { called.Add(1) })

	d.Trigger()
	d.Stop()
	(*callbacks)[0]()
	assert.Zero(t, called.Load())
}

func TestDebouncer_RealTimer(t *testing.T) {
	done := make(chan struct{}, 1)
	d := NewDebouncer(10*time.Millisecond, func() { done <- struct{}{} })

	for range 5 {
		d.Trigger()
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced function did not run")
	}
}
