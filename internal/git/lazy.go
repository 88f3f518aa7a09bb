package git

import (
	"context"
	"errors"
	"sync"
)

type loadState uint8

const (
	stateUninitialized loadState = iota
	stateInitialized
	stateFailed
)

// lazy holds a value that is loaded on first access and kept for the
// lifetime of its owner. The mutex is held while loading, so concurrent
// first accesses wait for a single load instead of issuing their own.
//
// A failed load is sticky: every later get returns the same error. The one
// exception is a load that failed because its context was cancelled or timed
// out; that leaves the cell uninitialized so the next caller can try again.
type lazy[T any] struct {
	mu    sync.Mutex
	state loadState
	value T
	err   error
}

func (l *lazy[T]) get(ctx context.Context, load func(context.Context) (T, error)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case stateInitialized:
		return l.value, nil
	case stateFailed:
		var zero T
		return zero, l.err
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		if !isContextError(err) {
			l.state = stateFailed
			l.err = err
		}
		return zero, err
	}

	l.value = value
	l.state = stateInitialized
	return value, nil
}

// reset returns the cell to the uninitialized state.
func (l *lazy[T]) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	l.value = zero
	l.err = nil
	l.state = stateUninitialized
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
