// Package execution provides the bounded execution harness used to run
// module operations without letting a slow or crashing module stall the
// whole render.
package execution

import (
	"time"

	"github.com/arthur-debert/promptline/pkg/errors"
)

type result[T any] struct {
	value T
	err   error
}

// RunWithTimeout executes fn on its own goroutine and waits up to d for
// its outcome.
//
// The returned error distinguishes the possible outcomes via error codes:
//   - nil: fn completed and returned its value
//   - fn's own error: fn completed with a failure
//   - errors.ErrTimeout: the deadline elapsed first
//   - errors.ErrTaskPanic: fn panicked; the panic is recovered here
//   - errors.ErrWorkerDisconnected: the worker ended without reporting
//     any outcome
//
// On timeout the worker is abandoned, not cancelled: it may keep running
// to completion in the background and its result is discarded through the
// buffered channel. Callers must therefore only pass operations that do
// not mutate shared state.
func RunWithTimeout[T any](d time.Duration, fn func() (T, error)) (T, error) {
	ch := make(chan result[T], 1)

	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				ch <- result[T]{value: zero, err: errors.Newf(errors.ErrTaskPanic, "task panicked: %v", r)}
			}
		}()
		value, err := fn()
		ch <- result[T]{value: value, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	var zero T
	select {
	case res, ok := <-ch:
		if !ok {
			return zero, errors.New(errors.ErrWorkerDisconnected, "worker ended without a result")
		}
		return res.value, res.err
	case <-timer.C:
		return zero, errors.Newf(errors.ErrTimeout, "timed out after %s", d)
	}
}
