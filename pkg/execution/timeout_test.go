package execution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/promptline/pkg/errors"
)

func TestRunWithTimeoutCompletes(t *testing.T) {
	got, err := RunWithTimeout(time.Second, func() (string, error) {
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", got)
}

func TestRunWithTimeoutPropagatesError(t *testing.T) {
	wantErr := errors.New(errors.ErrRender, "module broke")
	_, err := RunWithTimeout(time.Second, func() (int, error) {
		return 0, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestRunWithTimeoutDeadline(t *testing.T) {
	start := time.Now()
	_, err := RunWithTimeout(30*time.Millisecond, func() (int, error) {
		time.Sleep(500 * time.Millisecond)
		return 42, nil
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTimeout))
	assert.Contains(t, err.Error(), "timed out")
	// The caller gets its answer at the deadline, not when the worker ends.
	assert.Less(t, elapsed, 400*time.Millisecond)
}

func TestRunWithTimeoutRecoversPanic(t *testing.T) {
	_, err := RunWithTimeout(time.Second, func() (int, error) {
		panic("boom")
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTaskPanic))
	assert.Contains(t, err.Error(), "boom")
}

func TestRunWithTimeoutZeroValueOnFailure(t *testing.T) {
	got, err := RunWithTimeout(10*time.Millisecond, func() (string, error) {
		time.Sleep(time.Second)
		return "late", nil
	})
	require.Error(t, err)
	assert.Equal(t, "", got)
}

func TestRunWithTimeoutAbandonedWorkerDoesNotBlock(t *testing.T) {
	done := make(chan struct{})
	_, err := RunWithTimeout(10*time.Millisecond, func() (int, error) {
		defer close(done)
		time.Sleep(100 * time.Millisecond)
		return 1, nil
	})
	require.Error(t, err)

	// The worker keeps running after abandonment and finishes on its own;
	// the buffered channel absorbs its discarded result.
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("abandoned worker never finished")
	}
}
