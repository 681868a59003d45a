package cancellable

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestOperationFinish(t *testing.T) {
	op := New[string]()
	var order []string
	op.DeferFunc(func() { order = append(order, "first") })
	op.DeferFunc(func() { order = append(order, "second") })

	require.Equal(t, Pending, op.State())
	assert.True(t, op.Finish("done"))
	assert.Equal(t, Finished, op.State())
	assert.Equal(t, []string{"second", "first"}, order)

	value, err := op.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", value)
}

func TestOperationSettlesOnce(t *testing.T) {
	op := New[int]()
	calls := 0
	op.DeferFunc(func() { calls++ })

	assert.True(t, op.Cancel())
	assert.False(t, op.Finish(42))
	assert.False(t, op.Cancel())

	assert.Equal(t, 1, calls)
	assert.Equal(t, Cancelled, op.State())
	value, err := op.Wait(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Zero(t, value)
}

func TestOperationReentrantFinishFromCleanup(t *testing.T) {
	op := New[int]()
	op.DeferFunc(func() {
		assert.False(t, op.Finish(2))
	})
	assert.True(t, op.Finish(1))
	value, _ := op.Result()
	assert.Equal(t, 1, value)
}

func TestOperationDeferAfterSettleRunsImmediately(t *testing.T) {
	op := New[int]()
	op.Cancel()

	ran := false
	op.DeferFunc(func() { ran = true })
	assert.True(t, ran)
}

func TestOperationDisposalErrors(t *testing.T) {
	op := New[int]()
	errA := errors.New("a")
	errB := errors.New("b")
	ranLast := false
	op.DeferFunc(func() { ranLast = true })
	op.Defer(func() error { return errA })
	op.Defer(func() error { panic("boom") })
	op.Defer(func() error { return errB })

	op.Finish(1)

	assert.True(t, ranLast, "a failing cleanup must not stop the rest")
	err := op.Err()
	var de *DisposalError
	require.ErrorAs(t, err, &de)
	assert.Len(t, de.Errs, 3)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestOperationDisposeCancels(t *testing.T) {
	op := New[int]()
	calls := 0
	op.DeferFunc(func() { calls++ })

	require.NoError(t, op.Dispose())
	require.NoError(t, op.Dispose())
	assert.Equal(t, 1, calls)
	assert.Equal(t, Cancelled, op.State())
	assert.False(t, op.Finish(1))

	select {
	case <-op.Done():
	default:
		t.Fatal("disposed operation must be done")
	}
	_, err := op.Wait(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestOperationDisposeAfterFinish(t *testing.T) {
	op := New[int]()
	failure := errors.New("cleanup")
	op.Defer(func() error { return failure })

	op.Finish(3)
	assert.ErrorIs(t, op.Dispose(), failure)
	value, state := op.Result()
	assert.Equal(t, 3, value)
	assert.Equal(t, Finished, state)
}

func TestOperationOnSettled(t *testing.T) {
	op := New[int]()
	failure := errors.New("cleanup")
	var order []string
	op.Defer(func() error {
		order = append(order, "cleanup")
		return failure
	})
	op.OnSettled(func(state State, err error) {
		order = append(order, "settled")
		assert.Equal(t, Cancelled, state)
		assert.ErrorIs(t, err, failure)
	})

	op.Cancel()
	assert.Equal(t, []string{"cleanup", "settled"}, order)

	late := false
	op.OnSettled(func(state State, err error) {
		late = true
		assert.Equal(t, Cancelled, state)
		assert.ErrorIs(t, err, failure)
	})
	assert.True(t, late)
}

func TestOperationWaitAcrossGoroutines(t *testing.T) {
	op := New[int]()
	go func() {
		time.Sleep(5 * time.Millisecond)
		op.Finish(7)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	value, err := op.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, value)
}

func TestOperationWaitContextExpires(t *testing.T) {
	op := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := op.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Pending, op.State())
}

func TestDisposablesAddAfterDispose(t *testing.T) {
	var d Disposables
	require.NoError(t, d.Dispose())

	failure := errors.New("late")
	d.Add(func() error { return failure })
	assert.ErrorIs(t, d.Dispose(), failure)
}
