package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"bookswap/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) *Loop {
	t.Helper()

	l := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = l.Run(ctx) }()
	t.Cleanup(cancel)

	return l
}

func settle(t *testing.T, l *Loop) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, l.Settle(ctx))
}

func TestLoop_RunsTasksInOrder(t *testing.T) {
	l := startLoop(t)

	var order []int
	for i := range 5 {
		l.Post(func() { order = append(order, i) })
	}
	settle(t, l)

	var got []int
	require.NoError(t, l.Call(context.Background(), func() { got = append(got, order...) }))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoop_SuspendPostsContinuation(t *testing.T) {
	l := startLoop(t)

	release := make(chan struct{})
	var ran atomic.Bool
	var result string

	l.Post(func() {
		Suspend(l, func(context.Context) (string, error) {
			<-release

			return "books", nil
		}, func(v string, err error) {
			assert.NoError(t, err)
			result = v
		})
		ran.Store(true)
	})

	// The task that suspended finished without waiting for the operation.
	require.Eventually(t, ran.Load, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, l.Settle(ctx), context.DeadlineExceeded, "suspended op keeps the loop busy")

	close(release)
	settle(t, l)

	var got string
	require.NoError(t, l.Call(context.Background(), func() { got = result }))
	assert.Equal(t, "books", got)
}

func TestLoop_SuspendPropagatesErrors(t *testing.T) {
	l := startLoop(t)
	boom := errors.New("boom")

	var got error
	l.Post(func() {
		Suspend(l, func(context.Context) (int, error) { return 0, boom }, func(_ int, err error) { got = err })
	})
	settle(t, l)

	var seen error
	require.NoError(t, l.Call(context.Background(), func() { seen = got }))
	require.ErrorIs(t, seen, boom)
}

func TestLoop_RecoversPanics(t *testing.T) {
	l := startLoop(t)

	l.Post(func() { panic("task exploded") })

	var opErr error
	l.Post(func() {
		Suspend(l, func(context.Context) (int, error) { panic("op exploded") }, func(_ int, err error) { opErr = err })
	})
	settle(t, l)

	var seen error
	require.NoError(t, l.Call(context.Background(), func() { seen = opErr }))
	require.Error(t, seen)
	assert.Contains(t, seen.Error(), "op exploded")
}

func TestLoop_CallAfterStop(t *testing.T) {
	l := New(nil)
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		_ = l.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	err := l.Call(context.Background(), func() {})
	require.ErrorIs(t, err, ErrStopped)
}

func TestLoop_SettleWhenIdle(t *testing.T) {
	l := startLoop(t)
	settle(t, l)
}

func TestLoop_SettleForegroundSkipsBackgroundOperations(t *testing.T) {
	l := startLoop(t)

	release := make(chan struct{})
	var located, listed atomic.Bool

	l.Post(func() {
		SuspendBackground(l, func(context.Context) (struct{}, error) {
			<-release

			return struct{}{}, nil
		}, func(struct{}, error) { located.Store(true) })

		Suspend(l, func(context.Context) (int, error) {
			return 3, nil
		}, func(int, error) { listed.Store(true) })
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, l.SettleForeground(ctx))
	assert.True(t, listed.Load())
	assert.False(t, located.Load())

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	assert.True(t, errors.Is(l.Settle(short), context.DeadlineExceeded))

	close(release)
	settle(t, l)
	assert.True(t, located.Load())
}
