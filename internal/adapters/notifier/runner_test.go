package notifier

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDispatcher struct {
	ticks     atomic.Int64
	processed int
	err       error
}

func (f *fakeDispatcher) Tick(_ context.Context) (int, error) {
	f.ticks.Add(1)
	return f.processed, f.err
}

func TestNewRunner_RequiredDependency(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dispatcher is required")
}

func TestNewRunner_DefaultInterval(t *testing.T) {
	r, err := NewRunner(RunnerOptions{Dispatcher: &fakeDispatcher{}})

	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, r.interval)
}

func TestRunner_Run_TicksUntilCancel(t *testing.T) {
	d := &fakeDispatcher{processed: 2}
	r, err := NewRunner(RunnerOptions{Dispatcher: d, Interval: 5 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return d.ticks.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRunner_Run_KeepsGoingOnTickError(t *testing.T) {
	d := &fakeDispatcher{err: errors.New("db down")}
	r, err := NewRunner(RunnerOptions{Dispatcher: d, Interval: 5 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// Errors are logged, not fatal; the loop must keep ticking.
	assert.Eventually(t, func() bool {
		return d.ticks.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRunner_Run_DeadlineReturnsError(t *testing.T) {
	d := &fakeDispatcher{}
	r, err := NewRunner(RunnerOptions{Dispatcher: d, Interval: time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = r.Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
