// pkg/ui/future_test.go
package ui

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureTaskRunsOnce(t *testing.T) {
	var calls atomic.Int32
	task := NewFutureTask(func() (bool, error) {
		calls.Add(1)
		return true, nil
	})

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task.Run()
		}()
	}
	wg.Wait()

	ok, err := task.Result()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFutureTaskResultBlocksUntilRun(t *testing.T) {
	task := NewFutureTask(func() (bool, error) { return false, errors.New("nope") })

	select {
	case <-task.Done():
		t.Fatal("task must not be done before Run")
	default:
	}

	task.Run()
	ok, err := task.Result()
	assert.False(t, ok)
	assert.EqualError(t, err, "nope")
}

func TestFutureTaskRepanics(t *testing.T) {
	task := NewFutureTask(func() (bool, error) { panic("boom") })
	task.Run() // must not kill the running goroutine

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = task.Result()
	})
}

func TestGoroutineScheduler(t *testing.T) {
	t.Run("completes", func(t *testing.T) {
		task := NewFutureTask(func() (bool, error) { return true, nil })
		err := GoroutineScheduler(context.Background(), task, time.Second)
		require.NoError(t, err)
		ok, err := task.Result()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })
		task := NewFutureTask(func() (bool, error) {
			<-release
			return true, nil
		})
		err := GoroutineScheduler(context.Background(), task, 10*time.Millisecond)
		assert.ErrorIs(t, err, ErrScheduleTimeout)
	})

	t.Run("context cancelled", func(t *testing.T) {
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		task := NewFutureTask(func() (bool, error) {
			<-release
			return true, nil
		})
		err := GoroutineScheduler(ctx, task, time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
