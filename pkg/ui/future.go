// pkg/ui/future.go
package ui

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrScheduleTimeout is returned by schedulers when the bounded wait
// elapsed before the task completed. Note the timeout bounds only how long
// the caller waits: work already dispatched to the other execution context
// is not cancelled.
var ErrScheduleTimeout = errors.New("timed out waiting for scheduled action")

// FutureTask is a single-shot, result-bearing unit of work. Run executes
// the wrapped function at most once, no matter how many contexts attempt
// it; Result blocks until completion. A panic inside the work function is
// captured and re-raised on the goroutine that calls Result, so an
// action's own panic surfaces to the caller rather than killing the
// execution context it was dispatched to.
type FutureTask struct {
	fn   func() (bool, error)
	once sync.Once
	done chan struct{}

	ok       bool
	err      error
	panicked any
}

// NewFutureTask wraps fn in an unstarted future.
func NewFutureTask(fn func() (bool, error)) *FutureTask {
	return &FutureTask{fn: fn, done: make(chan struct{})}
}

// Run executes the wrapped function. Safe to call from any goroutine;
// only the first call runs the work.
func (t *FutureTask) Run() {
	t.once.Do(func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.panicked = r
			}
		}()
		t.ok, t.err = t.fn()
	})
}

// Done is closed when the task has completed.
func (t *FutureTask) Done() <-chan struct{} { return t.done }

// Result blocks until the task completes and returns the work's own
// outcome verbatim. Re-panics if the work panicked.
func (t *FutureTask) Result() (bool, error) {
	<-t.done
	if t.panicked != nil {
		panic(t.panicked)
	}
	return t.ok, t.err
}

// ScheduleFunc is the platform-supplied cross-context scheduling
// primitive. Implementations must arrange for task.Run to execute on the
// platform's required execution context (a UI thread, a CDP run loop)
// and must not return nil before the task has completed. A non-nil error
// means the hand-off or the bounded wait failed; the task may still be
// running on the other context.
type ScheduleFunc func(ctx context.Context, task *FutureTask, timeout time.Duration) error

// GoroutineScheduler is the default ScheduleFunc for platforms with no
// execution-context affinity: it runs the task on a fresh goroutine and
// bounds the wait by the timeout and the caller's context.
func GoroutineScheduler(ctx context.Context, task *FutureTask, timeout time.Duration) error {
	go task.Run()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-task.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrScheduleTimeout
	}
}
