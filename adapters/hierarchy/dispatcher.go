// adapters/hierarchy/dispatcher.go
package hierarchy

import (
	"context"
	"errors"
	"time"

	"github.com/bootstraponline/droiddriver/pkg/ui"
)

// errDispatcherClosed is returned for schedule attempts after Close.
var errDispatcherClosed = errors.New("hierarchy dispatcher closed")

// dispatcher is the tree's execution context: a single worker goroutine
// that runs scheduled actions in order, standing in for the UI thread a
// live platform would require. It exists so the scheduled-execution path
// is exercised for real against offline trees.
type dispatcher struct {
	tasks chan *ui.FutureTask
	stop  chan struct{}
}

func newDispatcher() *dispatcher {
	d := &dispatcher{
		tasks: make(chan *ui.FutureTask),
		stop:  make(chan struct{}),
	}
	go d.loop()
	return d
}

func (d *dispatcher) loop() {
	for {
		select {
		case task := <-d.tasks:
			task.Run()
		case <-d.stop:
			return
		}
	}
}

// schedule implements ui.ScheduleFunc: hand the task to the worker and
// wait for completion, bounded by the timeout and the caller's context.
func (d *dispatcher) schedule(ctx context.Context, task *ui.FutureTask, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case d.tasks <- task:
	case <-d.stop:
		return errDispatcherClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ui.ErrScheduleTimeout
	}

	select {
	case <-task.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ui.ErrScheduleTimeout
	}
}

func (d *dispatcher) close() {
	close(d.stop)
}
