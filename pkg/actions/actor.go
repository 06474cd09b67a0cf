// pkg/actions/actor.go
package actions

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bootstraponline/droiddriver/pkg/events"
	"github.com/bootstraponline/droiddriver/pkg/scroll"
	"github.com/bootstraponline/droiddriver/pkg/ui"
)

// ErrGestureFailed is returned when an action ran to completion but
// reported that the gesture did not take effect.
var ErrGestureFailed = errors.New("gesture did not take effect")

// Default wait bounds for actor-built actions. Clicks are quick; text
// entry and scrolling wait longer because they trigger IME and layout
// work on the platform side.
const (
	defaultClickTimeout  = 5 * time.Second
	defaultTextTimeout   = 30 * time.Second
	defaultScrollTimeout = 10 * time.Second
)

// EventActor is the standard actuator delegate: it translates gesture
// calls into event-based Actions and routes them through the element's
// Perform, so validation and scheduled execution apply uniformly.
type EventActor struct {
	injector events.Injector
	logger   *zap.Logger
}

var _ ui.Actor = (*EventActor)(nil)

// NewEventActor builds the standard delegate around a platform injector.
func NewEventActor(injector events.Injector, logger *zap.Logger) *EventActor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventActor{injector: injector, logger: logger}
}

func (a *EventActor) run(ctx context.Context, e *ui.Element, action ui.Action) error {
	ok, err := e.Perform(ctx, action)
	if err != nil {
		return err
	}
	if !ok {
		a.logger.Debug("Gesture reported no effect.", zap.Stringer("action", action))
		return ErrGestureFailed
	}
	return nil
}

// SetText clicks the element to focus it, then types the replacement
// text.
func (a *EventActor) SetText(ctx context.Context, e *ui.Element, text string) error {
	if err := a.run(ctx, e, NewClick(a.injector, SingleClick, defaultClickTimeout)); err != nil {
		return err
	}
	return a.run(ctx, e, NewText(a.injector, text, defaultTextTimeout))
}

func (a *EventActor) Click(ctx context.Context, e *ui.Element) error {
	return a.run(ctx, e, NewClick(a.injector, SingleClick, defaultClickTimeout))
}

func (a *EventActor) LongClick(ctx context.Context, e *ui.Element) error {
	return a.run(ctx, e, NewClick(a.injector, LongClick, defaultClickTimeout+longPressHold))
}

func (a *EventActor) DoubleClick(ctx context.Context, e *ui.Element) error {
	return a.run(ctx, e, NewClick(a.injector, DoubleClick, defaultClickTimeout))
}

func (a *EventActor) Scroll(ctx context.Context, e *ui.Element, direction scroll.Direction) error {
	return a.run(ctx, e, NewSwipe(a.injector, direction, defaultScrollTimeout))
}
