// pkg/actions/click.go
// Package actions provides the concrete Action implementations and the
// event-based actuator delegate that builds them from gesture calls.
package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bootstraponline/droiddriver/pkg/events"
	"github.com/bootstraponline/droiddriver/pkg/ui"
)

// ErrNoBounds is returned when a pointer gesture targets an element whose
// snapshot carries no bounds to aim at.
var ErrNoBounds = errors.New("element has no bounds to interact with")

// ClickKind selects the press pattern of a ClickAction.
type ClickKind int

const (
	SingleClick ClickKind = iota
	LongClick
	DoubleClick
)

func (k ClickKind) String() string {
	switch k {
	case LongClick:
		return "long-click"
	case DoubleClick:
		return "double-click"
	default:
		return "click"
	}
}

// longPressHold is how long the pointer stays down for a long click,
// matching the platform's long-press recognition threshold.
const longPressHold = 1500 * time.Millisecond

// ClickAction presses the center of the element's visible bounds.
type ClickAction struct {
	injector events.Injector
	kind     ClickKind
	timeout  time.Duration
}

// NewClick builds a click action delivering events through injector.
func NewClick(injector events.Injector, kind ClickKind, timeout time.Duration) *ClickAction {
	return &ClickAction{injector: injector, kind: kind, timeout: timeout}
}

func (a *ClickAction) Timeout() time.Duration { return a.timeout }

func (a *ClickAction) String() string {
	return fmt.Sprintf("ClickAction{%s, timeout=%v}", a.kind, a.timeout)
}

func (a *ClickAction) Execute(ctx context.Context, e *ui.Element) (bool, error) {
	bounds, ok := e.GetVisibleBounds()
	if !ok || bounds.Empty() {
		return false, fmt.Errorf("%s: %w", a.kind, ErrNoBounds)
	}
	center := bounds.Center()

	press := func() error {
		if err := a.injector.InjectPointer(ctx, events.PointerEvent{Action: events.PointerDown, Pos: center}); err != nil {
			return err
		}
		if a.kind == LongClick {
			select {
			case <-time.After(longPressHold):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return a.injector.InjectPointer(ctx, events.PointerEvent{Action: events.PointerUp, Pos: center})
	}

	if err := press(); err != nil {
		return false, err
	}
	if a.kind == DoubleClick {
		if err := press(); err != nil {
			return false, err
		}
	}
	return true, nil
}
