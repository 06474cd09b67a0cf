// pkg/actions/swipe.go
package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/bootstraponline/droiddriver/api/schemas"
	"github.com/bootstraponline/droiddriver/pkg/events"
	"github.com/bootstraponline/droiddriver/pkg/scroll"
	"github.com/bootstraponline/droiddriver/pkg/ui"
)

// swipeSteps is the number of intermediate move events in a swipe.
const swipeSteps = 10

// SwipeAction drags a pointer across the element's visible bounds in a
// physical direction. The gesture starts and ends a quarter of the way in
// from the edges so it lands inside the element even with sloppy bounds.
type SwipeAction struct {
	injector  events.Injector
	direction scroll.Direction
	timeout   time.Duration
}

// NewSwipe builds a swipe action along direction.
func NewSwipe(injector events.Injector, direction scroll.Direction, timeout time.Duration) *SwipeAction {
	return &SwipeAction{injector: injector, direction: direction, timeout: timeout}
}

func (a *SwipeAction) Timeout() time.Duration { return a.timeout }

func (a *SwipeAction) String() string {
	return fmt.Sprintf("SwipeAction{%s, timeout=%v}", a.direction, a.timeout)
}

func (a *SwipeAction) Execute(ctx context.Context, e *ui.Element) (bool, error) {
	bounds, ok := e.GetVisibleBounds()
	if !ok || bounds.Empty() {
		return false, fmt.Errorf("swipe %s: %w", a.direction, ErrNoBounds)
	}
	start, end := swipeEndpoints(bounds, a.direction)

	if err := a.injector.InjectPointer(ctx, events.PointerEvent{Action: events.PointerDown, Pos: start}); err != nil {
		return false, err
	}
	for i := 1; i <= swipeSteps; i++ {
		pos := schemas.Point{
			X: start.X + (end.X-start.X)*i/swipeSteps,
			Y: start.Y + (end.Y-start.Y)*i/swipeSteps,
		}
		if err := a.injector.InjectPointer(ctx, events.PointerEvent{Action: events.PointerMove, Pos: pos}); err != nil {
			return false, err
		}
	}
	if err := a.injector.InjectPointer(ctx, events.PointerEvent{Action: events.PointerUp, Pos: end}); err != nil {
		return false, err
	}
	return true, nil
}

// swipeEndpoints picks the start and end of the drag: the finger moves in
// the given direction, inset by a quarter of the extent on each side.
func swipeEndpoints(r schemas.Rect, d scroll.Direction) (schemas.Point, schemas.Point) {
	center := r.Center()
	insetX := r.Width() / 4
	insetY := r.Height() / 4
	switch d {
	case scroll.Up:
		return schemas.Point{X: center.X, Y: r.Bottom - insetY}, schemas.Point{X: center.X, Y: r.Top + insetY}
	case scroll.Down:
		return schemas.Point{X: center.X, Y: r.Top + insetY}, schemas.Point{X: center.X, Y: r.Bottom - insetY}
	case scroll.Left:
		return schemas.Point{X: r.Right - insetX, Y: center.Y}, schemas.Point{X: r.Left + insetX, Y: center.Y}
	default: // scroll.Right
		return schemas.Point{X: r.Left + insetX, Y: center.Y}, schemas.Point{X: r.Right - insetX, Y: center.Y}
	}
}
