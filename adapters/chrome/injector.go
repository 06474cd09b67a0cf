// adapters/chrome/injector.go
package chrome

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/bootstraponline/droiddriver/pkg/events"
)

// cdpInjector delivers synthesized input through the CDP input domain.
// It bridges the browser-agnostic event layer to chromedp, the same way
// gesture events reach a real page from devtools.
type cdpInjector struct {
	run    func(ctx context.Context, acts ...chromedp.Action) error
	logger *zap.Logger
}

var _ events.Injector = (*cdpInjector)(nil)

func (i *cdpInjector) InjectPointer(ctx context.Context, ev events.PointerEvent) error {
	var mouseType input.MouseType
	switch ev.Action {
	case events.PointerDown:
		mouseType = input.MousePressed
	case events.PointerUp:
		mouseType = input.MouseReleased
	case events.PointerMove:
		mouseType = input.MouseMoved
	default:
		return fmt.Errorf("unsupported pointer action %q", ev.Action)
	}

	p := input.DispatchMouseEvent(mouseType, float64(ev.Pos.X), float64(ev.Pos.Y)).
		WithButton(input.Left).
		WithClickCount(1)
	if ev.Action == events.PointerMove {
		p = p.WithButtons(1)
	}

	i.logger.Debug("Dispatching mouse event.",
		zap.String("type", string(mouseType)),
		zap.Int("x", ev.Pos.X),
		zap.Int("y", ev.Pos.Y))
	return i.run(ctx, p)
}

func (i *cdpInjector) InjectKeys(ctx context.Context, text string) error {
	i.logger.Debug("Dispatching key events.", zap.Int("chars", len(text)))
	return i.run(ctx, chromedp.KeyEvent(text))
}
