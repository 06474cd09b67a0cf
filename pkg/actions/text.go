// pkg/actions/text.go
package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/bootstraponline/droiddriver/pkg/events"
	"github.com/bootstraponline/droiddriver/pkg/ui"
)

// TextAction types text into the target element via key injection. The
// element must already hold focus; the event actor clicks it first.
type TextAction struct {
	injector events.Injector
	text     string
	timeout  time.Duration
}

// NewText builds a text-entry action delivering keys through injector.
func NewText(injector events.Injector, text string, timeout time.Duration) *TextAction {
	return &TextAction{injector: injector, text: text, timeout: timeout}
}

func (a *TextAction) Timeout() time.Duration { return a.timeout }

func (a *TextAction) String() string {
	return fmt.Sprintf("TextAction{%q, timeout=%v}", a.text, a.timeout)
}

func (a *TextAction) Execute(ctx context.Context, _ *ui.Element) (bool, error) {
	if a.text == "" {
		return true, nil
	}
	if err := a.injector.InjectKeys(ctx, a.text); err != nil {
		return false, err
	}
	return true, nil
}
