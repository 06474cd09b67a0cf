// pkg/ui/element.go
// The element core: an on-screen object whose attributes were captured
// once at discovery time, with validated action execution that either runs
// inline on the caller or is handed to a platform execution context with a
// bounded wait.
package ui

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bootstraponline/droiddriver/api/schemas"
	"github.com/bootstraponline/droiddriver/pkg/scroll"
)

// Element is one testable UI object. Its snapshot is frozen at
// construction; the validator and actor references are rarely-mutated
// configuration with last-writer-wins semantics and no internal locking.
// Callers that reconfigure an element while Perform calls are in flight
// own the sequencing.
type Element struct {
	raw      any
	snapshot Snapshot
	children []*Element
	schedule ScheduleFunc
	logger   *zap.Logger

	validator Validator
	actor     Actor
}

// Options configures a new Element. Platform adapters supply the snapshot,
// the wrapped children and the scheduling primitive for their execution
// context; everything else has a usable default.
type Options struct {
	// Raw is the opaque backing object the element was discovered from.
	Raw any
	// Snapshot is the attribute view captured at discovery time.
	Snapshot Snapshot
	// Children are the wrapped child elements, in hierarchy order. May be
	// nil for leaves.
	Children []*Element
	// Schedule runs scheduled actions on the platform's required execution
	// context. Defaults to GoroutineScheduler.
	Schedule ScheduleFunc
	// Actor is the actuator delegate gesture calls route through. Adapters
	// install their event-based actor here.
	Actor Actor
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// New constructs an element from a frozen snapshot.
func New(opts Options) *Element {
	e := &Element{
		raw:      opts.Raw,
		snapshot: opts.Snapshot,
		children: opts.Children,
		schedule: opts.Schedule,
		actor:    opts.Actor,
		logger:   opts.Logger,
	}
	if e.schedule == nil {
		e.schedule = GoroutineScheduler
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Raw returns the backing object the element was created from. The
// element's attributes are a snapshot of that object at construction
// time; if it was updated since, they may no longer match.
func (e *Element) Raw() any { return e.raw }

// Snapshot returns the frozen attribute view.
func (e *Element) Snapshot() Snapshot { return e.snapshot }

// Get looks up one attribute from the snapshot.
func (e *Element) Get(a Attribute) (Value, bool) { return e.snapshot.Get(a) }

// -- Typed getters. All are defined purely over Get; none re-query the
// backing object.

func (e *Element) stringAttr(a Attribute) string {
	v, ok := e.snapshot.Get(a)
	if !ok {
		return ""
	}
	s, _ := v.Str()
	return s
}

// boolAttr enforces the always-present contract for boolean flags: an
// absent flag is an adapter bug, not a normal outcome.
func (e *Element) boolAttr(a Attribute) (bool, error) {
	v, ok := e.snapshot.Get(a)
	if !ok {
		return false, fmt.Errorf("%s: %w", a, ErrMissingAttribute)
	}
	b, ok := v.Bool()
	if !ok {
		return false, fmt.Errorf("%s: not a boolean flag (kind %d)", a, v.Kind())
	}
	return b, nil
}

// intAttr tolerates absence and defaults to 0; selection offsets are
// optional on the source platform, unlike the boolean flags.
func (e *Element) intAttr(a Attribute) int {
	v, ok := e.snapshot.Get(a)
	if !ok {
		return 0
	}
	i, _ := v.Int()
	return i
}

func (e *Element) GetText() string               { return e.stringAttr(Text) }
func (e *Element) GetContentDescription() string { return e.stringAttr(ContentDesc) }
func (e *Element) GetClassName() string          { return e.stringAttr(ClassName) }
func (e *Element) GetResourceID() string         { return e.stringAttr(ResourceID) }
func (e *Element) GetPackageName() string        { return e.stringAttr(PackageName) }

func (e *Element) IsCheckable() (bool, error)     { return e.boolAttr(Checkable) }
func (e *Element) IsChecked() (bool, error)       { return e.boolAttr(Checked) }
func (e *Element) IsClickable() (bool, error)     { return e.boolAttr(Clickable) }
func (e *Element) IsEnabled() (bool, error)       { return e.boolAttr(Enabled) }
func (e *Element) IsFocusable() (bool, error)     { return e.boolAttr(Focusable) }
func (e *Element) IsFocused() (bool, error)       { return e.boolAttr(Focused) }
func (e *Element) IsScrollable() (bool, error)    { return e.boolAttr(Scrollable) }
func (e *Element) IsLongClickable() (bool, error) { return e.boolAttr(LongClickable) }
func (e *Element) IsPassword() (bool, error)      { return e.boolAttr(Password) }
func (e *Element) IsSelected() (bool, error)      { return e.boolAttr(Selected) }
func (e *Element) IsVisible() (bool, error)       { return e.boolAttr(Visible) }

// GetBounds returns the element's full bounds. ok is false when the
// snapshot carries none.
func (e *Element) GetBounds() (schemas.Rect, bool) {
	v, ok := e.snapshot.Get(Bounds)
	if !ok {
		return schemas.Rect{}, false
	}
	return v.Rect()
}

// GetVisibleBounds returns the on-screen portion of the bounds, falling
// back to the full bounds when the adapter captured no separate value.
func (e *Element) GetVisibleBounds() (schemas.Rect, bool) {
	if v, ok := e.snapshot.Get(VisibleBounds); ok {
		if r, ok := v.Rect(); ok {
			return r, true
		}
	}
	return e.GetBounds()
}

func (e *Element) GetSelectionStart() int { return e.intAttr(SelectionStart) }
func (e *Element) GetSelectionEnd() int   { return e.intAttr(SelectionEnd) }

// HasSelection reports whether the snapshot captured a non-empty text
// selection. A negative start means no selection regardless of end.
func (e *Element) HasSelection() bool {
	start := e.GetSelectionStart()
	end := e.GetSelectionEnd()
	return start >= 0 && start != end
}

// -- Configuration. Plain replace semantics, see the struct comment.

// SetValidator installs the pre-execution check consulted by Perform.
// Pass nil to remove it.
func (e *Element) SetValidator(v Validator) { e.validator = v }

// SetActor replaces the actuator delegate. Takes effect on the next
// gesture call; a call already in progress keeps the delegate it started
// with.
func (e *Element) SetActor(a Actor) { e.actor = a }

// -- Action execution.

// Perform is the sole entry point for running an action against the
// element. The configured validator is consulted first; on rejection the
// action never runs and a *ValidationError is returned. An action with a
// non-positive timeout executes inline on the caller and its outcome is
// returned verbatim. Otherwise the work is wrapped in a single-shot
// future and handed to the scheduling primitive, which runs it on the
// platform's required execution context while the caller's wait is
// bounded by the action's timeout. The action's own error always keeps
// its original identity; only failures of the hand-off machinery itself
// come back as *ExecutionError.
func (e *Element) Perform(ctx context.Context, action Action) (bool, error) {
	e.logger.Debug("Performing action.",
		zap.Stringer("action", action),
		zap.String("element", e.String()))

	if v := e.validator; v != nil && v.IsApplicable(e, action) {
		if msg := v.Validate(e, action); msg != "" {
			return false, &ValidationError{Element: e.String(), Message: msg}
		}
	}

	// timeout <= 0 means no waiting infrastructure at all.
	if action.Timeout() <= 0 {
		return action.Execute(ctx, e)
	}
	return e.performAndWait(ctx, action)
}

func (e *Element) performAndWait(ctx context.Context, action Action) (bool, error) {
	task := NewFutureTask(func() (bool, error) {
		return action.Execute(ctx, e)
	})
	if err := e.schedule(ctx, task, action.Timeout()); err != nil {
		return false, &ExecutionError{Cause: err}
	}
	// The scheduler reported completion; Result returns the action's own
	// outcome, re-panicking if the action panicked.
	return task.Result()
}

// -- Gestures. Each routes through the actor configured at call time.

func (e *Element) SetText(ctx context.Context, text string) error {
	a := e.actor
	if a == nil {
		return ErrNoActor
	}
	return a.SetText(ctx, e, text)
}

func (e *Element) Click(ctx context.Context) error {
	a := e.actor
	if a == nil {
		return ErrNoActor
	}
	return a.Click(ctx, e)
}

func (e *Element) LongClick(ctx context.Context) error {
	a := e.actor
	if a == nil {
		return ErrNoActor
	}
	return a.LongClick(ctx, e)
}

func (e *Element) DoubleClick(ctx context.Context) error {
	a := e.actor
	if a == nil {
		return ErrNoActor
	}
	return a.DoubleClick(ctx, e)
}

func (e *Element) Scroll(ctx context.Context, direction scroll.Direction) error {
	a := e.actor
	if a == nil {
		return ErrNoActor
	}
	return a.Scroll(ctx, e, direction)
}

// -- Children.

// Children returns the element's children filtered by predicate, in
// hierarchy order. A nil predicate returns the backing slice unfiltered
// (callers must rely on content, not identity); any other predicate
// produces a freshly allocated slice the caller may mutate freely. A leaf
// yields an empty slice, never an error. The backing slice is never
// mutated.
func (e *Element) Children(predicate Predicate) []*Element {
	if e.children == nil {
		return []*Element{}
	}
	if predicate == nil {
		return e.children
	}
	filtered := make([]*Element, 0, len(e.children))
	for _, child := range e.children {
		if predicate(child) {
			filtered = append(filtered, child)
		}
	}
	return filtered
}

// -- Debug rendering.

// String renders every present attribute for diagnostics: bare names for
// true boolean flags, short-form rectangles, key=value otherwise. When
// the element is not visible, or its visible bounds differ from its full
// bounds, a visibility annotation is appended.
func (e *Element) String() string {
	var sb strings.Builder
	sb.WriteString("UiElement{")
	first := true
	write := func(s string) {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(s)
	}

	for _, attr := range allAttributes {
		if attr == VisibleBounds || attr == Visible {
			continue // rendered as the trailing annotation below
		}
		v, ok := e.snapshot.Get(attr)
		if !ok {
			continue
		}
		if b, isBool := v.Bool(); isBool {
			if b {
				write(attr.String())
			}
			continue
		}
		write(fmt.Sprintf("%s=%s", attr, v))
	}

	if visible, err := e.IsVisible(); err == nil && !visible {
		write("NotVisible")
	} else if bounds, ok := e.GetBounds(); ok {
		if vb, ok := e.GetVisibleBounds(); ok && vb != bounds {
			write(fmt.Sprintf("visible-bounds=%s", vb.ShortString()))
		}
	}
	sb.WriteString("}")
	return sb.String()
}
