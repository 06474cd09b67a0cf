// pkg/ui/contracts.go
// Pluggable contracts around the element core. Implementations live in
// pkg/actions and pkg/validators; they are defined here so the element can
// hold them without an import cycle.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/bootstraponline/droiddriver/pkg/scroll"
)

// Action is one opaque unit of interaction work. Execute performs the
// interaction against the target element and reports whether it took
// effect; any error it returns keeps its original identity all the way
// back to the Perform caller, on both the inline and the scheduled path.
type Action interface {
	fmt.Stringer

	Execute(ctx context.Context, e *Element) (bool, error)

	// Timeout is the requested wait bound. A value <= 0 is a sentinel
	// meaning "run inline on the caller, no scheduling machinery" -- it is
	// not an instantaneous deadline.
	Timeout() time.Duration
}

// Validator is an optional pre-execution policy check consulted by
// Perform. When IsApplicable reports false the action is allowed without
// further checks. A non-empty Validate message rejects the action before
// it runs.
type Validator interface {
	IsApplicable(e *Element, a Action) bool
	Validate(e *Element, a Action) string
}

// Actor translates high-level gesture calls into Actions and routes them
// through the element's Perform. It is replaceable configuration: swapping
// the actor takes effect on the next gesture call and never affects a call
// already in progress.
type Actor interface {
	SetText(ctx context.Context, e *Element, text string) error
	Click(ctx context.Context, e *Element) error
	LongClick(ctx context.Context, e *Element) error
	DoubleClick(ctx context.Context, e *Element) error
	Scroll(ctx context.Context, e *Element, direction scroll.Direction) error
}

// Predicate filters elements in child queries. A nil Predicate accepts
// everything.
type Predicate func(e *Element) bool
