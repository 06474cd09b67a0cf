// pkg/ui/errors.go
package ui

import (
	"errors"
	"fmt"
)

// ErrNoActor is returned by gesture calls when no actuator delegate is
// configured on the element.
var ErrNoActor = errors.New("no actuator delegate configured")

// ErrMissingAttribute is wrapped by boolean attribute getters when a flag
// the platform guarantees is absent from the snapshot. This signals a bug
// in the platform adapter, not a normal runtime outcome.
var ErrMissingAttribute = errors.New("attribute missing from snapshot")

// ValidationError is returned by Perform when a configured validator
// rejects the action. The action itself was never executed.
type ValidationError struct {
	// Element is the debug description of the rejected element.
	Element string
	// Message is the validator's failure message.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s failed validation: %s", e.Element, e.Message)
}

// ExecutionError is returned by Perform when the cross-context hand-off
// machinery itself failed: the wait was cancelled, the scheduler reported
// a timeout, or the dispatch never completed. It is deliberately distinct
// from an action's own failure, which Perform returns with its original
// identity so callers can assert on the real cause.
type ExecutionError struct {
	Cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("action execution machinery failed: %v", e.Cause)
}

func (e *ExecutionError) Unwrap() error { return e.Cause }
