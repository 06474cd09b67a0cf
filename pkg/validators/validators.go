// pkg/validators/validators.go
// Package validators provides pre-execution policy checks for element
// actions. A validator sees the element and the action before anything
// runs; a non-empty message rejects the action outright.
package validators

import (
	"fmt"

	"github.com/bootstraponline/droiddriver/pkg/ui"
)

// EnabledValidator rejects interactions with elements whose snapshot says
// they are disabled. Mirrors the platform convention that disabled
// widgets silently swallow input, which makes tests flaky rather than
// failing fast.
type EnabledValidator struct{}

var _ ui.Validator = EnabledValidator{}

func (EnabledValidator) IsApplicable(e *ui.Element, _ ui.Action) bool {
	_, ok := e.Get(ui.Enabled)
	return ok
}

func (EnabledValidator) Validate(e *ui.Element, a ui.Action) string {
	enabled, err := e.IsEnabled()
	if err != nil {
		return fmt.Sprintf("cannot determine enabled state: %v", err)
	}
	if !enabled {
		return fmt.Sprintf("element is disabled, refusing %v", a)
	}
	return ""
}

// VisibleValidator rejects interactions with elements that are not
// visible on screen. Applicable only when the adapter captured a
// visibility flag.
type VisibleValidator struct{}

var _ ui.Validator = VisibleValidator{}

func (VisibleValidator) IsApplicable(e *ui.Element, _ ui.Action) bool {
	_, ok := e.Get(ui.Visible)
	return ok
}

func (VisibleValidator) Validate(e *ui.Element, a ui.Action) string {
	visible, err := e.IsVisible()
	if err != nil {
		return fmt.Sprintf("cannot determine visibility: %v", err)
	}
	if !visible {
		return fmt.Sprintf("element is not visible, refusing %v", a)
	}
	return ""
}

// Chain runs validators in order and reports the first rejection. A
// member is consulted only when it is applicable to the element/action
// pair; the chain is applicable when any member is.
type Chain []ui.Validator

var _ ui.Validator = Chain(nil)

func (c Chain) IsApplicable(e *ui.Element, a ui.Action) bool {
	for _, v := range c {
		if v.IsApplicable(e, a) {
			return true
		}
	}
	return false
}

func (c Chain) Validate(e *ui.Element, a ui.Action) string {
	for _, v := range c {
		if !v.IsApplicable(e, a) {
			continue
		}
		if msg := v.Validate(e, a); msg != "" {
			return msg
		}
	}
	return ""
}
