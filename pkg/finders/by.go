// pkg/finders/by.go
// Package finders builds element predicates for child filtering and for
// the uidump tool's filter flags. Tree search itself lives with the
// platform adapters; only the predicates are defined here.
package finders

import "github.com/bootstraponline/droiddriver/pkg/ui"

// Any returns the accept-all predicate. It is the nil Predicate, which
// Children recognizes and short-circuits without allocating.
func Any() ui.Predicate { return nil }

// ByText matches elements whose text attribute equals text exactly.
func ByText(text string) ui.Predicate {
	return func(e *ui.Element) bool { return e.GetText() == text }
}

// ByContentDescription matches on the content-desc attribute.
func ByContentDescription(desc string) ui.Predicate {
	return func(e *ui.Element) bool { return e.GetContentDescription() == desc }
}

// ByResourceID matches on the resource-id attribute.
func ByResourceID(id string) ui.Predicate {
	return func(e *ui.Element) bool { return e.GetResourceID() == id }
}

// ByClassName matches on the class attribute.
func ByClassName(class string) ui.Predicate {
	return func(e *ui.Element) bool { return e.GetClassName() == class }
}

// Clickable matches elements whose snapshot flags them clickable. An
// element missing the flag does not match.
func Clickable() ui.Predicate {
	return flag((*ui.Element).IsClickable)
}

// Enabled matches elements flagged enabled.
func Enabled() ui.Predicate {
	return flag((*ui.Element).IsEnabled)
}

// Scrollable matches elements flagged scrollable.
func Scrollable() ui.Predicate {
	return flag((*ui.Element).IsScrollable)
}

func flag(getter func(*ui.Element) (bool, error)) ui.Predicate {
	return func(e *ui.Element) bool {
		v, err := getter(e)
		return err == nil && v
	}
}

// And matches only when every predicate matches. Nil members are treated
// as accept-all.
func And(preds ...ui.Predicate) ui.Predicate {
	return func(e *ui.Element) bool {
		for _, p := range preds {
			if p != nil && !p(e) {
				return false
			}
		}
		return true
	}
}

// Not inverts a predicate. Not(nil) rejects everything.
func Not(p ui.Predicate) ui.Predicate {
	return func(e *ui.Element) bool { return p != nil && !p(e) }
}
