// pkg/ui/attribute.go
package ui

import (
	"fmt"

	"github.com/bootstraponline/droiddriver/api/schemas"
)

// Attribute names one property of an element. The set is closed: platform
// adapters translate whatever their backing object exposes into these keys
// when the snapshot is taken.
type Attribute int

const (
	Text Attribute = iota
	ContentDesc
	ClassName
	ResourceID
	PackageName
	Checkable
	Checked
	Clickable
	Enabled
	Focusable
	Focused
	Scrollable
	LongClickable
	Password
	Selected
	Bounds
	SelectionStart
	SelectionEnd
	VisibleBounds
	Visible
)

// allAttributes drives deterministic iteration (debug output, dumps).
var allAttributes = []Attribute{
	Text, ContentDesc, ClassName, ResourceID, PackageName,
	Checkable, Checked, Clickable, Enabled, Focusable, Focused,
	Scrollable, LongClickable, Password, Selected,
	Bounds, SelectionStart, SelectionEnd, VisibleBounds, Visible,
}

var attributeNames = map[Attribute]string{
	Text:           "text",
	ContentDesc:    "content-desc",
	ClassName:      "class",
	ResourceID:     "resource-id",
	PackageName:    "package",
	Checkable:      "checkable",
	Checked:        "checked",
	Clickable:      "clickable",
	Enabled:        "enabled",
	Focusable:      "focusable",
	Focused:        "focused",
	Scrollable:     "scrollable",
	LongClickable:  "long-clickable",
	Password:       "password",
	Selected:       "selected",
	Bounds:         "bounds",
	SelectionStart: "selection-start",
	SelectionEnd:   "selection-end",
	VisibleBounds:  "visible-bounds",
	Visible:        "visible",
}

func (a Attribute) String() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("attribute(%d)", int(a))
}

// ValueKind discriminates the payload of a Value.
type ValueKind uint8

const (
	KindAbsent ValueKind = iota
	KindString
	KindBool
	KindInt
	KindRect
)

// Value is the typed payload of one attribute. It is a small tagged union
// so call sites get the statically-known type for each attribute instead
// of a runtime cast.
type Value struct {
	kind ValueKind
	s    string
	b    bool
	i    int
	r    schemas.Rect
}

// StringValue wraps a string attribute payload.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// BoolValue wraps a boolean flag payload.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntValue wraps an integer payload (selection offsets).
func IntValue(i int) Value { return Value{kind: KindInt, i: i} }

// RectValue wraps a rectangle payload (bounds, visible bounds).
func RectValue(r schemas.Rect) Value { return Value{kind: KindRect, r: r} }

// Kind returns the discriminator of the stored payload.
func (v Value) Kind() ValueKind { return v.kind }

// Str returns the string payload. ok is false when the value holds a
// different kind.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the integer payload.
func (v Value) Int() (int, bool) { return v.i, v.kind == KindInt }

// Rect returns the rectangle payload.
func (v Value) Rect() (schemas.Rect, bool) { return v.r, v.kind == KindRect }

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindRect:
		return v.r.ShortString()
	default:
		return "<absent>"
	}
}

// Snapshot is the immutable attribute view of an element, frozen when the
// element is constructed. It never re-queries the backing object: if the
// real state changes afterwards the snapshot goes stale by design.
//
// Missing attributes are tolerated asymmetrically, mirroring the source
// platform's guarantees: object-valued attributes simply report absence,
// integer selection offsets default to 0, but boolean flags are expected
// to always be present and their absence is a contract violation in the
// platform adapter (see Element's boolean getters). Do not unify these
// semantics; adapters depend on the distinction.
type Snapshot struct {
	attrs map[Attribute]Value
}

// NewSnapshot copies attrs into an immutable snapshot. The caller may
// reuse or mutate its map afterwards.
func NewSnapshot(attrs map[Attribute]Value) Snapshot {
	copied := make(map[Attribute]Value, len(attrs))
	for k, v := range attrs {
		if v.kind == KindAbsent {
			continue
		}
		copied[k] = v
	}
	return Snapshot{attrs: copied}
}

// Get looks up one attribute. ok is false when the attribute was not
// captured at construction time.
func (s Snapshot) Get(a Attribute) (Value, bool) {
	v, ok := s.attrs[a]
	return v, ok
}

// Len returns the number of captured attributes.
func (s Snapshot) Len() int { return len(s.attrs) }
