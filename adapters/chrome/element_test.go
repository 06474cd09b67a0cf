// adapters/chrome/element_test.go
package chrome

import (
	"testing"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bootstraponline/droiddriver/api/schemas"
	"github.com/bootstraponline/droiddriver/pkg/ui"
)

func TestQuadToRect(t *testing.T) {
	// Content quads arrive clockwise from the top-left; a rotated quad
	// still produces its bounding box.
	quad := dom.Quad{10, 20, 110, 20, 110, 70, 10, 70}
	assert.Equal(t, schemas.Rect{Left: 10, Top: 20, Right: 110, Bottom: 70}, quadToRect(quad))

	rotated := dom.Quad{50, 10, 90, 50, 50, 90, 10, 50}
	assert.Equal(t, schemas.Rect{Left: 10, Top: 10, Right: 90, Bottom: 90}, quadToRect(rotated))
}

func TestLookupAttr(t *testing.T) {
	node := &cdp.Node{Attributes: []string{"disabled", "", "id", "login"}}

	v, ok := lookupAttr(node, "disabled")
	assert.True(t, ok, "presence is detectable even with an empty value")
	assert.Equal(t, "", v)

	v, ok = lookupAttr(node, "ID")
	assert.True(t, ok)
	assert.Equal(t, "login", v)

	_, ok = lookupAttr(node, "checked")
	assert.False(t, ok)
}

func TestNodeText(t *testing.T) {
	node := &cdp.Node{
		NodeName: "BUTTON",
		Children: []*cdp.Node{
			{NodeType: cdp.NodeTypeText, NodeValue: "  Sign "},
			{NodeType: cdp.NodeTypeElement, NodeName: "SPAN"},
			{NodeType: cdp.NodeTypeText, NodeValue: "in"},
		},
	}
	assert.Equal(t, "Sign in", nodeText(node))
	assert.Equal(t, "", nodeText(&cdp.Node{}))
}

func testSession() *Session {
	return &Session{currentHost: "example.com", logger: zap.NewNop()}
}

func TestSnapshotNodeButton(t *testing.T) {
	s := testSession()
	node := &cdp.Node{
		NodeName:   "BUTTON",
		Attributes: []string{"id", "submit", "aria-label", "Submit form"},
		Children:   []*cdp.Node{{NodeType: cdp.NodeTypeText, NodeValue: "Go"}},
	}
	bounds := schemas.Rect{Left: 0, Top: 0, Right: 80, Bottom: 30}

	e := ui.New(ui.Options{Snapshot: s.snapshotNode(node, bounds, true)})

	assert.Equal(t, "button", e.GetClassName())
	assert.Equal(t, "submit", e.GetResourceID())
	assert.Equal(t, "Submit form", e.GetContentDescription())
	assert.Equal(t, "Go", e.GetText())
	assert.Equal(t, "example.com", e.GetPackageName())

	clickable, err := e.IsClickable()
	require.NoError(t, err)
	assert.True(t, clickable)

	enabled, err := e.IsEnabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	got, ok := e.GetBounds()
	require.True(t, ok)
	assert.Equal(t, bounds, got)
}

func TestSnapshotNodeDisabledInput(t *testing.T) {
	s := testSession()
	node := &cdp.Node{
		NodeName:   "INPUT",
		Attributes: []string{"type", "password", "disabled", ""},
	}

	e := ui.New(ui.Options{Snapshot: s.snapshotNode(node, schemas.Rect{}, false)})

	enabled, err := e.IsEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)

	password, err := e.IsPassword()
	require.NoError(t, err)
	assert.True(t, password)

	visible, err := e.IsVisible()
	require.NoError(t, err)
	assert.False(t, visible)

	_, ok := e.GetBounds()
	assert.False(t, ok, "invisible nodes carry no bounds")

	// Selection offsets are not captured; the accessor defaults them.
	assert.Equal(t, 0, e.GetSelectionStart())
	assert.False(t, e.HasSelection())
}

func TestSnapshotNodeCheckbox(t *testing.T) {
	s := testSession()
	node := &cdp.Node{
		NodeName:   "INPUT",
		Attributes: []string{"type", "checkbox", "checked", ""},
	}

	e := ui.New(ui.Options{Snapshot: s.snapshotNode(node, schemas.Rect{Right: 10, Bottom: 10}, true)})

	checkable, err := e.IsCheckable()
	require.NoError(t, err)
	assert.True(t, checkable)

	checked, err := e.IsChecked()
	require.NoError(t, err)
	assert.True(t, checked)

	clickable, err := e.IsClickable()
	require.NoError(t, err)
	assert.True(t, clickable)
}
