// adapters/hierarchy/hierarchy_test.go
package hierarchy

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bootstraponline/droiddriver/api/schemas"
	"github.com/bootstraponline/droiddriver/pkg/events"
	"github.com/bootstraponline/droiddriver/pkg/finders"
	"github.com/bootstraponline/droiddriver/pkg/ui"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sampleDump = `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>
<hierarchy rotation="0">
  <node index="0" text="" resource-id="" class="android.widget.FrameLayout" package="com.example.app"
        content-desc="" checkable="false" checked="false" clickable="false" enabled="true"
        focusable="false" focused="false" scrollable="false" long-clickable="false" password="false"
        selected="false" bounds="[0,0][1080,1920]">
    <node index="0" text="Sign in" resource-id="com.example.app:id/login" class="android.widget.Button"
          package="com.example.app" content-desc="Sign in button" checkable="false" checked="false"
          clickable="true" enabled="true" focusable="true" focused="false" scrollable="false"
          long-clickable="false" password="false" selected="false" bounds="[340,900][740,1020]"/>
    <node index="1" text="" resource-id="com.example.app:id/list" class="android.widget.ListView"
          package="com.example.app" content-desc="" checkable="false" checked="false" clickable="false"
          enabled="true" focusable="true" focused="false" scrollable="true" long-clickable="false"
          password="false" selected="false" bounds="[0,1020][1080,1800]" visible-to-user="false"/>
  </node>
</hierarchy>`

func loadSample(t *testing.T) *Tree {
	t.Helper()
	tree, err := Load(strings.NewReader(sampleDump))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestLoadTreeShape(t *testing.T) {
	tree := loadSample(t)
	root := tree.Root()

	assert.Equal(t, "android.widget.FrameLayout", root.GetClassName())
	assert.Equal(t, "com.example.app", root.GetPackageName())

	children := root.Children(nil)
	require.Len(t, children, 2)

	button := children[0]
	assert.Equal(t, "Sign in", button.GetText())
	assert.Equal(t, "Sign in button", button.GetContentDescription())
	assert.Equal(t, "com.example.app:id/login", button.GetResourceID())

	clickable, err := button.IsClickable()
	require.NoError(t, err)
	assert.True(t, clickable)

	bounds, ok := button.GetBounds()
	require.True(t, ok)
	assert.Equal(t, schemas.Rect{Left: 340, Top: 900, Right: 740, Bottom: 1020}, bounds)
}

func TestVisibilityFromDump(t *testing.T) {
	tree := loadSample(t)
	children := tree.Root().Children(nil)

	visible, err := children[0].IsVisible()
	require.NoError(t, err)
	assert.True(t, visible, "nodes without visible-to-user default to visible")

	visible, err = children[1].IsVisible()
	require.NoError(t, err)
	assert.False(t, visible)
	assert.Contains(t, children[1].String(), "NotVisible")
}

func TestChildFiltering(t *testing.T) {
	tree := loadSample(t)
	root := tree.Root()

	clickable := root.Children(finders.Clickable())
	require.Len(t, clickable, 1)
	assert.Equal(t, "Sign in", clickable[0].GetText())

	scrollable := root.Children(finders.Scrollable())
	require.Len(t, scrollable, 1)
	assert.Equal(t, "com.example.app:id/list", scrollable[0].GetResourceID())

	// Filtering twice must not disturb the backing children.
	root.Children(finders.Clickable())
	assert.Len(t, root.Children(nil), 2)
}

func TestWalkOrder(t *testing.T) {
	tree := loadSample(t)

	var classes []string
	tree.Walk(func(e *ui.Element, depth int) {
		classes = append(classes, e.GetClassName())
	})
	assert.Equal(t, []string{
		"android.widget.FrameLayout",
		"android.widget.Button",
		"android.widget.ListView",
	}, classes)
}

func TestClickRunsThroughDispatcher(t *testing.T) {
	tree := loadSample(t)
	button := tree.Root().Children(finders.Clickable())[0]

	// The event actor's click carries a positive timeout, so this
	// exercises the scheduled path on the tree's dispatcher.
	require.NoError(t, button.Click(context.Background()))

	ptrs := tree.Recorder().Pointers()
	require.Len(t, ptrs, 2)
	assert.Equal(t, events.PointerDown, ptrs[0].Action)
	assert.Equal(t, events.PointerUp, ptrs[1].Action)
	assert.Equal(t, schemas.Point{X: 540, Y: 960}, ptrs[0].Pos, "click lands at the button center")
}

func TestScheduleAfterClose(t *testing.T) {
	tree, err := Load(strings.NewReader(sampleDump))
	require.NoError(t, err)
	button := tree.Root().Children(finders.Clickable())[0]
	tree.Close()

	err = button.Click(context.Background())
	var execErr *ui.ExecutionError
	require.ErrorAs(t, err, &execErr)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("not xml at all <"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("<hierarchy rotation=\"0\"></hierarchy>"))
	assert.ErrorContains(t, err, "no nodes")

	_, err = Load(strings.NewReader(
		`<hierarchy><node class="a" clickable="maybe" bounds="[0,0][1,1]"/></hierarchy>`))
	assert.ErrorContains(t, err, "clickable")

	_, err = Load(strings.NewReader(
		`<hierarchy><node class="a" bounds="bogus"/></hierarchy>`))
	assert.ErrorContains(t, err, "malformed bounds")
}

func TestCustomInjector(t *testing.T) {
	rec := &events.Recorder{}
	tree, err := Load(strings.NewReader(sampleDump), WithInjector(rec))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	button := tree.Root().Children(finders.Clickable())[0]
	require.NoError(t, button.Click(context.Background()))

	assert.Len(t, rec.Pointers(), 2)
	assert.Empty(t, tree.Recorder().Pointers(), "default recorder is bypassed")
}
