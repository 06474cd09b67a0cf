// adapters/hierarchy/hierarchy.go
// Package hierarchy loads uiautomator-style XML window dumps into offline
// element trees. The dump is a frozen snapshot by nature, which matches
// the element core's staleness contract exactly: attributes are whatever
// the dump recorded, and they never refresh.
//
// Gestures work against a recording injector by default, so action
// plumbing (validators, actors, scheduled execution) can be driven
// end-to-end without a device behind the tree.
package hierarchy

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/bootstraponline/droiddriver/api/schemas"
	"github.com/bootstraponline/droiddriver/pkg/actions"
	"github.com/bootstraponline/droiddriver/pkg/events"
	"github.com/bootstraponline/droiddriver/pkg/ui"
)

// Tree is one loaded hierarchy dump.
type Tree struct {
	root       *ui.Element
	recorder   *events.Recorder
	dispatcher *dispatcher
	logger     *zap.Logger
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	logger   *zap.Logger
	injector events.Injector
}

// WithLogger attaches a logger to the tree and its elements.
func WithLogger(l *zap.Logger) Option {
	return func(o *loadOptions) { o.logger = l }
}

// WithInjector replaces the default recording injector, so a live
// delivery path can be plugged under an offline tree.
func WithInjector(inj events.Injector) Option {
	return func(o *loadOptions) { o.injector = inj }
}

// Load parses a window dump from r and wraps it as an element tree.
// Close the tree when done to stop its dispatcher.
func Load(r io.Reader, opts ...Option) (*Tree, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing hierarchy dump: %w", err)
	}
	rootEl := doc.Root()
	if rootEl == nil {
		return nil, fmt.Errorf("hierarchy dump has no root element")
	}
	// uiautomator dumps nest nodes under a <hierarchy> wrapper; accept a
	// bare <node> root as well.
	if rootEl.Tag == "hierarchy" {
		rootEl = rootEl.SelectElement("node")
		if rootEl == nil {
			return nil, fmt.Errorf("hierarchy dump has no nodes")
		}
	}

	t := &Tree{
		recorder:   &events.Recorder{},
		dispatcher: newDispatcher(),
		logger:     o.logger,
	}
	injector := o.injector
	if injector == nil {
		injector = t.recorder
	}
	actor := actions.NewEventActor(injector, o.logger.Named("actor"))

	root, err := t.wrap(rootEl, actor)
	if err != nil {
		t.dispatcher.close()
		return nil, err
	}
	t.root = root
	return t, nil
}

// Root returns the top element of the dump.
func (t *Tree) Root() *ui.Element { return t.root }

// Recorder returns the injector capturing gesture events, or nil when a
// custom injector was supplied.
func (t *Tree) Recorder() *events.Recorder { return t.recorder }

// Close stops the tree's dispatcher. Elements remain readable; scheduled
// actions fail afterwards.
func (t *Tree) Close() { t.dispatcher.close() }

// Walk visits every element depth-first in hierarchy order.
func (t *Tree) Walk(fn func(e *ui.Element, depth int)) {
	walk(t.root, 0, fn)
}

func walk(e *ui.Element, depth int, fn func(*ui.Element, int)) {
	fn(e, depth)
	for _, child := range e.Children(nil) {
		walk(child, depth+1, fn)
	}
}

func (t *Tree) wrap(el *etree.Element, actor ui.Actor) (*ui.Element, error) {
	snapshot, err := snapshotFromNode(el)
	if err != nil {
		return nil, err
	}

	var children []*ui.Element
	for _, childEl := range el.SelectElements("node") {
		child, err := t.wrap(childEl, actor)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	return ui.New(ui.Options{
		Raw:      el,
		Snapshot: snapshot,
		Children: children,
		Schedule: t.dispatcher.schedule,
		Actor:    actor,
		Logger:   t.logger,
	}), nil
}

var stringAttrs = map[string]ui.Attribute{
	"text":         ui.Text,
	"content-desc": ui.ContentDesc,
	"class":        ui.ClassName,
	"resource-id":  ui.ResourceID,
	"package":      ui.PackageName,
}

var boolAttrs = map[string]ui.Attribute{
	"checkable":      ui.Checkable,
	"checked":        ui.Checked,
	"clickable":      ui.Clickable,
	"enabled":        ui.Enabled,
	"focusable":      ui.Focusable,
	"focused":        ui.Focused,
	"scrollable":     ui.Scrollable,
	"long-clickable": ui.LongClickable,
	"password":       ui.Password,
	"selected":       ui.Selected,
}

func snapshotFromNode(el *etree.Element) (ui.Snapshot, error) {
	attrs := make(map[ui.Attribute]ui.Value)

	for name, key := range stringAttrs {
		if v := el.SelectAttrValue(name, ""); v != "" {
			attrs[key] = ui.StringValue(v)
		}
	}

	for name, key := range boolAttrs {
		raw := el.SelectAttrValue(name, "")
		if raw == "" {
			// The dump predates this flag; default false so the boolean
			// always-present contract holds for dump-backed elements.
			attrs[key] = ui.BoolValue(false)
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return ui.Snapshot{}, fmt.Errorf("node attribute %s=%q: %w", name, raw, err)
		}
		attrs[key] = ui.BoolValue(b)
	}

	if raw := el.SelectAttrValue("bounds", ""); raw != "" {
		bounds, err := schemas.ParseRect(raw)
		if err != nil {
			return ui.Snapshot{}, err
		}
		attrs[ui.Bounds] = ui.RectValue(bounds)
	}

	// Dumps produced by newer tools carry visibility; older ones imply it.
	visible := true
	if raw := el.SelectAttrValue("visible-to-user", ""); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return ui.Snapshot{}, fmt.Errorf("node attribute visible-to-user=%q: %w", raw, err)
		}
		visible = b
	}
	attrs[ui.Visible] = ui.BoolValue(visible)

	return ui.NewSnapshot(attrs), nil
}
