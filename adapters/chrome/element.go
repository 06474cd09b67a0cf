// adapters/chrome/element.go
package chrome

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"github.com/bootstraponline/droiddriver/api/schemas"
	"github.com/bootstraponline/droiddriver/pkg/ui"
)

// wrapConcurrency bounds parallel child wrapping; box-model lookups are
// CDP round trips and serialize on the run loop anyway.
const wrapConcurrency = 4

// Element resolves the first node matching the CSS selector and wraps it,
// along with its populated subtree, as an element family. Attributes and
// children are snapshotted now; later DOM mutations do not refresh them.
func (s *Session) Element(ctx context.Context, selector string) (*ui.Element, error) {
	nodes, err := s.nodes(ctx, selector)
	if err != nil {
		return nil, err
	}
	return s.wrap(ctx, nodes[0])
}

// Elements resolves and wraps every node matching the selector.
func (s *Session) Elements(ctx context.Context, selector string) ([]*ui.Element, error) {
	nodes, err := s.nodes(ctx, selector)
	if err != nil {
		return nil, err
	}
	wrapped := make([]*ui.Element, len(nodes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wrapConcurrency)
	for idx, node := range nodes {
		g.Go(func() error {
			e, err := s.wrap(gctx, node)
			if err != nil {
				return err
			}
			wrapped[idx] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return wrapped, nil
}

func (s *Session) nodes(ctx context.Context, selector string) ([]*cdp.Node, error) {
	var nodes []*cdp.Node
	err := s.runActions(ctx,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.Populate(-1, true)),
	)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", selector, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no node matches %q", selector)
	}
	return nodes, nil
}

// wrap snapshots one node and recursively wraps its element children.
func (s *Session) wrap(ctx context.Context, node *cdp.Node) (*ui.Element, error) {
	bounds, visible := s.bounds(ctx, node.NodeID)
	snapshot := s.snapshotNode(node, bounds, visible)

	var elementChildren []*cdp.Node
	for _, child := range node.Children {
		if child.NodeType == cdp.NodeTypeElement {
			elementChildren = append(elementChildren, child)
		}
	}

	children := make([]*ui.Element, len(elementChildren))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wrapConcurrency)
	for idx, child := range elementChildren {
		g.Go(func() error {
			e, err := s.wrap(gctx, child)
			if err != nil {
				return err
			}
			children[idx] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ui.New(ui.Options{
		Raw:      node,
		Snapshot: snapshot,
		Children: children,
		Schedule: s.schedule,
		Actor:    s.actor,
		Logger:   s.logger,
	}), nil
}

// bounds fetches the node's content box. A node with no box model is off
// the render tree, which we report as not visible.
func (s *Session) bounds(ctx context.Context, id cdp.NodeID) (schemas.Rect, bool) {
	var box *dom.BoxModel
	err := s.runActions(ctx, chromedp.ActionFunc(func(c context.Context) error {
		var err error
		box, err = dom.GetBoxModel().WithNodeID(id).Do(c)
		return err
	}))
	if err != nil || box == nil || len(box.Content) < 8 {
		return schemas.Rect{}, false
	}
	return quadToRect(box.Content), true
}

func quadToRect(quad dom.Quad) schemas.Rect {
	minX, minY := quad[0], quad[1]
	maxX, maxY := quad[0], quad[1]
	for i := 0; i+1 < len(quad); i += 2 {
		if quad[i] < minX {
			minX = quad[i]
		}
		if quad[i] > maxX {
			maxX = quad[i]
		}
		if quad[i+1] < minY {
			minY = quad[i+1]
		}
		if quad[i+1] > maxY {
			maxY = quad[i+1]
		}
	}
	return schemas.Rect{Left: int(minX), Top: int(minY), Right: int(maxX), Bottom: int(maxY)}
}

// snapshotNode maps a DOM node onto the closed attribute set. Selection
// offsets are deliberately not captured; they are optional attributes and
// default to 0 at the accessor.
func (s *Session) snapshotNode(node *cdp.Node, bounds schemas.Rect, visible bool) ui.Snapshot {
	attrs := make(map[ui.Attribute]ui.Value)
	get := func(name string) string { return node.AttributeValue(name) }

	tag := strings.ToLower(node.NodeName)
	attrs[ui.ClassName] = ui.StringValue(tag)
	if s.currentHost != "" {
		attrs[ui.PackageName] = ui.StringValue(s.currentHost)
	}
	if id := get("id"); id != "" {
		attrs[ui.ResourceID] = ui.StringValue(id)
	}
	if label := get("aria-label"); label != "" {
		attrs[ui.ContentDesc] = ui.StringValue(label)
	}
	if text := nodeText(node); text != "" {
		attrs[ui.Text] = ui.StringValue(text)
	}

	inputType := strings.ToLower(get("type"))
	_, disabled := lookupAttr(node, "disabled")
	_, hasOnclick := lookupAttr(node, "onclick")
	role := get("role")

	clickable := tag == "a" || tag == "button" || tag == "summary" ||
		hasOnclick || role == "button" || role == "link" ||
		(tag == "input" && (inputType == "submit" || inputType == "button" || inputType == "checkbox" || inputType == "radio"))
	focusable := clickable || tag == "input" || tag == "textarea" || tag == "select"
	checkable := tag == "input" && (inputType == "checkbox" || inputType == "radio")
	_, checked := lookupAttr(node, "checked")
	_, selected := lookupAttr(node, "selected")

	attrs[ui.Clickable] = ui.BoolValue(clickable)
	attrs[ui.LongClickable] = ui.BoolValue(false)
	attrs[ui.Enabled] = ui.BoolValue(!disabled)
	attrs[ui.Focusable] = ui.BoolValue(focusable)
	attrs[ui.Focused] = ui.BoolValue(false)
	attrs[ui.Checkable] = ui.BoolValue(checkable)
	attrs[ui.Checked] = ui.BoolValue(checkable && checked)
	attrs[ui.Scrollable] = ui.BoolValue(false)
	attrs[ui.Password] = ui.BoolValue(tag == "input" && inputType == "password")
	attrs[ui.Selected] = ui.BoolValue(selected || get("aria-selected") == "true")
	attrs[ui.Visible] = ui.BoolValue(visible)
	if visible {
		attrs[ui.Bounds] = ui.RectValue(bounds)
	}

	return ui.NewSnapshot(attrs)
}

// lookupAttr reports attribute presence, which AttributeValue cannot
// distinguish from an empty value.
func lookupAttr(node *cdp.Node, name string) (string, bool) {
	for i := 0; i+1 < len(node.Attributes); i += 2 {
		if strings.EqualFold(node.Attributes[i], name) {
			return node.Attributes[i+1], true
		}
	}
	return "", false
}

// nodeText concatenates the node's direct text children, truncated the
// way debug output expects.
func nodeText(node *cdp.Node) string {
	var sb strings.Builder
	for _, child := range node.Children {
		if child.NodeType == cdp.NodeTypeText {
			sb.WriteString(child.NodeValue)
		}
	}
	text := strings.TrimSpace(sb.String())
	if len(text) > 256 {
		text = text[:256]
	}
	return text
}
