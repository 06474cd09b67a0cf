// File: cmd/uidump/main.go
// uidump renders uiautomator-style hierarchy dumps as an element tree,
// optionally filtered, as debug strings or JSON. It is a diagnostic for
// inspecting what the driver would see in a given snapshot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/bootstraponline/droiddriver/adapters/hierarchy"
	"github.com/bootstraponline/droiddriver/api/schemas"
	"github.com/bootstraponline/droiddriver/internal/config"
	"github.com/bootstraponline/droiddriver/internal/observability"
	"github.com/bootstraponline/droiddriver/pkg/finders"
	"github.com/bootstraponline/droiddriver/pkg/ui"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type options struct {
	configPath string
	asJSON     bool

	clickable  bool
	scrollable bool
	text       string
	resourceID string
	className  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "uidump <dump.xml>",
		Short: "Render a UI hierarchy dump as an element tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			observability.InitializeLogger(cfg.Logger())
			return run(cmd, args[0], &opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a driver config file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit JSON instead of debug strings")
	cmd.Flags().BoolVar(&opts.clickable, "clickable", false, "only show clickable elements")
	cmd.Flags().BoolVar(&opts.scrollable, "scrollable", false, "only show scrollable elements")
	cmd.Flags().StringVar(&opts.text, "text", "", "only show elements with this exact text")
	cmd.Flags().StringVar(&opts.resourceID, "resource-id", "", "only show elements with this resource id")
	cmd.Flags().StringVar(&opts.className, "class", "", "only show elements with this class")
	return cmd
}

func run(cmd *cobra.Command, path string, opts *options) error {
	logger := observability.Logger()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	tree, err := hierarchy.Load(f, hierarchy.WithLogger(logger))
	if err != nil {
		return err
	}
	defer tree.Close()

	predicate := buildPredicate(opts)

	if opts.asJSON {
		nodes := collectJSON(tree.Root(), predicate)
		out, err := json.MarshalIndent(nodes, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	tree.Walk(func(e *ui.Element, depth int) {
		if predicate != nil && !predicate(e) {
			return
		}
		cmd.Printf("%s%s\n", strings.Repeat("  ", depth), e)
	})
	return nil
}

// buildPredicate combines the filter flags. Nil means show everything.
func buildPredicate(opts *options) ui.Predicate {
	var preds []ui.Predicate
	if opts.clickable {
		preds = append(preds, finders.Clickable())
	}
	if opts.scrollable {
		preds = append(preds, finders.Scrollable())
	}
	if opts.text != "" {
		preds = append(preds, finders.ByText(opts.text))
	}
	if opts.resourceID != "" {
		preds = append(preds, finders.ByResourceID(opts.resourceID))
	}
	if opts.className != "" {
		preds = append(preds, finders.ByClassName(opts.className))
	}
	if len(preds) == 0 {
		return finders.Any()
	}
	return finders.And(preds...)
}

// collectJSON keeps the subtree shape for matching elements: a match is
// emitted with its matching descendants nested under it; a non-match is
// flattened away, promoting its matching descendants.
func collectJSON(e *ui.Element, predicate ui.Predicate) []*schemas.DumpNode {
	var childNodes []*schemas.DumpNode
	for _, child := range e.Children(nil) {
		childNodes = append(childNodes, collectJSON(child, predicate)...)
	}

	if predicate != nil && !predicate(e) {
		return childNodes
	}
	node := toDumpNode(e)
	node.Children = childNodes
	return []*schemas.DumpNode{node}
}

func toDumpNode(e *ui.Element) *schemas.DumpNode {
	n := &schemas.DumpNode{
		Class:       e.GetClassName(),
		Text:        e.GetText(),
		ContentDesc: e.GetContentDescription(),
		ResourceID:  e.GetResourceID(),
		Package:     e.GetPackageName(),
	}
	if bounds, ok := e.GetBounds(); ok {
		n.Bounds = &bounds
	}
	setFlag := func(dst *bool, getter func() (bool, error)) {
		if v, err := getter(); err == nil {
			*dst = v
		}
	}
	setFlag(&n.Clickable, e.IsClickable)
	setFlag(&n.Enabled, e.IsEnabled)
	setFlag(&n.Focused, e.IsFocused)
	setFlag(&n.Scrollable, e.IsScrollable)
	setFlag(&n.Checked, e.IsChecked)
	setFlag(&n.Selected, e.IsSelected)
	return n
}
