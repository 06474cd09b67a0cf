// pkg/validators/validators_test.go
package validators

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootstraponline/droiddriver/pkg/ui"
)

type nopAction struct{}

func (nopAction) Execute(context.Context, *ui.Element) (bool, error) { return true, nil }
func (nopAction) Timeout() time.Duration                             { return 0 }
func (nopAction) String() string                                     { return "nopAction" }

func element(attrs map[ui.Attribute]ui.Value) *ui.Element {
	return ui.New(ui.Options{Snapshot: ui.NewSnapshot(attrs)})
}

func TestEnabledValidator(t *testing.T) {
	v := EnabledValidator{}

	t.Run("not applicable without flag", func(t *testing.T) {
		e := element(nil)
		assert.False(t, v.IsApplicable(e, nopAction{}))
	})

	t.Run("passes enabled element", func(t *testing.T) {
		e := element(map[ui.Attribute]ui.Value{ui.Enabled: ui.BoolValue(true)})
		require.True(t, v.IsApplicable(e, nopAction{}))
		assert.Empty(t, v.Validate(e, nopAction{}))
	})

	t.Run("rejects disabled element", func(t *testing.T) {
		e := element(map[ui.Attribute]ui.Value{ui.Enabled: ui.BoolValue(false)})
		msg := v.Validate(e, nopAction{})
		assert.Contains(t, msg, "disabled")
	})
}

func TestVisibleValidator(t *testing.T) {
	v := VisibleValidator{}

	e := element(map[ui.Attribute]ui.Value{ui.Visible: ui.BoolValue(false)})
	require.True(t, v.IsApplicable(e, nopAction{}))
	assert.Contains(t, v.Validate(e, nopAction{}), "not visible")

	e = element(map[ui.Attribute]ui.Value{ui.Visible: ui.BoolValue(true)})
	assert.Empty(t, v.Validate(e, nopAction{}))
}

func TestChain(t *testing.T) {
	chain := Chain{EnabledValidator{}, VisibleValidator{}}

	t.Run("applicable when any member is", func(t *testing.T) {
		e := element(map[ui.Attribute]ui.Value{ui.Visible: ui.BoolValue(true)})
		assert.True(t, chain.IsApplicable(e, nopAction{}))
		assert.False(t, chain.IsApplicable(element(nil), nopAction{}))
	})

	t.Run("first rejection wins", func(t *testing.T) {
		e := element(map[ui.Attribute]ui.Value{
			ui.Enabled: ui.BoolValue(false),
			ui.Visible: ui.BoolValue(false),
		})
		assert.Contains(t, chain.Validate(e, nopAction{}), "disabled")
	})

	t.Run("all pass", func(t *testing.T) {
		e := element(map[ui.Attribute]ui.Value{
			ui.Enabled: ui.BoolValue(true),
			ui.Visible: ui.BoolValue(true),
		})
		assert.Empty(t, chain.Validate(e, nopAction{}))
	})
}

func TestChainInPerform(t *testing.T) {
	e := element(map[ui.Attribute]ui.Value{ui.Enabled: ui.BoolValue(false)})
	e.SetValidator(Chain{EnabledValidator{}})

	_, err := e.Perform(context.Background(), nopAction{})
	var vErr *ui.ValidationError
	require.ErrorAs(t, err, &vErr)
}
