package updaters

import (
	"testing"

	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestHidden(t *testing.T) {
	h := NewHidden("hide")
	parentHidden := func(b, fromDefault bool) prop.DataQueryResult {
		return prop.DataQueryResult{Values: []prop.View{{Value: cty.BoolVal(b), CameFromDefault: fromDefault, Source: node.KindProp}}}
	}

	got := h.Calculate([]prop.DataQueryResult{{}, {}})
	assert.Equal(t, prop.DefaultValue(cty.False), got, "root without attribute")

	got = h.Calculate([]prop.DataQueryResult{{}, parentHidden(true, false)})
	assert.Equal(t, prop.CalculatedValue(cty.True), got)

	got = h.Calculate([]prop.DataQueryResult{{Values: []prop.View{text("", true)}}, parentHidden(false, true)})
	assert.Equal(t, prop.CalculatedValue(cty.True), got, "bare attribute hides")

	got = h.Calculate([]prop.DataQueryResult{{Values: []prop.View{text("false", true)}}, parentHidden(false, true)})
	assert.Equal(t, prop.CalculatedValue(cty.False), got)

	_, err := h.Invert(nil, cty.True, true)
	assert.ErrorIs(t, err, prop.ErrNotImplemented)
}

func TestTextOf(t *testing.T) {
	u := NewTextOf(0)
	require.Equal(t, []prop.DataQuery{prop.PropQuery(0)}, u.DataQueries())

	num := prop.View{Value: cty.NumberIntVal(5), Source: node.KindProp, Profile: prop.ProfileNumber}
	got := u.Calculate([]prop.DataQueryResult{{Values: []prop.View{num}}})
	assert.Equal(t, prop.CalculatedValue(cty.StringVal("5")), got)

	reqs, err := u.Invert([]prop.DataQueryResult{{Values: []prop.View{num}}}, cty.StringVal("9"), true)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Value.RawEquals(cty.NumberIntVal(9)))
}

func TestConstant(t *testing.T) {
	c := NewConstant(cty.StringVal("boom"))
	assert.Empty(t, c.DataQueries())
	assert.Equal(t, prop.CalculatedValue(cty.StringVal("boom")), c.Calculate(nil))
	_, err := c.Invert(nil, cty.StringVal("x"), true)
	assert.ErrorIs(t, err, prop.ErrNotImplemented)
}
