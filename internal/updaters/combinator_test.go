package updaters

import (
	"testing"

	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func text(s string, changed bool) prop.View {
	return prop.View{Value: cty.StringVal(s), Changed: changed, Source: node.KindString, Profile: prop.ProfileString}
}

func boolean(b bool) prop.View {
	return prop.View{Value: cty.BoolVal(b), Changed: true, Source: node.KindProp, Profile: prop.ProfileBoolean}
}

func state(v cty.Value, fromDefault bool) prop.DataQueryResult {
	return prop.DataQueryResult{Values: []prop.View{{Value: v, CameFromDefault: fromDefault, Changed: true, Source: node.KindState}}}
}

func results(deps []prop.View, st prop.DataQueryResult) []prop.DataQueryResult {
	return []prop.DataQueryResult{{Values: deps}, st}
}

func TestCombinator_DataQueries(t *testing.T) {
	q := StringFromChildren(Config{}).DataQueries()
	require.Len(t, q, 2)
	assert.Equal(t, prop.QueryChildProfiles, q[0].Kind)
	assert.Equal(t, prop.QueryState, q[1].Kind)

	q = BooleanFromAttribute("hide", Config{}).DataQueries()
	assert.Equal(t, prop.QueryAttribute, q[0].Kind)
	assert.Equal(t, "hide", q[0].Name)
	assert.Equal(t, []prop.Profile{prop.ProfileBoolean, prop.ProfileString}, q[0].Profiles)
}

func TestCombinator_String(t *testing.T) {
	t.Run("no children falls back to state default", func(t *testing.T) {
		u := StringFromChildren(Config{Default: cty.StringVal("x")})
		got := u.Calculate(results(nil, state(u.Default(), true)))
		assert.Equal(t, prop.DefaultValue(cty.StringVal("x")), got)
	})

	t.Run("one child is adopted", func(t *testing.T) {
		u := StringFromChildren(Config{Default: cty.StringVal("x")})
		got := u.Calculate(results([]prop.View{text("hello", true)}, state(u.Default(), true)))
		assert.Equal(t, prop.CalculatedValue(cty.StringVal("hello")), got)
	})

	t.Run("came_from_default propagates only when configured", func(t *testing.T) {
		dep := text("hi", true)
		dep.CameFromDefault = true

		plain := StringFromChildren(Config{})
		assert.Equal(t, prop.Calculated, plain.Calculate(results([]prop.View{dep}, state(plain.Default(), true))).Kind)

		propagating := StringFromChildren(Config{PropagateCameFromDefault: true})
		assert.Equal(t, prop.FromDefault, propagating.Calculate(results([]prop.View{dep}, state(plain.Default(), true))).Kind)
	})

	t.Run("several children concatenate", func(t *testing.T) {
		u := StringFromChildren(Config{})
		got := u.Calculate(results([]prop.View{text("Hello", true), text("World", false)}, state(u.Default(), true)))
		assert.Equal(t, prop.CalculatedValue(cty.StringVal("HelloWorld")), got)
	})

	t.Run("several unchanged children report no change", func(t *testing.T) {
		u := StringFromChildren(Config{})
		got := u.Calculate(results([]prop.View{text("Hello", false), text("World", false)}, state(u.Default(), true)))
		assert.Equal(t, prop.NoChange, got.Kind)
	})
}

func TestCombinator_Boolean(t *testing.T) {
	testCases := []struct {
		name     string
		updater  *Combinator
		deps     []prop.View
		expected cty.Value
	}{
		{name: "child TruE", updater: BooleanFromChildren(Config{}), deps: []prop.View{text("TruE", true)}, expected: cty.True},
		{name: "child T", updater: BooleanFromChildren(Config{}), deps: []prop.View{text("T", true)}, expected: cty.False},
		{name: "empty attribute", updater: BooleanFromAttribute("flag", Config{}), deps: []prop.View{text("", true)}, expected: cty.True},
		{name: "empty child", updater: BooleanFromChildren(Config{}), deps: []prop.View{text("", true)}, expected: cty.False},
		{name: "boolean child", updater: BooleanFromChildren(Config{}), deps: []prop.View{boolean(true)}, expected: cty.True},
		{name: "text pieces join before comparing", updater: BooleanFromChildren(Config{}), deps: []prop.View{text("tr", true), text("ue", true)}, expected: cty.True},
		{name: "two booleans is an invalid combination", updater: BooleanFromChildren(Config{}), deps: []prop.View{boolean(true), boolean(true)}, expected: cty.False},
		{name: "boolean and text is an invalid combination", updater: BooleanFromChildren(Config{}), deps: []prop.View{boolean(true), text("true", true)}, expected: cty.False},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.updater.Calculate(results(tc.deps, state(cty.False, true)))
			assert.Equal(t, prop.Calculated, got.Kind)
			assert.Equal(t, tc.expected, got.Value)
		})
	}
}

func TestCombinator_Number(t *testing.T) {
	u := NumberFromChildren(Config{})
	assert.True(t, u.Default().RawEquals(cty.Zero))

	got := u.Calculate(results([]prop.View{text(" 4.5 ", true)}, state(u.Default(), true)))
	assert.True(t, got.Value.RawEquals(cty.NumberFloatVal(4.5)))

	got = u.Calculate(results([]prop.View{text("four", true)}, state(u.Default(), true)))
	assert.True(t, got.Value.IsNull(), "unparseable text is NaN")

	got = u.Calculate(results([]prop.View{text("1", true), text("2", true)}, state(u.Default(), true)))
	assert.True(t, got.Value.RawEquals(cty.NumberIntVal(12)))

	got = u.Calculate(results(nil, state(cty.NumberIntVal(7), false)))
	assert.Equal(t, prop.Calculated, got.Kind)
	assert.True(t, got.Value.RawEquals(cty.NumberIntVal(7)))
}

func TestCombinator_Invert(t *testing.T) {
	t.Run("no dependency targets state", func(t *testing.T) {
		u := BooleanFromChildren(Config{})
		reqs, err := u.Invert(results(nil, state(cty.False, true)), cty.True, true)
		require.NoError(t, err)
		assert.Equal(t, []prop.DependencyValueUpdateRequest{{QueryIdx: 1, DependencyIdx: 0, Value: cty.True}}, reqs)
	})

	t.Run("single dependency receives its own type", func(t *testing.T) {
		u := BooleanFromChildren(Config{})
		reqs, err := u.Invert(results([]prop.View{text("false", true)}, state(cty.False, true)), cty.True, true)
		require.NoError(t, err)
		assert.Equal(t, []prop.DependencyValueUpdateRequest{{QueryIdx: 0, DependencyIdx: 0, Value: cty.StringVal("true")}}, reqs)
	})

	t.Run("several dependencies cannot be updated", func(t *testing.T) {
		u := StringFromChildren(Config{})
		reqs, err := u.Invert(results([]prop.View{text("a", true), text("b", true)}, state(cty.StringVal(""), true)), cty.StringVal("new"), true)
		assert.ErrorIs(t, err, prop.ErrCouldNotUpdate)
		assert.Nil(t, reqs)
	})
}
