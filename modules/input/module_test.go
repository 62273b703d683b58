package input

import (
	"testing"

	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestOnUpdateValue(t *testing.T) {
	updates, err := OnUpdateValue(cty.ObjectVal(map[string]cty.Value{
		"text":  cty.StringVal("typed"),
		"extra": cty.True,
	}))
	require.NoError(t, err)
	assert.Equal(t, []registry.PropUpdate{{Prop: "value", Value: cty.StringVal("typed")}}, updates)
}

func TestOnUpdateValue_ConvertsNumbers(t *testing.T) {
	updates, err := OnUpdateValue(cty.ObjectVal(map[string]cty.Value{"text": cty.NumberIntVal(42)}))
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, cty.StringVal("42"), updates[0].Value)
}

func TestOnUpdateBoolean(t *testing.T) {
	tests := []struct {
		name string
		args cty.Value
		want cty.Value
		err  string
	}{
		{name: "bool", args: cty.ObjectVal(map[string]cty.Value{"value": cty.True}), want: cty.True},
		{name: "string", args: cty.ObjectVal(map[string]cty.Value{"value": cty.StringVal("false")}), want: cty.False},
		{name: "missing", args: cty.EmptyObjectVal, err: "invalid action arguments"},
		{name: "garbage", args: cty.ObjectVal(map[string]cty.Value{"value": cty.StringVal("maybe")}), err: "invalid action arguments"},
		{name: "null", args: cty.NullVal(cty.EmptyObject), err: "must be known and not null"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			updates, err := OnUpdateBoolean(tc.args)
			if tc.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []registry.PropUpdate{{Prop: "value", Value: tc.want}}, updates)
		})
	}
}

func TestModule_Register(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	assert.Equal(t, []string{"textInput", "booleanInput"}, r.Types())
	def := r.MustLookup("textInput")
	assert.True(t, def.AcceptsAttribute(BindAttribute))
	assert.Contains(t, def.Actions, "updateValue")
	assert.Contains(t, r.MustLookup("booleanInput").Actions, "updateBoolean")
}
