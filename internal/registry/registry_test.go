package registry

import (
	"testing"

	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/updaters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func textDefinition(typ string, profile prop.Profile) *ComponentDefinition {
	return &ComponentDefinition{
		Type: typ,
		Props: []PropDefinition{
			{Name: "hidden", New: func() prop.Updater { return updaters.NewHidden("hide") }, ForRender: true},
			{Name: "value", New: func() prop.Updater { return updaters.StringFromChildren(updaters.Config{}) }, ForRender: true, Profile: profile, Public: true},
		},
		Attributes:  []string{"hide"},
		DefaultProp: "value",
	}
}

func TestRegisterComponent(t *testing.T) {
	r := New()
	r.RegisterComponent(textDefinition("text", prop.ProfileString))

	def, ok := r.Lookup("text")
	require.True(t, ok)
	assert.Equal(t, "text", def.Type)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)

	assert.PanicsWithValue(t, "component type 'text' already registered", func() {
		r.RegisterComponent(textDefinition("text", prop.ProfileString))
	})
	assert.PanicsWithValue(t, "component type 'missing' is not registered", func() {
		r.MustLookup("missing")
	})
}

func TestRegisterComponent_Invalid(t *testing.T) {
	t.Run("unknown default prop", func(t *testing.T) {
		def := textDefinition("text", prop.ProfileString)
		def.DefaultProp = "nope"
		assert.PanicsWithValue(t, "invalid component type 'text': default prop 'nope' is not declared", func() {
			New().RegisterComponent(def)
		})
	})

	t.Run("duplicate prop", func(t *testing.T) {
		def := textDefinition("text", prop.ProfileString)
		def.Props = append(def.Props, def.Props[1])
		assert.Panics(t, func() { New().RegisterComponent(def) })
	})

	t.Run("missing factory", func(t *testing.T) {
		def := textDefinition("text", prop.ProfileString)
		def.Props[0].New = nil
		assert.PanicsWithValue(t, "invalid component type 'text': prop 'hidden' has no updater factory", func() {
			New().RegisterComponent(def)
		})
	})
}

func TestComponentDefinition(t *testing.T) {
	def := textDefinition("text", prop.ProfileString)
	def.Actions = map[string]ActionFunc{
		"noop": func(cty.Value) ([]PropUpdate, error) { return nil, nil },
	}

	idx, ok := def.PropIndex("value")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = def.DefaultPropIndex()
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = def.PropWithProfile(prop.ProfileString)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = def.PropWithProfile(prop.ProfileNone)
	assert.False(t, ok, "the none profile never matches")

	assert.True(t, def.AcceptsAttribute("hide"))
	assert.False(t, def.AcceptsAttribute("color"))
}

func TestTypeForProfile(t *testing.T) {
	r := New()
	r.RegisterComponent(textDefinition("text", prop.ProfileString))
	r.RegisterComponent(textDefinition("textInput", prop.ProfileString))
	r.RegisterComponent(textDefinition("boolean", prop.ProfileBoolean))

	typ, ok := r.TypeForProfile(prop.ProfileString)
	require.True(t, ok)
	assert.Equal(t, "text", typ, "registration order decides")

	typ, ok = r.TypeForProfile(prop.ProfileBoolean)
	require.True(t, ok)
	assert.Equal(t, "boolean", typ)

	_, ok = r.TypeForProfile(prop.ProfileInteger)
	assert.False(t, ok)

	assert.Equal(t, []string{"text", "textInput", "boolean"}, r.Types())
}
