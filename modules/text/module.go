package text

import (
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/specialistvlad/propgraph/internal/updaters"
	"github.com/specialistvlad/propgraph/modules/base"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// valueIdx is the local index of "value" in number and boolean.
const valueIdx = 1

// Register registers text, number and boolean. Each is a single value built
// from its children, or from its own state when it has none. Numbers and
// booleans also expose their value as text so that they can sit inside a
// text component.
//
// Text must stay the first registered type with a String default prop:
// references to String props expand into it.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "text",
		Props: []registry.PropDefinition{
			base.Hidden(),
			{
				Name: "value",
				New: func() prop.Updater {
					return updaters.StringFromChildren(updaters.Config{PropagateCameFromDefault: true})
				},
				ForRender: true,
				Profile:   prop.ProfileString,
				Public:    true,
			},
		},
		Attributes:  base.Attributes(),
		DefaultProp: "value",
	})

	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "number",
		Props: []registry.PropDefinition{
			base.Hidden(),
			{
				Name: "value",
				New: func() prop.Updater {
					return updaters.NumberFromChildren(updaters.Config{PropagateCameFromDefault: true})
				},
				ForRender: true,
				Profile:   prop.ProfileNumber,
				Public:    true,
			},
			textOf(),
		},
		Attributes:  base.Attributes(),
		DefaultProp: "value",
	})

	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "boolean",
		Props: []registry.PropDefinition{
			base.Hidden(),
			{
				Name: "value",
				New: func() prop.Updater {
					return updaters.BooleanFromChildren(updaters.Config{PropagateCameFromDefault: true})
				},
				ForRender: true,
				Profile:   prop.ProfileBoolean,
				Public:    true,
			},
			textOf(),
		},
		Attributes:  base.Attributes(),
		DefaultProp: "value",
	})
}

func textOf() registry.PropDefinition {
	return registry.PropDefinition{
		Name:    "text",
		New:     func() prop.Updater { return updaters.NewTextOf(valueIdx) },
		Profile: prop.ProfileString,
		Public:  true,
	}
}
