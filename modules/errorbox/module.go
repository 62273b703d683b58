package errorbox

import (
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/specialistvlad/propgraph/internal/structure"
	"github.com/specialistvlad/propgraph/internal/updaters"
	"github.com/specialistvlad/propgraph/modules/base"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the placeholder component the structure builder puts
// wherever the document could not be turned into a real component. Its
// message is the single string child the builder gives it.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: structure.ErrorType,
		Props: []registry.PropDefinition{
			base.Hidden(),
			{
				Name:      "message",
				New:       func() prop.Updater { return updaters.StringFromChildren(updaters.Config{}) },
				ForRender: true,
			},
		},
		DefaultProp: "message",
	})
}
