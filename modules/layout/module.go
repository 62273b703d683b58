package layout

import (
	"github.com/specialistvlad/propgraph/internal/model"
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/specialistvlad/propgraph/internal/updaters"
	"github.com/specialistvlad/propgraph/modules/base"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the container components: the document root, sections
// and paragraphs. They carry no value of their own; clients render their
// children.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(&registry.ComponentDefinition{
		Type:       model.RootType,
		Props:      []registry.PropDefinition{base.Hidden()},
		Attributes: base.Attributes(),
	})

	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "section",
		Props: []registry.PropDefinition{
			base.Hidden(),
			{
				Name:      "title",
				New:       func() prop.Updater { return updaters.StringFromAttribute("title", updaters.Config{}) },
				ForRender: true,
				Profile:   prop.ProfileString,
			},
		},
		Attributes: base.Attributes("title"),
	})

	r.RegisterComponent(&registry.ComponentDefinition{
		Type:       "p",
		Props:      []registry.PropDefinition{base.Hidden()},
		Attributes: base.Attributes(),
	})
}
