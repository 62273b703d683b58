// Package base holds the prop slots every catalog component shares.
package base

import (
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/specialistvlad/propgraph/internal/updaters"
)

// HideAttribute hides a component and everything under it.
const HideAttribute = "hide"

// Hidden returns the "hidden" prop slot: the hide attribute OR the parent's
// hidden prop.
func Hidden() registry.PropDefinition {
	return registry.PropDefinition{
		Name:      updaters.HiddenName,
		New:       func() prop.Updater { return updaters.NewHidden(HideAttribute) },
		ForRender: true,
	}
}

// Attributes prepends HideAttribute to names.
func Attributes(names ...string) []string {
	return append([]string{HideAttribute}, names...)
}
