package app

import (
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/specialistvlad/propgraph/modules/env_vars"
	"github.com/specialistvlad/propgraph/modules/errorbox"
	"github.com/specialistvlad/propgraph/modules/input"
	"github.com/specialistvlad/propgraph/modules/layout"
	"github.com/specialistvlad/propgraph/modules/text"
)

// coreModules is the definitive list of all modules that are compiled into
// the propgraph binary. text must precede input: references to String props
// expand into the first registered type with a String default prop.
var coreModules = []registry.Module{
	&layout.Module{},
	&text.Module{},
	&input.Module{},
	&env_vars.Module{},
	&errorbox.Module{},
}
