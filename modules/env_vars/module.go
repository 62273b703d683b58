package env_vars

import (
	"os"
	"strings"

	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/specialistvlad/propgraph/modules/base"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Environ overrides the process environment, in os.Environ form.
	Environ []string
}

// VariableAttribute names the environment variable an env component reads.
const VariableAttribute = "variable"

const (
	variableQueryIdx = 0
	stateQueryIdx    = 1
)

// Env is the updater of an env component's value: the environment variable
// named by the variable attribute, unless the value was set explicitly.
type Env struct {
	vars map[string]string
}

// Default implements prop.Updater.
func (e *Env) Default() cty.Value { return cty.StringVal("") }

// DataQueries implements prop.Updater.
func (e *Env) DataQueries() []prop.DataQuery {
	return []prop.DataQuery{
		prop.AttributeQuery(VariableAttribute, prop.ProfileString),
		prop.StateQuery(),
	}
}

// Calculate implements prop.Updater.
func (e *Env) Calculate(data []prop.DataQueryResult) prop.CalcResult {
	state := data[stateQueryIdx].Values[0]
	if !state.CameFromDefault {
		return prop.CalculatedValue(cty.StringVal(prop.ToString(state.Value)))
	}

	var name strings.Builder
	for _, v := range data[variableQueryIdx].Values {
		name.WriteString(prop.ToString(v.Value))
	}
	if value, ok := e.vars[name.String()]; ok {
		return prop.CalculatedValue(cty.StringVal(value))
	}
	return prop.DefaultValue(e.Default())
}

// Invert implements prop.Updater. An explicit value shadows the variable.
func (e *Env) Invert(_ []prop.DataQueryResult, requested cty.Value, _ bool) ([]prop.DependencyValueUpdateRequest, error) {
	return []prop.DependencyValueUpdateRequest{{
		QueryIdx:      stateQueryIdx,
		DependencyIdx: 0,
		Value:         cty.StringVal(prop.ToString(requested)),
	}}, nil
}

// Register registers the env component. The environment is captured once,
// here, so that every env prop of a document sees the same snapshot.
func (m *Module) Register(r *registry.Registry) {
	environ := m.Environ
	if environ == nil {
		environ = os.Environ()
	}
	vars := make(map[string]string, len(environ))
	for _, e := range environ {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			vars[pair[0]] = pair[1]
		}
	}

	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "env",
		Props: []registry.PropDefinition{
			base.Hidden(),
			{
				Name:      "value",
				New:       func() prop.Updater { return &Env{vars: vars} },
				ForRender: true,
				Profile:   prop.ProfileString,
				Public:    true,
			},
		},
		Attributes:  base.Attributes(VariableAttribute),
		DefaultProp: "value",
	})
}
