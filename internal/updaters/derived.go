package updaters

import (
	"strings"

	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/zclconf/go-cty/cty"
)

// HiddenName is the prop name every catalog component uses for visibility.
const HiddenName = "hidden"

// Hidden is true when the component sets attribute or its parent is hidden.
type Hidden struct {
	attribute string
}

// NewHidden builds the hidden prop over attribute.
func NewHidden(attribute string) *Hidden {
	return &Hidden{attribute: attribute}
}

// Default implements prop.Updater.
func (h *Hidden) Default() cty.Value { return cty.False }

// DataQueries implements prop.Updater.
func (h *Hidden) DataQueries() []prop.DataQuery {
	return []prop.DataQuery{
		prop.AttributeQuery(h.attribute, prop.ProfileBoolean, prop.ProfileString),
		prop.ParentPropQuery(HiddenName),
	}
}

// Calculate implements prop.Updater.
func (h *Hidden) Calculate(data []prop.DataQueryResult) prop.CalcResult {
	own := data[0].Values
	parent := data[1].Values

	hidden := false
	switch {
	case len(own) == 1:
		hidden = prop.ToBool(own[0].Value, true)
	case len(own) > 1 && allTextual(own):
		var sb strings.Builder
		for _, v := range own {
			sb.WriteString(prop.ToString(v.Value))
		}
		hidden = prop.StringToBoolean(sb.String(), true)
	}

	fromDefault := len(own) == 0
	for _, p := range parent {
		hidden = hidden || prop.ToBool(p.Value, false)
		fromDefault = fromDefault && p.CameFromDefault
	}
	return prop.ResultFor(cty.BoolVal(hidden), fromDefault)
}

// Invert implements prop.Updater.
func (h *Hidden) Invert([]prop.DataQueryResult, cty.Value, bool) ([]prop.DependencyValueUpdateRequest, error) {
	return nil, prop.ErrNotImplemented
}

// TextOf renders another prop of the same component as text, e.g. the
// text of a number. Inverting parses the text back into the source prop.
type TextOf struct {
	source int
}

// NewTextOf builds a String prop mirroring local prop source.
func NewTextOf(source int) *TextOf {
	return &TextOf{source: source}
}

// Default implements prop.Updater.
func (t *TextOf) Default() cty.Value { return cty.StringVal("") }

// DataQueries implements prop.Updater.
func (t *TextOf) DataQueries() []prop.DataQuery {
	return []prop.DataQuery{prop.PropQuery(t.source)}
}

// Calculate implements prop.Updater.
func (t *TextOf) Calculate(data []prop.DataQueryResult) prop.CalcResult {
	deps := data[0].Values
	if len(deps) == 0 {
		return prop.DefaultValue(t.Default())
	}
	return prop.ResultFor(cty.StringVal(prop.ToString(deps[0].Value)), deps[0].CameFromDefault)
}

// Invert implements prop.Updater.
func (t *TextOf) Invert(data []prop.DataQueryResult, requested cty.Value, _ bool) ([]prop.DependencyValueUpdateRequest, error) {
	deps := data[0].Values
	if len(deps) != 1 {
		return nil, prop.ErrCouldNotUpdate
	}
	return []prop.DependencyValueUpdateRequest{{
		QueryIdx:      0,
		DependencyIdx: 0,
		Value:         prop.ConvertLike(requested, deps[0].Value),
	}}, nil
}

// Constant always yields the same value and cannot be inverted.
type Constant struct {
	value cty.Value
}

// NewConstant builds a prop that always calculates to v.
func NewConstant(v cty.Value) *Constant {
	return &Constant{value: v}
}

// Default implements prop.Updater.
func (c *Constant) Default() cty.Value { return c.value }

// DataQueries implements prop.Updater.
func (c *Constant) DataQueries() []prop.DataQuery { return nil }

// Calculate implements prop.Updater.
func (c *Constant) Calculate([]prop.DataQueryResult) prop.CalcResult {
	return prop.CalculatedValue(c.value)
}

// Invert implements prop.Updater.
func (c *Constant) Invert([]prop.DataQueryResult, cty.Value, bool) ([]prop.DependencyValueUpdateRequest, error) {
	return nil, prop.ErrNotImplemented
}
