package updaters

import (
	"strings"

	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/zclconf/go-cty/cty"
)

type valueKind uint8

const (
	kindString valueKind = iota
	kindBoolean
	kindNumber
)

// Config holds the per-instance options of the generic combinators.
type Config struct {
	// Default is the value of never-set independent state. A zero Value
	// selects "" / false / 0 depending on the prop type.
	Default cty.Value
	// PropagateCameFromDefault makes a single dependency's came_from_default
	// flag carry over to this prop. Otherwise the prop reports it was
	// calculated.
	PropagateCameFromDefault bool
}

const (
	dataQueryIdx  = 0
	stateQueryIdx = 1
)

// Combinator is the generic String/Boolean/Number prop. It reads either the
// content children or one attribute, and falls back to independent state
// when nothing matches.
type Combinator struct {
	kind      valueKind
	attribute string
	cfg       Config
}

// StringFromChildren builds a String prop over the content children.
func StringFromChildren(cfg Config) *Combinator {
	return &Combinator{kind: kindString, cfg: cfg}
}

// StringFromAttribute builds a String prop over the content of attribute name.
func StringFromAttribute(name string, cfg Config) *Combinator {
	return &Combinator{kind: kindString, attribute: name, cfg: cfg}
}

// BooleanFromChildren builds a Boolean prop over the content children.
func BooleanFromChildren(cfg Config) *Combinator {
	return &Combinator{kind: kindBoolean, cfg: cfg}
}

// BooleanFromAttribute builds a Boolean prop over the content of attribute name.
func BooleanFromAttribute(name string, cfg Config) *Combinator {
	return &Combinator{kind: kindBoolean, attribute: name, cfg: cfg}
}

// NumberFromChildren builds a Number prop over the content children.
func NumberFromChildren(cfg Config) *Combinator {
	return &Combinator{kind: kindNumber, cfg: cfg}
}

// NumberFromAttribute builds a Number prop over the content of attribute name.
func NumberFromAttribute(name string, cfg Config) *Combinator {
	return &Combinator{kind: kindNumber, attribute: name, cfg: cfg}
}

func (c *Combinator) fromAttribute() bool {
	return c.attribute != ""
}

func (c *Combinator) profiles() []prop.Profile {
	switch c.kind {
	case kindBoolean:
		return []prop.Profile{prop.ProfileBoolean, prop.ProfileString}
	case kindNumber:
		return []prop.Profile{prop.ProfileNumber, prop.ProfileInteger, prop.ProfileString}
	default:
		return []prop.Profile{prop.ProfileString}
	}
}

// Default implements prop.Updater.
func (c *Combinator) Default() cty.Value {
	if c.cfg.Default != cty.NilVal {
		return c.coerce(c.cfg.Default)
	}
	switch c.kind {
	case kindBoolean:
		return cty.False
	case kindNumber:
		return cty.Zero
	default:
		return cty.StringVal("")
	}
}

// DataQueries implements prop.Updater. The state query always comes second.
func (c *Combinator) DataQueries() []prop.DataQuery {
	var data prop.DataQuery
	if c.fromAttribute() {
		data = prop.AttributeQuery(c.attribute, c.profiles()...)
	} else {
		data = prop.ChildQuery(c.profiles()...)
	}
	return []prop.DataQuery{data, prop.StateQuery()}
}

// Calculate implements prop.Updater.
func (c *Combinator) Calculate(data []prop.DataQueryResult) prop.CalcResult {
	deps := data[dataQueryIdx].Values
	switch len(deps) {
	case 0:
		state := data[stateQueryIdx].Values[0]
		return prop.ResultFor(c.coerce(state.Value), state.CameFromDefault)
	case 1:
		dep := deps[0]
		return prop.ResultFor(c.coerce(dep.Value), c.cfg.PropagateCameFromDefault && dep.CameFromDefault)
	}

	if !prop.AnyChanged(data[:1]) {
		return prop.Unchanged()
	}
	if !allTextual(deps) {
		return prop.CalculatedValue(c.invalidCombination())
	}
	var sb strings.Builder
	for _, dep := range deps {
		sb.WriteString(prop.ToString(dep.Value))
	}
	return prop.CalculatedValue(c.coerce(cty.StringVal(sb.String())))
}

// Invert implements prop.Updater.
func (c *Combinator) Invert(data []prop.DataQueryResult, requested cty.Value, _ bool) ([]prop.DependencyValueUpdateRequest, error) {
	deps := data[dataQueryIdx].Values
	switch len(deps) {
	case 0:
		return []prop.DependencyValueUpdateRequest{{
			QueryIdx:      stateQueryIdx,
			DependencyIdx: 0,
			Value:         c.coerce(requested),
		}}, nil
	case 1:
		return []prop.DependencyValueUpdateRequest{{
			QueryIdx:      dataQueryIdx,
			DependencyIdx: 0,
			Value:         prop.ConvertLike(requested, deps[0].Value),
		}}, nil
	}
	return nil, prop.ErrCouldNotUpdate
}

func (c *Combinator) coerce(v cty.Value) cty.Value {
	switch c.kind {
	case kindBoolean:
		if v != cty.NilVal && !v.IsNull() && v.Type() == cty.Bool {
			return v
		}
		return cty.BoolVal(prop.StringToBoolean(prop.ToString(v), c.fromAttribute()))
	case kindNumber:
		return prop.ToNumber(v)
	default:
		return cty.StringVal(prop.ToString(v))
	}
}

// invalidCombination is the fixed result for several dependencies that
// cannot be concatenated, e.g. two boolean children.
func (c *Combinator) invalidCombination() cty.Value {
	switch c.kind {
	case kindBoolean:
		return cty.False
	case kindNumber:
		return cty.NullVal(cty.Number)
	default:
		return cty.StringVal("")
	}
}

func allTextual(deps []prop.View) bool {
	for _, dep := range deps {
		if !dep.Profile.IsTextual() {
			return false
		}
	}
	return true
}
