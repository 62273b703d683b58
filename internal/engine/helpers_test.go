package engine

import (
	"strings"
	"testing"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/model"
	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/specialistvlad/propgraph/internal/structure"
	"github.com/specialistvlad/propgraph/internal/updaters"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// probe is a test updater that concatenates its dependencies and counts
// its calculations.
type probe struct {
	queries []prop.DataQuery
	def     cty.Value
	calls   *int
	// sticky reports no change after the first calculation.
	sticky bool
}

func (u *probe) Default() cty.Value { return u.def }

func (u *probe) DataQueries() []prop.DataQuery { return u.queries }

func (u *probe) Calculate(data []prop.DataQueryResult) prop.CalcResult {
	*u.calls++
	if u.sticky && *u.calls > 1 {
		return prop.Unchanged()
	}
	var sb strings.Builder
	for _, r := range data {
		for _, v := range r.Values {
			sb.WriteString(prop.ToString(v.Value))
		}
	}
	return prop.CalculatedValue(cty.StringVal(sb.String()))
}

func (u *probe) Invert([]prop.DataQueryResult, cty.Value, bool) ([]prop.DependencyValueUpdateRequest, error) {
	return nil, prop.ErrNotImplemented
}

// watcher is a test updater that records the Changed flags of every view
// it is given.
type watcher struct {
	queries []prop.DataQuery
	seen    *[][]bool
}

func (u *watcher) Default() cty.Value { return cty.StringVal("") }

func (u *watcher) DataQueries() []prop.DataQuery { return u.queries }

func (u *watcher) Calculate(data []prop.DataQueryResult) prop.CalcResult {
	var flags []bool
	var sb strings.Builder
	for _, r := range data {
		for _, v := range r.Values {
			flags = append(flags, v.Changed)
			sb.WriteString(prop.ToString(v.Value))
		}
	}
	*u.seen = append(*u.seen, flags)
	return prop.CalculatedValue(cty.StringVal(sb.String()))
}

func (u *watcher) Invert([]prop.DataQueryResult, cty.Value, bool) ([]prop.DependencyValueUpdateRequest, error) {
	return nil, prop.ErrNotImplemented
}

type calls map[string]*int

func (c calls) probe(name string, sticky bool, queries ...prop.DataQuery) registry.PropDefinition {
	return registry.PropDefinition{
		Name: name,
		New: func() prop.Updater {
			if c[name] == nil {
				c[name] = new(int)
			}
			return &probe{queries: queries, def: cty.StringVal(strings.ToUpper(name)), calls: c[name], sticky: sticky}
		},
	}
}

func hiddenProp() registry.PropDefinition {
	return registry.PropDefinition{Name: "hidden", New: func() prop.Updater { return updaters.NewHidden("hide") }, ForRender: true}
}

// testRegistry holds a small catalog: generic text/p/boolean components plus
// probe-based types for counting calculations.
func testRegistry(c calls, seen *[][]bool) *registry.Registry {
	r := registry.New()
	r.RegisterComponent(&registry.ComponentDefinition{Type: model.RootType, Props: []registry.PropDefinition{hiddenProp()}})
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "text",
		Props: []registry.PropDefinition{
			hiddenProp(),
			{Name: "value", New: func() prop.Updater {
				return updaters.StringFromChildren(updaters.Config{Default: cty.StringVal("x"), PropagateCameFromDefault: true})
			}, ForRender: true, Profile: prop.ProfileString, Public: true},
		},
		Attributes:  []string{"hide"},
		DefaultProp: "value",
	})
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "p",
		Props: []registry.PropDefinition{
			hiddenProp(),
			{Name: "text", New: func() prop.Updater { return updaters.StringFromChildren(updaters.Config{}) }, ForRender: true},
		},
		Attributes: []string{"hide"},
	})
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "boolean",
		Props: []registry.PropDefinition{
			hiddenProp(),
			{Name: "value", New: func() prop.Updater { return updaters.BooleanFromChildren(updaters.Config{}) }, ForRender: true, Profile: prop.ProfileBoolean, Public: true},
		},
		Attributes:  []string{"hide"},
		DefaultProp: "value",
	})
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "input",
		Props: []registry.PropDefinition{
			hiddenProp(),
			{Name: "value", New: func() prop.Updater {
				return updaters.StringFromAttribute("bind_value_to", updaters.Config{})
			}, ForRender: true, Profile: prop.ProfileString, Public: true},
		},
		Attributes:  []string{"hide", "bind_value_to"},
		DefaultProp: "value",
		Actions: map[string]registry.ActionFunc{
			"updateValue": func(args cty.Value) ([]registry.PropUpdate, error) {
				return []registry.PropUpdate{{Prop: "value", Value: args.GetAttr("text")}}, nil
			},
		},
	})
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "diamond",
		Props: []registry.PropDefinition{
			c.probe("a", false, prop.PropQuery(1), prop.PropQuery(2)),
			c.probe("b", false, prop.PropQuery(3)),
			c.probe("c", false, prop.PropQuery(3)),
			c.probe("d", false, prop.StateQuery()),
		},
	})
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "chain",
		Props: []registry.PropDefinition{
			c.probe("top", false, prop.PropQuery(1)),
			c.probe("sticky", true, prop.PropQuery(2)),
			c.probe("src", false, prop.StateQuery()),
		},
	})
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "twin",
		Props: []registry.PropDefinition{
			{Name: "reader", New: func() prop.Updater {
				return &watcher{queries: []prop.DataQuery{prop.PropQuery(1), prop.PropQuery(1)}, seen: seen}
			}},
			c.probe("twinsrc", false, prop.StateQuery()),
		},
	})
	r.RegisterComponent(&registry.ComponentDefinition{
		Type:  "narcissus",
		Props: []registry.PropDefinition{c.probe("self", false, prop.PropQuery(0))},
	})
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: structure.ErrorType,
		Props: []registry.PropDefinition{
			hiddenProp(),
			{Name: "message", New: func() prop.Updater { return updaters.StringFromChildren(updaters.Config{}) }, ForRender: true},
		},
		DefaultProp: "message",
	})
	return r
}

type fixture struct {
	t      *testing.T
	engine *Engine
	calls  calls
	// seen collects the Changed flags observed by watcher props.
	seen [][]bool
}

func newFixture(t *testing.T, nodes ...*model.Node) *fixture {
	t.Helper()
	f := &fixture{t: t, calls: calls{}}
	doc := model.NewDocument()
	doc.AddFile(model.NewFSInfo("test.hcl"), nodes)
	store, diags := structure.Build(ctxlog.Quiet(), doc, testRegistry(f.calls, &f.seen))
	require.False(t, diags.HasErrors(), diags.Error())
	f.engine = New(ctxlog.Quiet(), store)
	return f
}

func (f *fixture) prop(component, name string) node.GraphNode {
	f.t.Helper()
	idx, ok := f.engine.Store().Lookup(component)
	require.True(f.t, ok, "no component %q", component)
	p, ok := f.engine.Store().PropByName(idx, name)
	require.True(f.t, ok, "component %q has no prop %q", component, name)
	return p
}

func (f *fixture) value(p node.GraphNode) cty.Value {
	f.t.Helper()
	v, err := f.engine.Value(ctxlog.Quiet(), p)
	require.NoError(f.t, err)
	return v
}

func (f *fixture) count(name string) int {
	if c := f.calls[name]; c != nil {
		return *c
	}
	return 0
}

func text(s string) *model.Text { return &model.Text{Value: s} }

func ref(name, p string) *model.Ref {
	return &model.Ref{Reference: model.Reference{Name: name, Prop: p}}
}

func textNode(name string, children ...model.Content) *model.Node {
	return &model.Node{Type: "text", Name: name, Children: children}
}
