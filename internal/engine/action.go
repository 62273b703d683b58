package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Action is a user action addressed to a component.
type Action struct {
	Component int
	Name      string
	Args      cty.Value
}

// ComponentByAddress resolves the component part of addr.
func (e *Engine) ComponentByAddress(addr *nodeid.Address) (int, error) {
	if addr.HasIndex() {
		if addr.Index < 0 || addr.Index >= e.store.NumComponents() {
			return -1, fmt.Errorf("%w: %s", ErrUnknownComponent, addr)
		}
		return addr.Index, nil
	}
	idx, ok := e.store.Lookup(addr.Name)
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrUnknownComponent, addr)
	}
	return idx, nil
}

// PropByAddress resolves addr to a public prop. An address without a prop
// part selects the component's default prop.
func (e *Engine) PropByAddress(addr *nodeid.Address) (node.GraphNode, error) {
	idx, err := e.ComponentByAddress(addr)
	if err != nil {
		return node.GraphNode{}, err
	}
	def := e.store.Component(idx).Definition

	name := addr.Prop
	if name == "" {
		name = def.DefaultProp
	}
	local, ok := def.PropIndex(name)
	if !ok || !def.Props[local].Public {
		return node.GraphNode{}, fmt.Errorf("%w: %s has no public prop %q", ErrUnknownProp, addr, name)
	}
	return e.store.PropNode(idx, local), nil
}

// Dispatch runs a component action: the catalog maps the arguments to prop
// updates and each one becomes a RequestUpdate.
func (e *Engine) Dispatch(ctx context.Context, a Action) (*UpdateReport, error) {
	logger := ctxlog.FromContext(ctx)
	if a.Component < 0 || a.Component >= e.store.NumComponents() {
		return nil, fmt.Errorf("%w: #%d", ErrUnknownComponent, a.Component)
	}
	c := e.store.Component(a.Component)
	handler, ok := c.Definition.Actions[a.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no action %q", ErrUnknownAction, e.componentLabel(a.Component), a.Name)
	}

	args := a.Args
	if args == cty.NilVal {
		args = cty.EmptyObjectVal
	}
	updates, err := handler(args)
	if err != nil {
		return nil, fmt.Errorf("action %s on %s: %w", a.Name, e.componentLabel(a.Component), err)
	}

	report := &UpdateReport{}
	for _, u := range updates {
		p, ok := e.store.PropByName(a.Component, u.Prop)
		if !ok {
			panic(fmt.Sprintf("engine: action %s of %s updates unknown prop %q", a.Name, c.Type, u.Prop))
		}
		r, err := e.RequestUpdate(ctx, p, u.Value)
		report.Merge(r)
		if err != nil {
			return report, err
		}
	}
	logger.Debug("Action dispatched.", "component", e.componentLabel(a.Component), "action", a.Name, "updates", len(updates))
	return report, nil
}
