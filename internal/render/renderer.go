package render

import (
	"context"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/engine"
	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/zclconf/go-cty/cty"
)

// Renderer produces deltas for one client. It shares the engine's
// single-threaded contract.
type Renderer struct {
	engine   *engine.Engine
	origin   node.GraphNode
	rendered bool
}

// New creates a renderer with its own change-tracking origin.
func New(e *engine.Engine) *Renderer {
	return &Renderer{engine: e, origin: e.NewOrigin()}
}

// Render walks the render tree and returns what changed since the previous
// call. A prop that fails to calculate is reported in Delta.Errors and does
// not stop the walk.
func (r *Renderer) Render(ctx context.Context) *Delta {
	logger := ctxlog.FromContext(ctx)
	store := r.engine.Store()
	first := !r.rendered
	r.rendered = true

	delta := &Delta{First: first}
	stack := []int{store.Root()}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := store.Component(idx)
		c.InRenderTree = true
		cd := ComponentDelta{Index: idx, Type: c.Type, Name: c.Name}

		for _, p := range store.PropNodes(idx) {
			def := store.Prop(p).Definition
			if !def.ForRender {
				continue
			}
			view, err := r.engine.Get(ctx, p, r.origin)
			if err != nil {
				logger.Warn("Prop could not be rendered.", "prop", r.engine.Label(p), "error", err)
				delta.Errors = append(delta.Errors, PropError{Prop: r.engine.Label(p), Error: err.Error()})
				continue
			}
			if first || view.Changed {
				if cd.Props == nil {
					cd.Props = make(map[string]cty.Value)
				}
				cd.Props[def.Name] = view.Value
			}
		}

		children := store.ContentChildren(idx)
		var next []int
		for _, ch := range children {
			switch ch.Kind {
			case node.KindComponent:
				next = append(next, ch.Idx)
				if first {
					cd.Children = append(cd.Children, Child{Kind: ChildComponent, Index: ch.Idx})
				}
			case node.KindString:
				r.renderString(ch, first, delta)
				if first {
					cd.Children = append(cd.Children, Child{Kind: ChildString, Index: ch.Idx})
				}
			}
		}
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}

		if first || len(cd.Props) > 0 {
			delta.Components = append(delta.Components, cd)
		}
	}

	logger.Debug("Rendered.", "first", first, "components", len(delta.Components), "strings", len(delta.Strings), "errors", len(delta.Errors))
	return delta
}

func (r *Renderer) renderString(n node.GraphNode, first bool, delta *Delta) {
	view := r.engine.Cache().View(n, r.origin)
	if !first && !view.Changed {
		return
	}
	if delta.Strings == nil {
		delta.Strings = make(map[int]string)
	}
	delta.Strings[n.Idx] = prop.ToString(view.Value)
}
