package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/zclconf/go-cty/cty"
)

// DroppedUpdate is an inverse-update branch that stopped at a prop whose
// updater could not invert the requested value.
type DroppedUpdate struct {
	Prop node.GraphNode
	Err  error
}

// UpdateReport summarizes one RequestUpdate call.
type UpdateReport struct {
	// Applied lists the leaves that received a new value, in order.
	Applied []node.GraphNode
	// Dropped lists the branches that could not be inverted.
	Dropped []DroppedUpdate
}

// Merge appends the entries of other to r.
func (r *UpdateReport) Merge(other *UpdateReport) {
	if other == nil {
		return
	}
	r.Applied = append(r.Applied, other.Applied...)
	r.Dropped = append(r.Dropped, other.Dropped...)
}

type invertItem struct {
	node   node.GraphNode
	direct bool
}

// RequestUpdate asks p to take value. The request travels backwards through
// the updaters' Invert until it reaches State and String leaves, which are
// the only nodes written. Everything that reads a written leaf is marked
// Stale and recalculated lazily on the next read.
//
// An updater refusing to invert drops only its own branch; the refusal is
// recorded in the report and not returned as an error. The error return is
// reserved for failures to freshen a prop before inverting it.
func (e *Engine) RequestUpdate(ctx context.Context, p node.GraphNode, value cty.Value) (*UpdateReport, error) {
	logger := ctxlog.FromContext(ctx)
	report := &UpdateReport{}

	e.cache.ClearRequested()
	e.cache.SetRequested(p, value)

	stack := []invertItem{{node: p, direct: true}}
	inverted := make(map[node.GraphNode]struct{})

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		requested, ok := e.cache.Requested(item.node)
		if !ok {
			continue
		}

		if item.node.IsLeaf() {
			e.cache.SetLeaf(item.node, requested, false)
			e.markDependentsStale(item.node)
			report.Applied = append(report.Applied, item.node)
			logger.Debug("Leaf updated.", "node", item.node.String(), "value", requested.GoString())
			continue
		}

		if _, done := inverted[item.node]; done {
			continue
		}
		inverted[item.node] = struct{}{}

		if err := e.Freshen(ctx, item.node); err != nil {
			return report, fmt.Errorf("failed to freshen %s before inverting: %w", e.Label(item.node), err)
		}

		updater := e.store.Prop(item.node).Updater
		requests, err := updater.Invert(e.dataFor(item.node, false), requested, item.direct)
		if err != nil {
			report.Dropped = append(report.Dropped, DroppedUpdate{Prop: item.node, Err: err})
			logger.Debug("Inverse update dropped.", "prop", e.Label(item.node), "error", err)
			continue
		}

		qnodes := e.deps.Children(item.node)
		for i := len(requests) - 1; i >= 0; i-- {
			r := requests[i]
			if r.QueryIdx < 0 || r.QueryIdx >= len(qnodes) {
				panic(fmt.Sprintf("engine: %s requested an update of query %d", e.Label(item.node), r.QueryIdx))
			}
			dep, ok := e.deps.NthChild(qnodes[r.QueryIdx], r.DependencyIdx)
			if !ok {
				panic(fmt.Sprintf("engine: %s requested an update of dependency %d.%d", e.Label(item.node), r.QueryIdx, r.DependencyIdx))
			}
			e.cache.SetRequested(dep, r.Value)
			stack = append(stack, invertItem{node: dep, direct: false})
		}
	}

	logger.Debug("Update request finished.", "prop", e.Label(p), "applied", len(report.Applied), "dropped", len(report.Dropped))
	return report, nil
}

// SetLeaf writes a State or String node directly, bypassing the updaters,
// and marks its readers Stale.
func (e *Engine) SetLeaf(ctx context.Context, n node.GraphNode, v cty.Value) {
	e.cache.SetLeaf(n, v, false)
	e.markDependentsStale(n)
	ctxlog.FromContext(ctx).Debug("Leaf set.", "node", n.String())
}

// markDependentsStale flood-fills Stale over everything that reads leaf,
// stopping at props that are not Fresh. A prop that is not Fresh cannot have
// Fresh readers, so the walk terminates on cycles.
func (e *Engine) markDependentsStale(leaf node.GraphNode) {
	stack := append([]node.GraphNode(nil), e.deps.Parents(leaf)...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Kind {
		case node.KindQuery:
			stack = append(stack, e.queries[n.Idx].owner)
		case node.KindProp:
			if e.cache.MarkStale(n) {
				stack = append(stack, e.deps.Parents(n)...)
			}
		}
	}
}
