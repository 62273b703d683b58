package engine

import (
	"context"
	"slices"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/propcache"
)

// Freshen makes p Fresh, resolving and calculating whatever it depends on
// first. The walk uses an explicit stack: a prop with dependencies that are
// not Fresh is pushed back below them and revisited once they are. Props that
// are already Fresh when popped are skipped, so each prop is calculated at
// most once per call.
//
// A dependency that is still waiting further down the stack closes a cycle
// in which no prop can get a value first; Freshen then returns a *CycleError.
func (e *Engine) Freshen(ctx context.Context, p node.GraphNode) error {
	if e.cache.Status(p) == propcache.Fresh {
		return nil
	}
	logger := ctxlog.FromContext(ctx)

	stack := []node.GraphNode{p}
	// waiting holds the props that were expanded and sit below their
	// dependencies on the stack. It is exactly the current DFS path.
	waiting := make(map[node.GraphNode]struct{})
	var path []node.GraphNode
	calculated := 0

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if e.cache.Status(top) == propcache.Fresh {
			continue
		}
		e.Resolve(ctx, top)

		pending := e.pendingDependencies(top)
		if len(pending) > 0 {
			if _, again := waiting[top]; again {
				// Only reachable when a dependency could not be freshened,
				// which the cycle check below rules out.
				panic("engine: prop revisited with stale dependencies: " + e.Label(top))
			}
			for _, d := range pending {
				if _, onPath := waiting[d]; onPath {
					err := e.cycleError(append(path, top), d)
					logger.Warn("Dependency cycle detected.", "cycle", err.Error())
					return err
				}
			}
			waiting[top] = struct{}{}
			path = append(path, top)
			stack = append(stack, top)
			for i := len(pending) - 1; i >= 0; i-- {
				stack = append(stack, pending[i])
			}
			continue
		}

		if e.calculate(top) {
			calculated++
		}
		if _, ok := waiting[top]; ok {
			delete(waiting, top)
			path = path[:len(path)-1]
		}
	}

	logger.Debug("Prop freshened.", "prop", e.Label(p), "calculated", calculated)
	return nil
}

// pendingDependencies lists the prop dependencies of p that are not Fresh,
// without duplicates, in dependency order.
func (e *Engine) pendingDependencies(p node.GraphNode) []node.GraphNode {
	var pending []node.GraphNode
	seen := make(map[node.GraphNode]struct{})
	for _, q := range e.deps.Children(p) {
		for _, d := range e.deps.Children(q) {
			if d.Kind != node.KindProp || e.cache.Status(d) == propcache.Fresh {
				continue
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			pending = append(pending, d)
		}
	}
	return pending
}

// calculate brings p to Fresh once its dependencies are Fresh. A Stale prop
// whose dependencies did not change since it last read them is refreshed
// without calling its updater. It reports whether the updater ran.
func (e *Engine) calculate(p node.GraphNode) bool {
	if e.cache.Status(p) == propcache.Stale && !e.anyDependencyChanged(p) {
		e.cache.MarkFresh(p)
		return false
	}
	updater := e.store.Prop(p).Updater
	e.cache.GetProp(p, p, func() prop.CalcResult {
		return updater.Calculate(e.dataFor(p, true))
	})
	return true
}

func (e *Engine) anyDependencyChanged(p node.GraphNode) bool {
	for _, q := range e.deps.Children(p) {
		for _, d := range e.deps.Children(q) {
			if e.cache.HasChangedSince(d, p) {
				return true
			}
		}
	}
	return false
}

// cycleError builds the cycle from the first occurrence of closing on path.
func (e *Engine) cycleError(path []node.GraphNode, closing node.GraphNode) *CycleError {
	start := slices.Index(path, closing)
	cycle := append(slices.Clone(path[start:]), closing)
	names := make([]string, len(cycle))
	for i, n := range cycle {
		names[i] = e.Label(n)
	}
	return &CycleError{Path: cycle, Names: names}
}
