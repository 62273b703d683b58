package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/propcache"
)

// Resolve creates the dependencies of p from its updater's data queries.
// It runs once per prop; later calls return immediately.
func (e *Engine) Resolve(ctx context.Context, p node.GraphNode) {
	if e.cache.Status(p) != propcache.Unresolved {
		return
	}
	slot := e.store.Prop(p)
	queries := slot.Updater.DataQueries()

	for i, q := range queries {
		deps, profiles := e.resolveQuery(p, q)
		qn := node.Query(len(e.queries))
		e.queries = append(e.queries, queryInfo{owner: p, index: i, query: q, profiles: profiles})
		e.deps.AddEdge(p, qn)
		e.deps.SetChildren(qn, deps)
	}
	e.deps.AddNode(p)
	e.cache.MarkResolved(p)

	ctxlog.FromContext(ctx).Debug("Prop resolved.", "prop", e.Label(p), "queries", len(queries))
}

func (e *Engine) resolveQuery(p node.GraphNode, q prop.DataQuery) ([]node.GraphNode, []prop.Profile) {
	slot := e.store.Prop(p)

	switch q.Kind {
	case prop.QueryState:
		return []node.GraphNode{e.stateNode(p)}, []prop.Profile{prop.ProfileNone}

	case prop.QueryProp:
		component := q.Component
		if component == prop.Self {
			component = slot.Component
		}
		target := e.store.PropNode(component, q.Prop)
		if target == p {
			panic(fmt.Sprintf("engine: prop %s queries itself", e.Label(p)))
		}
		return []node.GraphNode{target}, []prop.Profile{e.store.Prop(target).Definition.Profile}

	case prop.QueryParentProp:
		parent := e.store.Component(slot.Component).Parent
		if parent < 0 {
			return nil, nil
		}
		target, ok := e.store.PropByName(parent, q.Name)
		if !ok {
			return nil, nil
		}
		return []node.GraphNode{target}, []prop.Profile{e.store.Prop(target).Definition.Profile}

	case prop.QueryAttribute:
		content, ok := e.attributeContent(slot.Component, q.Name)
		if !ok {
			return nil, nil
		}
		return e.matchContent(content, q, nil, nil)

	case prop.QueryChildProfiles:
		var deps []node.GraphNode
		var profiles []prop.Profile
		// The bottom of an extend loop stops following the loop and reads
		// the shared State, so every other member resolves through it.
		if ext, ok := e.store.ExtendedProp(p); ok && e.chainBottom(p) != p {
			profile := e.store.Prop(ext).Definition.Profile
			if q.Match(profile) >= 0 {
				deps = append(deps, ext)
				profiles = append(profiles, profile)
			}
		}
		return e.matchContent(e.store.ContentChildren(slot.Component), q, deps, profiles)
	}

	panic(fmt.Sprintf("engine: unknown data query kind %s", q.Kind))
}

// matchContent appends the content items that satisfy q. A literal string
// matches when the query accepts text; a component is linked through its
// first prop whose profile appears earliest in q.Profiles.
func (e *Engine) matchContent(content []node.GraphNode, q prop.DataQuery, deps []node.GraphNode, profiles []prop.Profile) ([]node.GraphNode, []prop.Profile) {
	for _, c := range content {
		switch c.Kind {
		case node.KindString:
			if q.AcceptsText() {
				deps = append(deps, c)
				profiles = append(profiles, prop.ProfileString)
			}
		case node.KindComponent:
			def := e.store.Component(c.Idx).Definition
			for _, want := range q.Profiles {
				if local, ok := def.PropWithProfile(want); ok {
					deps = append(deps, e.store.PropNode(c.Idx, local))
					profiles = append(profiles, want)
					break
				}
			}
		}
	}
	return deps, profiles
}

// attributeContent returns the attribute content of a component, inheriting
// it along component-level extend links when the component does not set it.
func (e *Engine) attributeContent(component int, name string) ([]node.GraphNode, bool) {
	visited := make(map[int]struct{})
	for {
		if content, ok := e.store.AttributeContent(component, name); ok {
			return content, true
		}
		visited[component] = struct{}{}
		ext := e.store.Component(component).Extend
		if ext == nil || ext.IsProp() {
			return nil, false
		}
		if _, seen := visited[ext.Component]; seen {
			return nil, false
		}
		component = ext.Component
	}
}

// stateNode returns the State node shared by the extend chain of p, creating
// it on first use at the bottom of the chain.
func (e *Engine) stateNode(p node.GraphNode) node.GraphNode {
	bottom := e.chainBottom(p)
	if s, ok := e.stateOf[bottom]; ok {
		return s
	}
	s := node.State(e.states)
	e.states++
	e.stateOf[bottom] = s
	e.cache.InitLeaf(s, e.store.Prop(bottom).Updater.Default(), true)
	return s
}

// chainBottom follows the extend links of p to the prop that extends
// nothing. When the chain loops, the lowest prop of the loop stands in as
// the bottom so that every member agrees.
func (e *Engine) chainBottom(p node.GraphNode) node.GraphNode {
	chain := []node.GraphNode{p}
	index := map[node.GraphNode]int{p: 0}
	bottom := p
	for {
		next, ok := e.store.ExtendedProp(bottom)
		if !ok {
			return bottom
		}
		if at, seen := index[next]; seen {
			return lowest(chain[at:])
		}
		index[next] = len(chain)
		chain = append(chain, next)
		bottom = next
	}
}

func lowest(nodes []node.GraphNode) node.GraphNode {
	best := nodes[0]
	for _, n := range nodes[1:] {
		if n.Idx < best.Idx {
			best = n
		}
	}
	return best
}
