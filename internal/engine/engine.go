package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/graph"
	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/propcache"
	"github.com/specialistvlad/propgraph/internal/structure"
	"github.com/zclconf/go-cty/cty"
)

// queryInfo is the side table entry of a Query node.
type queryInfo struct {
	owner node.GraphNode
	index int
	query prop.DataQuery
	// profiles holds the matched profile of each dependency, parallel to the
	// Query node's children.
	profiles []prop.Profile
}

// Engine owns the dependency graph and the prop cache of one document. It is
// not safe for concurrent use and must not be re-entered from an updater.
type Engine struct {
	store   *structure.Store
	deps    *graph.Graph
	cache   *propcache.Cache
	queries []queryInfo
	// stateOf maps the bottom prop of an extend chain to its State node.
	stateOf map[node.GraphNode]node.GraphNode
	states  int
}

// New creates an engine over store and seeds every literal String node.
func New(ctx context.Context, store *structure.Store) *Engine {
	e := &Engine{
		store:   store,
		deps:    graph.New(),
		cache:   propcache.New(),
		stateOf: make(map[node.GraphNode]node.GraphNode),
	}
	for i := range store.NumStrings() {
		e.cache.InitLeaf(node.String(i), cty.StringVal(store.StringValue(i)), false)
	}
	ctxlog.FromContext(ctx).Debug("Engine created.", "strings", store.NumStrings(), "props", store.NumProps())
	return e
}

// Store returns the structure store the engine runs over.
func (e *Engine) Store() *structure.Store { return e.store }

// Cache returns the prop cache.
func (e *Engine) Cache() *propcache.Cache { return e.cache }

// DependencyGraph returns the dependency graph built so far.
func (e *Engine) DependencyGraph() *graph.Graph { return e.deps }

// NewOrigin allocates an identity for a reader outside the graph, such as a
// renderer. Each origin tracks changes independently.
func (e *Engine) NewOrigin() node.GraphNode {
	return e.store.NewVirtual()
}

// Get freshens p and returns its value as seen by origin.
func (e *Engine) Get(ctx context.Context, p node.GraphNode, origin node.GraphNode) (prop.View, error) {
	if err := e.Freshen(ctx, p); err != nil {
		return prop.View{}, err
	}
	v := e.cache.View(p, origin)
	v.Profile = e.store.Prop(p).Definition.Profile
	return v, nil
}

// Value freshens p and returns its value.
func (e *Engine) Value(ctx context.Context, p node.GraphNode) (cty.Value, error) {
	if err := e.Freshen(ctx, p); err != nil {
		return cty.NilVal, err
	}
	return e.cache.Value(p), nil
}

// Dependencies returns the resolved dependencies of p, one slice per data
// query. It returns nil for unresolved props.
func (e *Engine) Dependencies(p node.GraphNode) [][]node.GraphNode {
	qnodes := e.deps.Children(p)
	if len(qnodes) == 0 {
		return nil
	}
	out := make([][]node.GraphNode, len(qnodes))
	for i, q := range qnodes {
		out[i] = append([]node.GraphNode(nil), e.deps.Children(q)...)
	}
	return out
}

// StateFor returns the State node p reads, if it has been created.
func (e *Engine) StateFor(p node.GraphNode) (node.GraphNode, bool) {
	for _, deps := range e.Dependencies(p) {
		for _, d := range deps {
			if d.Kind == node.KindState {
				return d, true
			}
		}
	}
	return node.GraphNode{}, false
}

// Label renders a node for logs and errors, e.g. "greeting.value" or
// "#4.hidden" for unnamed components.
func (e *Engine) Label(n node.GraphNode) string {
	switch n.Kind {
	case node.KindProp:
		slot := e.store.Prop(n)
		return fmt.Sprintf("%s.%s", e.componentLabel(slot.Component), slot.Definition.Name)
	case node.KindComponent:
		return e.componentLabel(n.Idx)
	}
	return n.String()
}

func (e *Engine) componentLabel(idx int) string {
	if name := e.store.Component(idx).Name; name != "" {
		return name
	}
	return fmt.Sprintf("#%d", idx)
}

// dataFor gathers the dependency views of p per query. With record set the
// reads are recorded against p as origin once every view is taken, so a
// node listed twice reports the same Changed flag both times.
func (e *Engine) dataFor(p node.GraphNode, record bool) []prop.DataQueryResult {
	qnodes := e.deps.Children(p)
	data := make([]prop.DataQueryResult, len(qnodes))
	for i, q := range qnodes {
		info := e.queries[q.Idx]
		deps := e.deps.Children(q)
		views := make([]prop.View, len(deps))
		for j, d := range deps {
			views[j] = e.cache.Peek(d, p)
			views[j].Profile = info.profiles[j]
		}
		data[i] = prop.DataQueryResult{Values: views}
	}
	if record {
		for _, q := range qnodes {
			for _, d := range e.deps.Children(q) {
				e.cache.MarkSeen(d, p)
			}
		}
	}
	return data
}
