package graph

import (
	"github.com/specialistvlad/propgraph/internal/node"
)

// tagKey addresses one auxiliary lookup attached to a node.
type tagKey struct {
	node node.GraphNode
	name string
}

// Graph is a directed graph over node.GraphNode with ordered children and a
// reverse (parents) index. It is not safe for concurrent use; the engine that
// owns a graph serializes all access to it.
type Graph struct {
	nodes    []node.GraphNode
	present  map[node.GraphNode]struct{}
	children map[node.GraphNode][]node.GraphNode
	parents  map[node.GraphNode][]node.GraphNode
	tags     map[tagKey]node.GraphNode
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		present:  make(map[node.GraphNode]struct{}),
		children: make(map[node.GraphNode][]node.GraphNode),
		parents:  make(map[node.GraphNode][]node.GraphNode),
		tags:     make(map[tagKey]node.GraphNode),
	}
}

// AddNode adds n to the graph. Adding a node twice does nothing.
func (g *Graph) AddNode(n node.GraphNode) {
	if _, ok := g.present[n]; ok {
		return
	}
	g.present[n] = struct{}{}
	g.nodes = append(g.nodes, n)
}

// HasNode reports whether n has been added to the graph.
func (g *Graph) HasNode(n node.GraphNode) bool {
	_, ok := g.present[n]
	return ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns every node in insertion order. The slice must not be modified.
func (g *Graph) Nodes() []node.GraphNode {
	return g.nodes
}

// AddEdge appends `to` to the ordered children of `from`, adding either
// endpoint when it is not yet part of the graph.
func (g *Graph) AddEdge(from, to node.GraphNode) {
	g.AddNode(from)
	g.AddNode(to)
	g.children[from] = append(g.children[from], to)
	g.parents[to] = appendUnique(g.parents[to], from)
}

// Children returns the ordered children of n. The slice must not be modified.
func (g *Graph) Children(n node.GraphNode) []node.GraphNode {
	return g.children[n]
}

// NthChild returns the i-th child of n.
func (g *Graph) NthChild(n node.GraphNode, i int) (node.GraphNode, bool) {
	kids := g.children[n]
	if i < 0 || i >= len(kids) {
		return node.GraphNode{}, false
	}
	return kids[i], true
}

// Parents returns every node that has n as a child, in the order the edges
// were first created. The slice must not be modified.
func (g *Graph) Parents(n node.GraphNode) []node.GraphNode {
	return g.parents[n]
}

// SetChildren replaces the children of n, keeping the parents index in sync.
func (g *Graph) SetChildren(n node.GraphNode, kids []node.GraphNode) {
	g.AddNode(n)

	keep := make(map[node.GraphNode]struct{}, len(kids))
	for _, k := range kids {
		keep[k] = struct{}{}
	}
	for _, old := range g.children[n] {
		if _, ok := keep[old]; ok {
			continue
		}
		g.parents[old] = removeElement(g.parents[old], n)
		if len(g.parents[old]) == 0 {
			delete(g.parents, old)
		}
	}

	replaced := make([]node.GraphNode, 0, len(kids))
	for _, k := range kids {
		g.AddNode(k)
		replaced = append(replaced, k)
		g.parents[k] = appendUnique(g.parents[k], n)
	}
	g.children[n] = replaced
}

// Tag returns the node stored under name for n.
func (g *Graph) Tag(n node.GraphNode, name string) (node.GraphNode, bool) {
	v, ok := g.tags[tagKey{node: n, name: name}]
	return v, ok
}

// SetTag stores value under name for n, replacing any previous value.
func (g *Graph) SetTag(n node.GraphNode, name string, value node.GraphNode) {
	g.tags[tagKey{node: n, name: name}] = value
}

func appendUnique[T comparable](slice []T, item T) []T {
	for _, existing := range slice {
		if existing == item {
			return slice
		}
	}
	return append(slice, item)
}

func removeElement[T comparable](slice []T, item T) []T {
	for i, existing := range slice {
		if existing == item {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}
