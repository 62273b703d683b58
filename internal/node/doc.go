// Package node defines GraphNode, the small tagged handle used uniformly by
// the structure graph and the dependency graph.
//
// A GraphNode never carries data. Everything known about a component, a prop
// or a state lives in side tables owned by the structure store, the engine or
// the prop cache, indexed by the handle's Idx. Indices are dense within a kind
// and are only ever appended during the lifetime of a document.
package node
