// Package graph provides the directed graph used for both the structure graph
// and the dependency graph.
//
// # Two graphs, one node space
//
// The structure graph is built once per document and encodes the component
// tree:
//
//	Component ──▶ Virtual(children)   ──▶ Component | String ...
//	          ──▶ Virtual(attributes) ──▶ Virtual(attr) ──▶ Component | String ...
//	          ──▶ Virtual(props)      ──▶ Prop ...
//
// The dependency graph grows lazily while props are resolved:
//
//	Prop ──▶ Query ──▶ Prop | State | String
//
// Both are plain *Graph values. Children are ordered (document order matters
// for concatenation), and a parents index is kept so that a change to a leaf
// can be propagated to everything that reads it.
//
// # Cycles
//
// The dependency graph may contain cycles. Graph itself never walks edges
// unboundedly except in ContentChildren, which refuses to expand the same
// Virtual node twice; cycle handling for value propagation lives in the
// engine.
package graph
