// Package engine is the demand-driven incremental computation core.
//
// It owns the dependency graph and the prop cache of one document and
// offers three operations over them:
//
//   - Resolve turns a prop's declared data queries into Query nodes and
//     dependency edges (Prop → Query → Prop | State | String). It runs once
//     per prop.
//   - Freshen recalculates what is needed for a prop to be readable, in
//     dependency order, with an explicit stack.
//   - RequestUpdate pushes a requested value backwards through the updaters
//     to State and String leaves and marks their readers Stale.
//
// Nothing is recalculated eagerly. A write only invalidates; the next read
// pays for exactly the props it needs, each at most once.
//
// An Engine is single-threaded and non-reentrant. Callers that share one
// across goroutines serialize access themselves.
package engine
