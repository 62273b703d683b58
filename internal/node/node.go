package node

import "fmt"

// Kind distinguishes between the closed set of vertex kinds shared by the
// structure graph and the dependency graph.
type Kind uint8

const (
	// KindComponent is a component of the document tree.
	KindComponent Kind = iota
	// KindString is a literal piece of text content.
	KindString
	// KindProp is a single prop slot of a component.
	KindProp
	// KindState is independent, user-editable data backing a prop.
	KindState
	// KindQuery is the reified result of one of a prop's data queries.
	KindQuery
	// KindVirtual is scaffolding (children list, attribute list, prop list, origins).
	KindVirtual
)

var kindNames = [...]string{
	KindComponent: "component",
	KindString:    "string",
	KindProp:      "prop",
	KindState:     "state",
	KindQuery:     "query",
	KindVirtual:   "virtual",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// GraphNode is a payload-free handle into one of the engine's arenas. Two
// handles are the same vertex when both the kind and the index match.
type GraphNode struct {
	Kind Kind
	Idx  int
}

// Component returns the handle of the component at idx.
func Component(idx int) GraphNode { return GraphNode{Kind: KindComponent, Idx: idx} }

// String returns the handle of the literal string at idx.
func String(idx int) GraphNode { return GraphNode{Kind: KindString, Idx: idx} }

// Prop returns the handle of the prop at idx.
func Prop(idx int) GraphNode { return GraphNode{Kind: KindProp, Idx: idx} }

// State returns the handle of the state at idx.
func State(idx int) GraphNode { return GraphNode{Kind: KindState, Idx: idx} }

// Query returns the handle of the query at idx.
func Query(idx int) GraphNode { return GraphNode{Kind: KindQuery, Idx: idx} }

// Virtual returns the handle of the virtual node at idx.
func Virtual(idx int) GraphNode { return GraphNode{Kind: KindVirtual, Idx: idx} }

// String renders the handle as kind(idx), e.g. "prop(12)".
func (n GraphNode) String() string {
	return fmt.Sprintf("%s(%d)", n.Kind, n.Idx)
}

// IsLeaf reports whether the node carries a value without dependencies of
// its own. Leaves are the only nodes an inverse update ever writes to.
func (n GraphNode) IsLeaf() bool {
	return n.Kind == KindState || n.Kind == KindString
}

// HasValue reports whether the node kind is backed by the prop cache.
func (n GraphNode) HasValue() bool {
	return n.Kind == KindProp || n.IsLeaf()
}
