package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphNode_String(t *testing.T) {
	testCases := []struct {
		name     string
		node     GraphNode
		expected string
	}{
		{name: "component", node: Component(0), expected: "component(0)"},
		{name: "prop", node: Prop(12), expected: "prop(12)"},
		{name: "state", node: State(3), expected: "state(3)"},
		{name: "virtual", node: Virtual(7), expected: "virtual(7)"},
		{name: "unknown kind", node: GraphNode{Kind: Kind(42), Idx: 1}, expected: "kind(42)(1)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.node.String())
		})
	}
}

func TestGraphNode_Identity(t *testing.T) {
	assert.Equal(t, Prop(1), GraphNode{Kind: KindProp, Idx: 1})
	assert.NotEqual(t, Prop(1), State(1), "same index in a different kind is a different node")

	seen := map[GraphNode]bool{Prop(1): true}
	assert.True(t, seen[Prop(1)])
	assert.False(t, seen[Query(1)])
}

func TestGraphNode_Leaves(t *testing.T) {
	assert.True(t, State(0).IsLeaf())
	assert.True(t, String(0).IsLeaf())
	assert.False(t, Prop(0).IsLeaf())

	assert.True(t, Prop(0).HasValue())
	assert.True(t, String(0).HasValue())
	assert.False(t, Query(0).HasValue())
	assert.False(t, Component(0).HasValue())
}
