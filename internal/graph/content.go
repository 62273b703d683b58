package graph

import (
	"iter"

	"github.com/specialistvlad/propgraph/internal/node"
)

// ContentChildren yields the children of n with every Virtual node replaced,
// in place and recursively, by its own children. Callers iterating a
// component's content therefore never see virtual scaffolding.
//
// The expansion is depth-first and uses an explicit stack. A Virtual node
// reached a second time during one iteration is not expanded again.
func (g *Graph) ContentChildren(n node.GraphNode) iter.Seq[node.GraphNode] {
	return func(yield func(node.GraphNode) bool) {
		stack := make([]node.GraphNode, 0, 16)
		stack = pushReversed(stack, g.children[n])
		expanded := make(map[node.GraphNode]struct{})

		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if current.Kind != node.KindVirtual {
				if !yield(current) {
					return
				}
				continue
			}
			if _, seen := expanded[current]; seen {
				continue
			}
			expanded[current] = struct{}{}
			stack = pushReversed(stack, g.children[current])
		}
	}
}

// CollectContentChildren is ContentChildren materialized into a slice.
func (g *Graph) CollectContentChildren(n node.GraphNode) []node.GraphNode {
	var out []node.GraphNode
	for child := range g.ContentChildren(n) {
		out = append(out, child)
	}
	return out
}

// pushReversed pushes items so that items[0] ends up on top of the stack.
func pushReversed(stack, items []node.GraphNode) []node.GraphNode {
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, items[i])
	}
	return stack
}
