package structure

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/propgraph/internal/graph"
	"github.com/specialistvlad/propgraph/internal/model"
	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/registry"
)

// ErrorType is the placeholder component type for document errors.
const ErrorType = "_error"

// Indices of the three virtual children every component has, in order.
const (
	childrenSlot = iota
	attributesSlot
	propsSlot
)

// Component is one entry of the component arena.
type Component struct {
	Idx        int
	Type       string
	Name       string
	Definition *registry.ComponentDefinition
	// Parent is the structural parent, -1 for the root.
	Parent int
	Extend *ExtendSource
	// PropBase is the arena index of local prop 0.
	PropBase      int
	InRenderTree  bool
	Range         hcl.Range
	FSInformation *model.FSInfo
}

// ExtendSource is what a component shadows: a whole component, or with
// Prop >= 0 one prop of it.
type ExtendSource struct {
	Component int
	Prop      int
}

// IsProp reports whether the extend targets a single prop.
func (e ExtendSource) IsProp() bool { return e.Prop >= 0 }

// PropSlot is one entry of the prop arena.
type PropSlot struct {
	Node       node.GraphNode
	Component  int
	Local      int
	Definition *registry.PropDefinition
	Updater    prop.Updater
}

// Store owns the component, string and prop arenas and the structure graph.
// It is append-only; indices are stable for the lifetime of the document.
type Store struct {
	reg        *registry.Registry
	components []*Component
	strings    []string
	props      []*PropSlot
	names      map[string]int
	graph      *graph.Graph
	virtuals   int
}

// NewStore creates an empty store backed by reg.
func NewStore(reg *registry.Registry) *Store {
	return &Store{
		reg:   reg,
		names: make(map[string]int),
		graph: graph.New(),
	}
}

// Registry returns the component catalog.
func (s *Store) Registry() *registry.Registry { return s.reg }

// Graph returns the structure graph.
func (s *Store) Graph() *graph.Graph { return s.graph }

// Root returns the index of the document root.
func (s *Store) Root() int { return 0 }

// NumComponents returns the size of the component arena.
func (s *Store) NumComponents() int { return len(s.components) }

// Component returns the component at idx.
func (s *Store) Component(idx int) *Component { return s.components[idx] }

// NumStrings returns the number of literal String nodes.
func (s *Store) NumStrings() int { return len(s.strings) }

// StringValue returns the literal a String node was created with.
func (s *Store) StringValue(idx int) string { return s.strings[idx] }

// NumProps returns the size of the prop arena.
func (s *Store) NumProps() int { return len(s.props) }

// Prop returns the slot of a Prop node.
func (s *Store) Prop(p node.GraphNode) *PropSlot {
	if p.Kind != node.KindProp {
		panic(fmt.Sprintf("structure: %s is not a prop", p))
	}
	return s.props[p.Idx]
}

// PropNode returns the Prop node for a local prop index of a component.
func (s *Store) PropNode(component, local int) node.GraphNode {
	c := s.components[component]
	if local < 0 || local >= len(c.Definition.Props) {
		panic(fmt.Sprintf("structure: component %d (%s) has no prop %d", component, c.Type, local))
	}
	return node.Prop(c.PropBase + local)
}

// PropByName returns the Prop node for a named prop of a component.
func (s *Store) PropByName(component int, name string) (node.GraphNode, bool) {
	local, ok := s.components[component].Definition.PropIndex(name)
	if !ok {
		return node.GraphNode{}, false
	}
	return s.PropNode(component, local), true
}

// Lookup returns the component registered under name.
func (s *Store) Lookup(name string) (int, bool) {
	idx, ok := s.names[name]
	return idx, ok
}

// NewVirtual allocates a fresh Virtual node. Besides the structure scaffolding
// it is used for consumer identities such as renderer origins.
func (s *Store) NewVirtual() node.GraphNode {
	v := node.Virtual(s.virtuals)
	s.virtuals++
	return v
}

func (s *Store) slot(component, slot int) node.GraphNode {
	v, ok := s.graph.NthChild(node.Component(component), slot)
	if !ok {
		panic(fmt.Sprintf("structure: component %d is missing virtual slot %d", component, slot))
	}
	return v
}

// ContentChildren returns the content children of a component in document
// order: Component and String nodes, with virtual scaffolding spliced out.
func (s *Store) ContentChildren(component int) []node.GraphNode {
	return s.graph.CollectContentChildren(s.slot(component, childrenSlot))
}

// AttributeContent returns the content of a component's attribute.
func (s *Store) AttributeContent(component int, name string) ([]node.GraphNode, bool) {
	v, ok := s.graph.Tag(s.slot(component, attributesSlot), name)
	if !ok {
		return nil, false
	}
	return s.graph.CollectContentChildren(v), true
}

// PropNodes returns the Prop nodes of a component in local order.
func (s *Store) PropNodes(component int) []node.GraphNode {
	return s.graph.Children(s.slot(component, propsSlot))
}

// ExtendedProp returns the prop that p shadows through its component's
// extend link. A prop-level extend maps only the default prop. A
// component-level extend maps props by local index between components of the
// same type and the default prop otherwise.
func (s *Store) ExtendedProp(p node.GraphNode) (node.GraphNode, bool) {
	slot := s.Prop(p)
	c := s.components[slot.Component]
	if c.Extend == nil {
		return node.GraphNode{}, false
	}
	target := s.components[c.Extend.Component]
	if target.Definition == nil {
		return node.GraphNode{}, false
	}

	defaultIdx, hasDefault := c.Definition.DefaultPropIndex()
	switch {
	case c.Extend.IsProp():
		if !hasDefault || slot.Local != defaultIdx {
			return node.GraphNode{}, false
		}
		return s.PropNode(target.Idx, c.Extend.Prop), true
	case target.Type == c.Type:
		return s.PropNode(target.Idx, slot.Local), true
	default:
		targetDefault, ok := target.Definition.DefaultPropIndex()
		if !hasDefault || !ok || slot.Local != defaultIdx {
			return node.GraphNode{}, false
		}
		return s.PropNode(target.Idx, targetDefault), true
	}
}

func (s *Store) addComponent(def *registry.ComponentDefinition, parent int, rng hcl.Range, info *model.FSInfo) int {
	idx := len(s.components)
	c := &Component{
		Idx:           idx,
		Parent:        parent,
		PropBase:      -1,
		Range:         rng,
		FSInformation: info,
	}
	s.components = append(s.components, c)

	cn := node.Component(idx)
	s.graph.AddNode(cn)
	for range propsSlot + 1 {
		s.graph.AddEdge(cn, s.NewVirtual())
	}
	if def != nil {
		s.assignType(idx, def)
	}
	return idx
}

// assignType fixes the type of a component and allocates its prop slots.
func (s *Store) assignType(idx int, def *registry.ComponentDefinition) {
	c := s.components[idx]
	if c.Definition != nil {
		panic(fmt.Sprintf("structure: component %d already has type %s", idx, c.Type))
	}
	c.Type = def.Type
	c.Definition = def
	c.PropBase = len(s.props)

	props := s.slot(idx, propsSlot)
	for local := range def.Props {
		pd := &def.Props[local]
		p := node.Prop(len(s.props))
		s.props = append(s.props, &PropSlot{
			Node:       p,
			Component:  idx,
			Local:      local,
			Definition: pd,
			Updater:    pd.New(),
		})
		s.graph.AddEdge(props, p)
	}
}

func (s *Store) addString(into node.GraphNode, value string) node.GraphNode {
	n := node.String(len(s.strings))
	s.strings = append(s.strings, value)
	s.graph.AddEdge(into, n)
	return n
}

func (s *Store) addAttribute(component int, name string) node.GraphNode {
	attrs := s.slot(component, attributesSlot)
	if v, ok := s.graph.Tag(attrs, name); ok {
		return v
	}
	v := s.NewVirtual()
	s.graph.AddEdge(attrs, v)
	s.graph.SetTag(attrs, name, v)
	return v
}
