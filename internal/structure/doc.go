// Package structure builds the structure store from a document model: the
// component, string and prop arenas, the name table and the structure graph.
//
// Every component gets exactly three virtual children, in this order:
//
//	Component ──▶ Virtual(children)   ──▶ Component | String ...
//	          ──▶ Virtual(attributes) ──▶ Virtual(attr) ──▶ Component | String ...
//	          ──▶ Virtual(props)      ──▶ Prop ...
//
// Attribute virtual nodes are found by name through graph tags on the
// attributes node.
//
// References in content are expanded into new components that extend the
// referenced component or prop, so the engine only ever sees concrete
// components. Anything the builder cannot make sense of becomes an
// ErrorType component carrying the message as its text.
package structure
