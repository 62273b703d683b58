// Package hcl loads documents written in HCL native syntax into the
// format-agnostic model.
//
// Every block is a component: the block type is the component type and the
// optional single label its name. Two attributes are reserved:
//
//	content = ["Hello, ", greeting, "!"]  // children: text, templates, references
//	extend  = base.value                  // the component or prop this one shadows
//
// Nested blocks are children as well and keep their source position relative
// to the content attribute. Every other attribute is a component attribute
// with the same content grammar. Numbers and bools are stringified.
package hcl
