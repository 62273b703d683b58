// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Node, one component block of a document, and the content
// items that can appear among its children and attribute values.
//
// Content is a closed union: a nested *Node, literal *Text, or an unresolved
// *Ref. References stay unresolved here; the structure builder expands them
// once every name in the document is known.
package model

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Content is one item of a node's children or of an attribute value.
type Content interface {
	SourceRange() hcl.Range
	isContent()
}

// Node is the format-agnostic representation of a component block.
type Node struct {
	Type          string
	Name          string
	Attributes    []*Attribute
	Children      []Content
	Extend        *Reference
	FSInformation *FSInfo
	Range         hcl.Range
}

// Attribute is a named attribute with content-typed value.
type Attribute struct {
	Name    string
	Content []Content
	Range   hcl.Range
}

// Text is a literal string.
type Text struct {
	Value string
	Range hcl.Range
}

// Ref is an unresolved reference in content position.
type Ref struct {
	Reference
}

// Reference names a component, optionally narrowed to one of its props.
type Reference struct {
	Name  string
	Prop  string
	Range hcl.Range
}

// Attribute returns the attribute with the given name.
func (n *Node) Attribute(name string) (*Attribute, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// SourceRange implements Content.
func (n *Node) SourceRange() hcl.Range { return n.Range }

// SourceRange implements Content.
func (t *Text) SourceRange() hcl.Range { return t.Range }

// SourceRange implements Content.
func (r *Ref) SourceRange() hcl.Range { return r.Range }

func (*Node) isContent() {}
func (*Text) isContent() {}
func (*Ref) isContent()  {}

// String renders the reference as written, e.g. "greeting.value".
func (r Reference) String() string {
	if r.Prop == "" {
		return r.Name
	}
	var sb strings.Builder
	sb.WriteString(r.Name)
	sb.WriteByte('.')
	sb.WriteString(r.Prop)
	return sb.String()
}
