// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Document, the root container for every node loaded
// from a user's .hcl files.
//
// Top-level blocks of all files become children of one implicit root node of
// type RootType, in file order. The structure builder only ever sees a single
// tree.
package model

import "github.com/hashicorp/hcl/v2"

// RootType is the component type of the implicit document root.
const RootType = "document"

// Document is the format-agnostic representation of a loaded document.
type Document struct {
	Root  *Node
	Files []*FSInfo
}

// NewDocument returns a Document with an empty root.
func NewDocument() *Document {
	return &Document{
		Root: &Node{Type: RootType},
	}
}

// AddFile records a loaded file and appends its top-level nodes to the root.
func (d *Document) AddFile(info *FSInfo, nodes []*Node) {
	d.Files = append(d.Files, info)
	for _, n := range nodes {
		d.Root.Children = append(d.Root.Children, n)
	}
	if len(nodes) > 0 && d.Root.Range.Filename == "" {
		d.Root.Range = hcl.Range{Filename: info.FilePath}
	}
}

// Walk visits every node of the document depth-first in document order,
// including nodes nested in attributes. It uses an explicit stack. Returning
// false from fn stops the walk.
func (d *Document) Walk(fn func(n *Node) bool) {
	stack := []*Node{d.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}

		var nested []*Node
		for _, attr := range n.Attributes {
			nested = appendNodes(nested, attr.Content)
		}
		nested = appendNodes(nested, n.Children)
		for i := len(nested) - 1; i >= 0; i-- {
			stack = append(stack, nested[i])
		}
	}
}

func appendNodes(dst []*Node, content []Content) []*Node {
	for _, c := range content {
		if n, ok := c.(*Node); ok {
			dst = append(dst, n)
		}
	}
	return dst
}
