// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of a document: a tree
// of component blocks with attributes, literal text and references.
//
// # Core Concepts
//
//   - Document: the root container. It aggregates the top-level blocks of one
//     or more .hcl files under an implicit "document" node.
//
//   - Node: one component block. Its type names a catalog entry, its optional
//     label is the name other blocks reference it by.
//
//   - Content: what can appear among children and attribute values, i.e. a
//     nested Node, literal Text, or an unresolved Ref.
//
//   - FSInfo: the source file of a node, for error messages.
//
// The model knows nothing about props or the dependency graph. It is the
// input of the structure builder, which validates it against the component
// registry and turns it into graph nodes.
package model
