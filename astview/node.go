// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package astview provides a uniform view over go/ast nodes: ASTNode, a
// tagged union of a real host node and a virtual group node, and NodeView,
// a cached decoration of an ASTNode exposing normalised children and a
// stable, monotone identity. See §3/§4.2 for the rules this package
// implements.
package astview

import (
	"go/ast"
	"go/token"

	"srcx.dev/xform/nodekind"
	"srcx.dev/xform/srcrange"
)

// An ASTNode is either Real (a handle to a host-parsed node) or Virtual (an
// ordered group of child NodeViews with no underlying host node). Virtual
// nodes arise as template roots bundling multiple top-level sub-trees, as
// parameter-list/argument-list pseudo-children, and as prefixes enumerating
// variadic metavariable bindings.
type ASTNode struct {
	fset *token.FileSet

	// Real is the wrapped host node, or nil if this ASTNode is virtual.
	Real ast.Node

	// Group holds the ordered children of a virtual node. It is nil (not
	// just empty) for real nodes, and may legitimately be a zero-length
	// slice for a virtual node representing an absent optional child.
	Group []*NodeView
}

// NewReal wraps a concrete, non-nil host AST node.
func NewReal(fset *token.FileSet, n ast.Node) ASTNode {
	return ASTNode{fset: fset, Real: n}
}

// NewVirtualGroup builds a virtual node standing in for the ordered
// sequence children. A nil or empty children is the "empty" virtual node
// used for absent optional slots (§4.2) and for zero-arity metavariable
// bindings (§4.4, §8 Open Question).
func NewVirtualGroup(fset *token.FileSet, children []*NodeView) ASTNode {
	if children == nil {
		children = []*NodeView{}
	}
	return ASTNode{fset: fset, Group: children}
}

// IsVirtual reports whether n has no underlying host node.
func (n ASTNode) IsVirtual() bool { return n.Real == nil }

// IsEmpty reports whether n is the virtual-empty node (§4.3 rule 1): a
// virtual node with no children, standing in for a missing optional slot
// or a zero-arity binding.
func (n ASTNode) IsEmpty() bool { return n.IsVirtual() && len(n.Group) == 0 }

// Kind returns n's NodeKind, or nodekind.Invalid for a virtual node (a
// virtual group has no single discriminant of its own).
func (n ASTNode) Kind() nodekind.Kind {
	if n.IsVirtual() {
		return nodekind.Invalid
	}
	return nodekind.Of(n.Real)
}

// Range returns n's source range: the host node's written range for a Real
// node, or the union of the first and last leaf's ranges for a Virtual
// node (invalid if the group is empty).
func (n ASTNode) Range() srcrange.Range {
	if !n.IsVirtual() {
		return srcrange.FromPosPair(n.fset, n.Real.Pos(), n.Real.End())
	}
	if len(n.Group) == 0 {
		return srcrange.NoRange
	}
	first := n.Group[0].Node().Range()
	last := n.Group[len(n.Group)-1].Node().Range()
	return srcrange.Range{Begin: first.Begin, End: last.End}
}

// Fset returns the file set used to resolve n's positions.
func (n ASTNode) Fset() *token.FileSet { return n.fset }
