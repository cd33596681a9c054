// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package template

import (
	"fmt"
	"go/ast"

	"srcx.dev/xform/astview"
)

// applyImplicitParameterization implements the §4.1 "implicit constructor
// parameterisation" rule for Go: a name_only metavariable bound to a
// struct- or interface-shaped type declaration also implicitly binds every
// sibling declaration that is either a matching New<Type> factory function
// (the Go analogue of a constructor) or a method whose receiver names the
// type (the analogue of an inner member), each as its own anonymous
// name_only metavariable, so the matcher ignores the type's name inside
// them too.
//
// A name_only-bound TypeSpec is rarely one of subtrees' own top-level
// elements: a single `type C struct{...}` declaration parses as a GenDecl
// whose lone child is the TypeSpec, so the search also has to look one
// level into every top-level GenDecl, not just at the top level itself.
func applyImplicitParameterization(subtrees []*astview.NodeView, metavars map[uint64]Metavariable) {
	counter := 0
	for _, ts := range nameOnlyTypeSpecs(subtrees, metavars) {
		for _, sib := range subtrees {
			if sib.Same(ts.node) {
				continue
			}
			markImplicitMember(sib, ts.spec.Name.Name, metavars, &counter)
		}
	}
}

// namedTypeSpec pairs a name_only-bound TypeSpec with the NodeView it was
// found at, so callers can exclude that exact node (rather than its
// enclosing GenDecl) from the sibling scan.
type namedTypeSpec struct {
	node *astview.NodeView
	spec *ast.TypeSpec
}

func nameOnlyTypeSpecs(subtrees []*astview.NodeView, metavars map[uint64]Metavariable) []namedTypeSpec {
	var out []namedTypeSpec
	for _, n := range subtrees {
		if ts, ok := nameOnlyTypeSpec(n, metavars); ok {
			out = append(out, namedTypeSpec{node: n, spec: ts})
			continue
		}
		if _, ok := n.Node().Real.(*ast.GenDecl); !ok {
			continue
		}
		for _, child := range n.Children() {
			if ts, ok := nameOnlyTypeSpec(child, metavars); ok {
				out = append(out, namedTypeSpec{node: child, spec: ts})
			}
		}
	}
	return out
}

func nameOnlyTypeSpec(n *astview.NodeView, metavars map[uint64]Metavariable) (*ast.TypeSpec, bool) {
	mv, ok := metavars[n.ID()]
	if !ok || !mv.NameOnly {
		return nil, false
	}
	ts, ok := n.Node().Real.(*ast.TypeSpec)
	if !ok {
		return nil, false
	}
	switch ts.Type.(type) {
	case *ast.StructType, *ast.InterfaceType:
		return ts, true
	}
	return nil, false
}

func markImplicitMember(n *astview.NodeView, typeName string, metavars map[uint64]Metavariable, counter *int) {
	fd, ok := n.Node().Real.(*ast.FuncDecl)
	if !ok {
		return
	}
	if fd.Recv == nil {
		if fd.Name.Name == "New"+typeName {
			*counter++
			metavars[n.ID()] = Metavariable{Identifier: fmt.Sprintf("$ctor%d", *counter), NameOnly: true}
		}
		return
	}
	if receiverTypeName(fd.Recv) == typeName {
		*counter++
		metavars[n.ID()] = Metavariable{Identifier: fmt.Sprintf("$member%d", *counter), NameOnly: true}
	}
}

func receiverTypeName(fl *ast.FieldList) string {
	if fl == nil || len(fl.List) == 0 {
		return ""
	}
	t := fl.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	if id, ok := t.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}
