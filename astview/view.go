// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astview

import (
	"go/ast"
	"go/token"
	"sync"
	"sync/atomic"
)

// nextID is the process-wide monotone counter backing NodeView identity
// (§3, §5, §9): identifiers must be unique, not addresses, so NodeViews can
// live in value-typed containers and be cloned across PartialMatch forks
// without pointer games. If a host ever runs matchers concurrently, each
// matcher must own its NodeViews so the atomic increment below is the only
// shared state.
var nextID uint64

// A NodeView decorates an ASTNode with a stable identifier and a lazily
// computed, memoised list of normalised children (§4.2). Equality between
// NodeViews is defined by identifier, never by pointer or memory address.
type NodeView struct {
	id   uint64
	node ASTNode

	once     sync.Once
	children []*NodeView
}

// New allocates a fresh NodeView wrapping node, assigning it the next
// identifier from the process-wide counter.
func New(node ASTNode) *NodeView {
	return &NodeView{id: atomic.AddUint64(&nextID, 1), node: node}
}

// Wrap is a convenience constructor for a NodeView over a real host node.
func Wrap(fset *token.FileSet, n ast.Node) *NodeView {
	return New(NewReal(fset, n))
}

// Empty returns a fresh NodeView over the virtual-empty node, used to fill
// an absent optional child slot so sibling indices stay aligned across a
// template and its candidates.
func Empty(fset *token.FileSet) *NodeView {
	return New(NewVirtualGroup(fset, nil))
}

// ID returns v's stable identity.
func (v *NodeView) ID() uint64 { return v.id }

// Node returns the ASTNode v decorates.
func (v *NodeView) Node() ASTNode { return v.node }

// Same reports whether v and other are the same NodeView, by identifier.
func (v *NodeView) Same(other *NodeView) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.id == other.id
}

// Children returns v's normalised children, computing and memoising them
// on first access (§4.2). The result must never be mutated by callers.
func (v *NodeView) Children() []*NodeView {
	v.once.Do(func() {
		v.children = computeChildren(v.node)
	})
	return v.children
}

// HasChildren reports whether v has at least one normalised child.
func (v *NodeView) HasChildren() bool {
	return len(v.Children()) > 0
}

// PrefixGroup builds a virtual NodeView whose children are the contiguous
// slice siblings[start:start+width], the construction used to seat a
// candidate root at a node of matching kind (§4.2, §4.4).
func PrefixGroup(fset *token.FileSet, siblings []*NodeView, start, width int) *NodeView {
	slice := append([]*NodeView(nil), siblings[start:start+width]...)
	return New(NewVirtualGroup(fset, slice))
}

// group is a small helper building a virtual NodeView from already-built
// child views, skipping nothing: used for parameter lists, argument lists,
// composite-literal elements, and similar pseudo-children (§4.2).
func group(fset *token.FileSet, children ...*NodeView) *NodeView {
	return New(NewVirtualGroup(fset, children))
}

func wrapExprs(fset *token.FileSet, exprs []ast.Expr) []*NodeView {
	views := make([]*NodeView, len(exprs))
	for i, e := range exprs {
		views[i] = Wrap(fset, e)
	}
	return views
}

func wrapStmts(fset *token.FileSet, stmts []ast.Stmt) []*NodeView {
	views := make([]*NodeView, len(stmts))
	for i, s := range stmts {
		views[i] = Wrap(fset, s)
	}
	return views
}

// computeChildren implements the per-category rules of §4.2. It is a type
// switch over the wrapped host node in the manner of the teacher's own
// matchStmt/matchExpr dispatch (match.go), rather than a generic
// reflection-based child walk, so that the optional-slot placeholders
// required by the spec are explicit at each node kind.
func computeChildren(node ASTNode) []*NodeView {
	if node.IsVirtual() {
		return node.Group
	}
	fset := node.Fset()
	switch n := node.Real.(type) {

	// Declaration-context: children are the contained declarations.
	case *ast.File:
		return wrapDecls(fset, n.Decls)
	case *ast.GenDecl:
		return wrapSpecs(fset, n.Specs)
	case *ast.TypeSpec:
		switch t := n.Type.(type) {
		case *ast.StructType:
			return wrapFields(fset, t.Fields)
		case *ast.InterfaceType:
			return wrapFields(fset, t.Methods)
		}
		return nil

	// Function declaration: exactly two children, params group and
	// optional body.
	case *ast.FuncDecl:
		children := []*NodeView{wrapFieldList(fset, n.Type.Params)}
		if n.Body != nil {
			children = append(children, Wrap(fset, n.Body))
		}
		return children
	case *ast.FuncLit:
		children := []*NodeView{wrapFieldList(fset, n.Type.Params)}
		if n.Body != nil {
			children = append(children, Wrap(fset, n.Body))
		}
		return children

	// Variable/field/parameter declaration: one child if initialised.
	case *ast.ValueSpec:
		if len(n.Values) > 0 {
			return wrapExprs(fset, n.Values)
		}
		return nil
	case *ast.Field:
		return nil
	case *ast.ImportSpec:
		return nil

	// Declaration-statement: children are the declarations it introduces.
	case *ast.DeclStmt:
		if gd, ok := n.Decl.(*ast.GenDecl); ok {
			return wrapSpecs(fset, gd.Specs)
		}
		return nil

	// Statement/expression category: node's structural children.
	case *ast.BlockStmt:
		return wrapStmts(fset, n.List)
	case *ast.ExprStmt:
		return []*NodeView{Wrap(fset, n.X)}
	case *ast.LabeledStmt:
		return []*NodeView{Wrap(fset, n.Stmt)}
	case *ast.SendStmt:
		return []*NodeView{Wrap(fset, n.Chan), Wrap(fset, n.Value)}
	case *ast.IncDecStmt:
		return []*NodeView{Wrap(fset, n.X)}
	case *ast.AssignStmt:
		return []*NodeView{group(fset, wrapExprs(fset, n.Lhs)...), group(fset, wrapExprs(fset, n.Rhs)...)}
	case *ast.GoStmt:
		return []*NodeView{Wrap(fset, n.Call)}
	case *ast.DeferStmt:
		return []*NodeView{Wrap(fset, n.Call)}
	case *ast.ReturnStmt:
		return []*NodeView{group(fset, wrapExprs(fset, n.Results)...)}
	case *ast.BranchStmt:
		return nil
	case *ast.EmptyStmt:
		return nil
	case *ast.IfStmt:
		children := []*NodeView{optionalStmt(fset, n.Init), Wrap(fset, n.Cond), Wrap(fset, n.Body)}
		if n.Else != nil {
			children = append(children, Wrap(fset, n.Else))
		} else {
			children = append(children, Empty(fset))
		}
		return children
	case *ast.ForStmt:
		return []*NodeView{
			optionalStmt(fset, n.Init),
			optionalExpr(fset, n.Cond),
			optionalStmt(fset, n.Post),
			Wrap(fset, n.Body),
		}
	case *ast.RangeStmt:
		return []*NodeView{
			optionalExpr(fset, n.Key),
			optionalExpr(fset, n.Value),
			Wrap(fset, n.X),
			Wrap(fset, n.Body),
		}
	case *ast.SwitchStmt:
		return []*NodeView{optionalStmt(fset, n.Init), optionalExpr(fset, n.Tag), Wrap(fset, n.Body)}
	case *ast.TypeSwitchStmt:
		return []*NodeView{optionalStmt(fset, n.Init), Wrap(fset, n.Assign), Wrap(fset, n.Body)}
	case *ast.CaseClause:
		return []*NodeView{group(fset, wrapExprs(fset, n.List)...), group(fset, wrapStmts(fset, n.Body)...)}
	case *ast.SelectStmt:
		return []*NodeView{Wrap(fset, n.Body)}
	case *ast.CommClause:
		return []*NodeView{optionalStmt(fset, n.Comm), group(fset, wrapStmts(fset, n.Body)...)}

	case *ast.BinaryExpr:
		return []*NodeView{Wrap(fset, n.X), Wrap(fset, n.Y)}
	case *ast.UnaryExpr:
		return []*NodeView{Wrap(fset, n.X)}
	case *ast.StarExpr:
		return []*NodeView{Wrap(fset, n.X)}
	case *ast.ParenExpr:
		return []*NodeView{Wrap(fset, n.X)}
	case *ast.CallExpr:
		return []*NodeView{Wrap(fset, n.Fun), group(fset, wrapExprs(fset, n.Args)...)}
	case *ast.SelectorExpr:
		return []*NodeView{Wrap(fset, n.X)}
	case *ast.IndexExpr:
		return []*NodeView{Wrap(fset, n.X), Wrap(fset, n.Index)}
	case *ast.SliceExpr:
		return []*NodeView{
			Wrap(fset, n.X),
			optionalExpr(fset, n.Low),
			optionalExpr(fset, n.High),
			optionalExpr(fset, n.Max),
		}
	case *ast.TypeAssertExpr:
		return []*NodeView{Wrap(fset, n.X)}
	case *ast.CompositeLit:
		return []*NodeView{group(fset, wrapExprs(fset, n.Elts)...)}
	case *ast.KeyValueExpr:
		return []*NodeView{Wrap(fset, n.Key), Wrap(fset, n.Value)}

	// Leaves: no children.
	case *ast.Ident, *ast.BasicLit:
		return nil
	}
	return nil
}

func optionalStmt(fset *token.FileSet, s ast.Stmt) *NodeView {
	if s == nil {
		return Empty(fset)
	}
	return Wrap(fset, s)
}

func optionalExpr(fset *token.FileSet, e ast.Expr) *NodeView {
	if e == nil {
		return Empty(fset)
	}
	return Wrap(fset, e)
}

func wrapDecls(fset *token.FileSet, decls []ast.Decl) []*NodeView {
	views := make([]*NodeView, len(decls))
	for i, d := range decls {
		views[i] = Wrap(fset, d)
	}
	return views
}

func wrapSpecs(fset *token.FileSet, specs []ast.Spec) []*NodeView {
	views := make([]*NodeView, len(specs))
	for i, s := range specs {
		views[i] = Wrap(fset, s)
	}
	return views
}

func wrapFields(fset *token.FileSet, fl *ast.FieldList) []*NodeView {
	if fl == nil {
		return nil
	}
	views := make([]*NodeView, len(fl.List))
	for i, f := range fl.List {
		views[i] = Wrap(fset, f)
	}
	return views
}

// wrapFieldList builds the synthetic parameter-list virtual group child of
// a function declaration (§4.2).
func wrapFieldList(fset *token.FileSet, fl *ast.FieldList) *NodeView {
	return group(fset, wrapFields(fset, fl)...)
}
