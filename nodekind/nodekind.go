// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nodekind classifies go/ast nodes into the NodeKind discriminant
// described in xform's data model: a category (declaration, statement,
// expression, ...) plus a concrete kind, with IsSame and IsBaseOf tests
// mirroring the subtype checks a C-family AST would expose (e.g. every
// binary-expression kind IsBaseOf the generic "expression" category).
package nodekind

import (
	"fmt"
	"go/ast"
	"reflect"
)

// Category is the coarse classification a Kind belongs to.
type Category int

const (
	CategoryInvalid Category = iota
	CategoryDeclaration
	CategoryStatement
	CategoryExpression
	CategoryOther
)

// Kind is a discriminant identifying the concrete Go AST node type behind a
// NodeView, plus the Category it belongs to. Kind values for registered
// node types are looked up in a process-wide table built once (see the
// package init below); Of gives an unregistered node type a CategoryOther
// Kind that still carries its own Go type, so IsSame can compare by value.
type Kind struct {
	Category Category
	name     string
	goType   reflect.Type
}

// Invalid is the zero Kind, used for absent/virtual nodes.
var Invalid = Kind{}

func (k Kind) String() string {
	if k.name == "" {
		return "invalid"
	}
	return k.name
}

// IsSame reports whether k and other denote exactly the same concrete node
// type.
func (k Kind) IsSame(other Kind) bool {
	return k.goType == other.goType && k.Category == other.Category
}

// IsBaseOf reports whether k is a supertype of other within the category
// hierarchy: either they are the same kind, or k is one of the three
// synthetic category roots (CategoryDeclaration/Statement/Expression) and
// other belongs to that category. This is the closest Go-native analogue
// of asking whether a Clang Stmt/Decl subclass "is-a" another.
func (k Kind) IsBaseOf(other Kind) bool {
	if k.IsSame(other) {
		return true
	}
	if k.goType == nil && k.Category != CategoryInvalid {
		return k.Category == other.Category
	}
	return false
}

var kindTable = map[reflect.Type]Kind{}

func register(cat Category, name string, sample any) {
	t := reflect.TypeOf(sample)
	kindTable[t] = Kind{Category: cat, name: name, goType: t}
}

// Category roots, usable directly as a Kind whose goType is nil: they
// match (via IsBaseOf) any concrete kind in that category.
var (
	AnyDeclaration = Kind{Category: CategoryDeclaration, name: "declaration"}
	AnyStatement   = Kind{Category: CategoryStatement, name: "statement"}
	AnyExpression  = Kind{Category: CategoryExpression, name: "expression"}
)

func init() {
	register(CategoryDeclaration, "gen-decl", &ast.GenDecl{})
	register(CategoryDeclaration, "func-decl", &ast.FuncDecl{})
	register(CategoryDeclaration, "import-spec", &ast.ImportSpec{})
	register(CategoryDeclaration, "value-spec", &ast.ValueSpec{})
	register(CategoryDeclaration, "type-spec", &ast.TypeSpec{})
	register(CategoryDeclaration, "field", &ast.Field{})

	register(CategoryStatement, "block-stmt", &ast.BlockStmt{})
	register(CategoryStatement, "expr-stmt", &ast.ExprStmt{})
	register(CategoryStatement, "assign-stmt", &ast.AssignStmt{})
	register(CategoryStatement, "decl-stmt", &ast.DeclStmt{})
	register(CategoryStatement, "return-stmt", &ast.ReturnStmt{})
	register(CategoryStatement, "if-stmt", &ast.IfStmt{})
	register(CategoryStatement, "for-stmt", &ast.ForStmt{})
	register(CategoryStatement, "range-stmt", &ast.RangeStmt{})
	register(CategoryStatement, "switch-stmt", &ast.SwitchStmt{})
	register(CategoryStatement, "type-switch-stmt", &ast.TypeSwitchStmt{})
	register(CategoryStatement, "case-clause", &ast.CaseClause{})
	register(CategoryStatement, "select-stmt", &ast.SelectStmt{})
	register(CategoryStatement, "comm-clause", &ast.CommClause{})
	register(CategoryStatement, "go-stmt", &ast.GoStmt{})
	register(CategoryStatement, "defer-stmt", &ast.DeferStmt{})
	register(CategoryStatement, "send-stmt", &ast.SendStmt{})
	register(CategoryStatement, "inc-dec-stmt", &ast.IncDecStmt{})
	register(CategoryStatement, "branch-stmt", &ast.BranchStmt{})
	register(CategoryStatement, "labeled-stmt", &ast.LabeledStmt{})
	register(CategoryStatement, "empty-stmt", &ast.EmptyStmt{})

	register(CategoryExpression, "ident", &ast.Ident{})
	register(CategoryExpression, "basic-lit", &ast.BasicLit{})
	register(CategoryExpression, "func-lit", &ast.FuncLit{})
	register(CategoryExpression, "composite-lit", &ast.CompositeLit{})
	register(CategoryExpression, "paren-expr", &ast.ParenExpr{})
	register(CategoryExpression, "selector-expr", &ast.SelectorExpr{})
	register(CategoryExpression, "index-expr", &ast.IndexExpr{})
	register(CategoryExpression, "slice-expr", &ast.SliceExpr{})
	register(CategoryExpression, "type-assert-expr", &ast.TypeAssertExpr{})
	register(CategoryExpression, "call-expr", &ast.CallExpr{})
	register(CategoryExpression, "star-expr", &ast.StarExpr{})
	register(CategoryExpression, "unary-expr", &ast.UnaryExpr{})
	register(CategoryExpression, "binary-expr", &ast.BinaryExpr{})
	register(CategoryExpression, "key-value-expr", &ast.KeyValueExpr{})
	register(CategoryExpression, "array-type", &ast.ArrayType{})
	register(CategoryExpression, "struct-type", &ast.StructType{})
	register(CategoryExpression, "func-type", &ast.FuncType{})
	register(CategoryExpression, "interface-type", &ast.InterfaceType{})
	register(CategoryExpression, "map-type", &ast.MapType{})
	register(CategoryExpression, "chan-type", &ast.ChanType{})
	register(CategoryExpression, "ellipsis", &ast.Ellipsis{})
}

// Of returns the Kind for a concrete host node, or Invalid if n is nil or
// unrecognized.
func Of(n ast.Node) Kind {
	if n == nil || reflect.ValueOf(n).IsNil() {
		return Invalid
	}
	if k, ok := kindTable[reflect.TypeOf(n)]; ok {
		return k
	}
	return Kind{Category: CategoryOther, name: fmt.Sprintf("other(%T)", n), goType: reflect.TypeOf(n)}
}

// IsDeclarationLike reports whether n is a declaration-context node whose
// children (per §4.2) are the declarations it introduces: a *ast.File, a
// *ast.GenDecl (grouped const/var/type/import), or a *ast.TypeSpec naming
// a struct/interface (a "class-like" declaration in the spec's terms).
func IsDeclarationLike(n ast.Node) bool {
	switch x := n.(type) {
	case *ast.File, *ast.GenDecl:
		return true
	case *ast.TypeSpec:
		switch x.Type.(type) {
		case *ast.StructType, *ast.InterfaceType:
			return true
		}
	}
	return false
}
