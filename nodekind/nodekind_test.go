// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodekind

import (
	"go/ast"
	"testing"
)

func TestOfDistinguishesKinds(t *testing.T) {
	ifK := Of(&ast.IfStmt{})
	forK := Of(&ast.ForStmt{})
	if ifK.IsSame(forK) {
		t.Errorf("if-stmt and for-stmt should not be the same kind")
	}
	if !ifK.IsSame(Of(&ast.IfStmt{})) {
		t.Errorf("two if-stmt kinds should be the same")
	}
}

func TestIsBaseOfCategoryRoot(t *testing.T) {
	bin := Of(&ast.BinaryExpr{})
	if !AnyExpression.IsBaseOf(bin) {
		t.Errorf("AnyExpression should be a base of binary-expr")
	}
	if AnyStatement.IsBaseOf(bin) {
		t.Errorf("AnyStatement should not be a base of an expression kind")
	}
}

func TestInvalidKind(t *testing.T) {
	var nilExpr ast.Expr
	if Of(nilExpr) != Invalid {
		t.Errorf("Of(nil) should be Invalid")
	}
}

func TestIsDeclarationLike(t *testing.T) {
	if !IsDeclarationLike(&ast.GenDecl{}) {
		t.Errorf("GenDecl should be declaration-like")
	}
	if IsDeclarationLike(&ast.IfStmt{}) {
		t.Errorf("IfStmt should not be declaration-like")
	}
	if !IsDeclarationLike(&ast.TypeSpec{Type: &ast.StructType{}}) {
		t.Errorf("a struct TypeSpec should be declaration-like")
	}
	if IsDeclarationLike(&ast.TypeSpec{Type: &ast.Ident{Name: "int"}}) {
		t.Errorf("an alias TypeSpec should not be declaration-like")
	}
}
