// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astview

import (
	"go/parser"
	"go/token"
	"testing"
)

func parseFunc(t *testing.T, src string) (*token.FileSet, *NodeView) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "x.go", "package p\n"+src, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return fset, Wrap(fset, f.Decls[0])
}

func TestBlockChildrenOrder(t *testing.T) {
	_, fn := parseFunc(t, `func f() { a(); b(); c() }`)
	children := fn.Children()
	if len(children) != 2 {
		t.Fatalf("FuncDecl should have 2 children (params, body), got %d", len(children))
	}
	body := children[1]
	stmts := body.Children()
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements in body, got %d", len(stmts))
	}
}

func TestIfStmtOptionalElse(t *testing.T) {
	_, fn := parseFunc(t, `func f() { if a == true { g() } else { h() } }`)
	body := fn.Children()[1]
	ifStmt := body.Children()[0]
	children := ifStmt.Children()
	if len(children) != 4 {
		t.Fatalf("if-stmt should have 4 children (init, cond, body, else), got %d", len(children))
	}
	if !children[0].Node().IsEmpty() {
		t.Errorf("if-stmt with no init should have an empty init child")
	}
	if children[3].Node().IsEmpty() {
		t.Errorf("if-stmt with an else clause should not have an empty else child")
	}
}

func TestIfStmtWithoutElse(t *testing.T) {
	_, fn := parseFunc(t, `func f() { if a == true { g() } }`)
	body := fn.Children()[1]
	ifStmt := body.Children()[0]
	children := ifStmt.Children()
	if !children[3].Node().IsEmpty() {
		t.Errorf("if-stmt without else should have an empty else child")
	}
}

func TestChildrenMemoised(t *testing.T) {
	_, fn := parseFunc(t, `func f() { a() }`)
	c1 := fn.Children()
	c2 := fn.Children()
	if len(c1) != len(c2) {
		t.Fatalf("children length changed across calls")
	}
	for i := range c1 {
		if !c1[i].Same(c2[i]) {
			t.Errorf("children(children(n)) != children(n) at index %d", i)
		}
	}
}

func TestNodeViewIdentityUnique(t *testing.T) {
	_, fn := parseFunc(t, `func f() { a(); b() }`)
	body := fn.Children()[1]
	stmts := body.Children()
	if stmts[0].Same(stmts[1]) {
		t.Errorf("distinct statements should have distinct identities")
	}
}

func TestPrefixGroupWidths(t *testing.T) {
	_, fn := parseFunc(t, `func f() { a(); b(); c() }`)
	body := fn.Children()[1]
	stmts := body.Children()
	for width := 0; width <= len(stmts); width++ {
		g := PrefixGroup(fn.Node().Fset(), stmts, 0, width)
		if len(g.Children()) != width {
			t.Errorf("PrefixGroup width %d produced %d children", width, len(g.Children()))
		}
	}
}
