// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"srcx.dev/xform/astview"
)

func checkFile(t *testing.T, src string) (*token.FileSet, *ast.File, *types.Info) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "x.go", src, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	info := &types.Info{
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
	}
	conf := types.Config{Importer: importer.Default(), Error: func(error) {}}
	conf.Check("x", fset, []*ast.File{f}, info)
	return fset, f, info
}

func funcBody(f *ast.File, name string) *ast.BlockStmt {
	for _, d := range f.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok && fd.Name.Name == name {
			return fd.Body
		}
	}
	return nil
}

func TestCompareBinaryOp(t *testing.T) {
	fset, f, info := checkFile(t, `package p
func f() { _ = 1 + 2 }
func g() { _ = 1 - 2 }
func h() { _ = 3 + 4 }
`)
	c := New(info, info)
	add1 := funcBody(f, "f").List[0].(*ast.AssignStmt).Rhs[0]
	sub := funcBody(f, "g").List[0].(*ast.AssignStmt).Rhs[0]
	add2 := funcBody(f, "h").List[0].(*ast.AssignStmt).Rhs[0]

	va, vs, vb := astview.Wrap(fset, add1), astview.Wrap(fset, sub), astview.Wrap(fset, add2)
	if c.Compare(va, vs, false) {
		t.Errorf("+ and - should not compare equal")
	}
	if !c.Compare(va, vb, false) {
		t.Errorf("two + expressions should compare equal regardless of operands")
	}
}

func TestCompareBasicLitValue(t *testing.T) {
	fset, f, info := checkFile(t, `package p
func f() { _ = 10 }
func g() { _ = 0xA }
func h() { _ = 11 }
`)
	c := New(info, info)
	ten := funcBody(f, "f").List[0].(*ast.AssignStmt).Rhs[0]
	hexTen := funcBody(f, "g").List[0].(*ast.AssignStmt).Rhs[0]
	eleven := funcBody(f, "h").List[0].(*ast.AssignStmt).Rhs[0]

	v10, vHex, v11 := astview.Wrap(fset, ten), astview.Wrap(fset, hexTen), astview.Wrap(fset, eleven)
	if !c.Compare(v10, vHex, false) {
		t.Errorf("10 and 0xA denote the same value and should compare equal")
	}
	if c.Compare(v10, v11, false) {
		t.Errorf("10 and 11 should not compare equal")
	}
}

func TestCompareIdentNameOnly(t *testing.T) {
	fset, f, info := checkFile(t, `package p
func f() { x := 1; _ = x }
func g() { y := 1; _ = y }
`)
	c := New(info, info)
	fAssign := funcBody(f, "f").List[0].(*ast.AssignStmt)
	gAssign := funcBody(f, "g").List[0].(*ast.AssignStmt)
	fx := fAssign.Lhs[0]
	gy := gAssign.Lhs[0]

	vx, vy := astview.Wrap(fset, fx), astview.Wrap(fset, gy)
	if c.Compare(vx, vy, false) {
		t.Errorf("distinct local declarations named x and y should not compare equal without name_only")
	}
	if !c.Compare(vx, vy, true) {
		t.Errorf("name_only comparison should relax distinct declarations")
	}
}

func TestCompareEmptyNodes(t *testing.T) {
	fset, f, _ := checkFile(t, `package p
func f() { if true { g() } }
func g() { if true { h() } else { h() } }
func h() {}
`)
	_ = f
	ifNoElse := funcBody(f, "f").List[0].(*ast.IfStmt)
	ifWithElse := funcBody(f, "g").List[0].(*ast.IfStmt)

	c := New(nil, nil)
	noElseView := astview.Wrap(fset, ifNoElse).Children()[3]
	withElseView := astview.Wrap(fset, ifWithElse).Children()[3]
	if c.Compare(noElseView, withElseView, false) {
		t.Errorf("absent else should not compare equal to a present else")
	}
	if !c.Compare(noElseView, noElseView, false) {
		t.Errorf("an empty node should compare equal to itself")
	}
}

func TestCompareSelector(t *testing.T) {
	fset, f, info := checkFile(t, `package p
import "strings"
func f() { _ = strings.ToUpper("a") }
func g() { _ = strings.ToLower("a") }
func h() { _ = strings.ToUpper("b") }
`)
	c := New(info, info)
	upper1 := funcBody(f, "f").List[0].(*ast.AssignStmt).Rhs[0].(*ast.CallExpr).Fun.(*ast.SelectorExpr)
	lower := funcBody(f, "g").List[0].(*ast.AssignStmt).Rhs[0].(*ast.CallExpr).Fun.(*ast.SelectorExpr)
	upper2 := funcBody(f, "h").List[0].(*ast.AssignStmt).Rhs[0].(*ast.CallExpr).Fun.(*ast.SelectorExpr)

	vu1, vl, vu2 := astview.Wrap(fset, upper1), astview.Wrap(fset, lower), astview.Wrap(fset, upper2)
	if c.Compare(vu1, vl, false) {
		t.Errorf("ToUpper and ToLower should not compare equal")
	}
	if !c.Compare(vu1, vu2, false) {
		t.Errorf("two ToUpper selectors should compare equal regardless of arguments")
	}
}

func TestCompareFuncDeclReturnType(t *testing.T) {
	fset, f, _ := checkFile(t, `package p
func f() int { return 0 }
func g() string { return "" }
func h() int { return 1 }
`)
	c := New(nil, nil)
	declOf := func(name string) *ast.FuncDecl {
		for _, d := range f.Decls {
			if fd, ok := d.(*ast.FuncDecl); ok && fd.Name.Name == name {
				return fd
			}
		}
		return nil
	}
	vf, vg, vh := astview.Wrap(fset, declOf("f")), astview.Wrap(fset, declOf("g")), astview.Wrap(fset, declOf("h"))
	if c.Compare(vf, vg, true) {
		t.Errorf("int and string return types should not compare equal, even name_only")
	}
	if !c.Compare(vf, vh, true) {
		t.Errorf("two int-returning funcs should compare equal under name_only")
	}
}

func TestCompareGenDeclTok(t *testing.T) {
	fset, f, _ := checkFile(t, `package p
var x = 1
const y = 1
`)
	c := New(nil, nil)
	varDecl := f.Decls[0].(*ast.GenDecl)
	constDecl := f.Decls[1].(*ast.GenDecl)
	vv, vc := astview.Wrap(fset, varDecl), astview.Wrap(fset, constDecl)
	if c.Compare(vv, vc, false) {
		t.Errorf("var and const declarations should not compare equal")
	}
	if !c.Compare(vv, vv, false) {
		t.Errorf("a var declaration should compare equal to itself")
	}
}
