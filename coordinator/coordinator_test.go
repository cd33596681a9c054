// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coordinator

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"srcx.dev/xform/astview"
	"srcx.dev/xform/compare"
	"srcx.dev/xform/corpus"
	"srcx.dev/xform/matcher"
	"srcx.dev/xform/rhs"
	"srcx.dev/xform/srcrange"
	"srcx.dev/xform/template"

	"go/ast"
	"go/parser"
	"go/token"
)

func srcrangeOf(fset *token.FileSet, n ast.Node) srcrange.Range {
	return srcrange.FromPosPair(fset, n.Pos(), n.End())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestProcessUnitRewritesMatch(t *testing.T) {
	dir := t.TempDir()
	src := "package p\n\nfunc f() {\n\tif a == true {\n\t\tg()\n\t} else {\n\t\th()\n\t}\n}\n"
	path := writeFile(t, dir, "x.go", src)

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ifStmt := f.Decls[0].(*ast.FuncDecl).Body.List[0].(*ast.IfStmt)
	tmplRoots := []*astview.NodeView{astview.Wrap(fset, ifStmt)}
	tmplRange := srcrangeOf(fset, ifStmt)

	cond := ifStmt.Cond.(*ast.BinaryExpr)
	loc := template.Location{
		Metavariable: template.Metavariable{Identifier: "cond"},
		Range:        srcrangeOf(fset, cond.X),
	}
	tpl, err := template.Extract(tmplRoots, tmplRange, []template.Location{loc})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	m := matcher.New(compare.New(nil, nil))
	parts := rhs.Lex("if ?cond { g() } else { h() }")
	c := New(m, tpl, parts, false)

	unit := &corpus.Unit{Fset: fset, File: f, Path: path}
	changed, outPath, err := c.ProcessUnit(unit)
	if err != nil {
		t.Fatalf("ProcessUnit: %v", err)
	}
	if !changed {
		t.Fatalf("expected the unit to be changed")
	}
	if outPath == path {
		t.Errorf("expected a non-overwriting output path, got the original %s", outPath)
	}
	t.Cleanup(func() { os.Remove(outPath) })
	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(out) == 0 {
		t.Errorf("expected non-empty rewritten output")
	}
}

func moduleRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	return filepath.Dir(filepath.Dir(thisFile))
}

// TestProcessUnitMatchesAcrossCorpusFiles extracts a template from the
// testcorpus's alpha.go and applies it to a different file, beta.go, whose
// matching statement bodies have entirely different literal content —
// exercising cross-file matching via a real corpus.Load and the variadic
// binding of a statement's whole body rather than a single expression.
func TestProcessUnitMatchesAcrossCorpusFiles(t *testing.T) {
	root := moduleRoot(t)
	cp, err := corpus.Load(root, "srcx.dev/xform/internal/testcorpus")
	if err != nil {
		t.Fatalf("corpus.Load: %v", err)
	}

	var alpha, beta *corpus.Unit
	for _, u := range cp.Units {
		switch filepath.Base(u.Path) {
		case "alpha.go":
			alpha = u
		case "beta.go":
			beta = u
		}
	}
	if alpha == nil || beta == nil {
		t.Fatalf("expected both alpha.go and beta.go among loaded units, got %d units", len(cp.Units))
	}

	var ifStmt *ast.IfStmt
	ast.Inspect(alpha.File, func(n ast.Node) bool {
		fd, ok := n.(*ast.FuncDecl)
		if ok && fd.Name.Name == "reportStatus" {
			ifStmt = fd.Body.List[0].(*ast.IfStmt)
			return false
		}
		return true
	})
	if ifStmt == nil {
		t.Fatalf("reportStatus's if statement not found in alpha.go")
	}
	cond := ifStmt.Cond.(*ast.BinaryExpr)
	thenStmt := ifStmt.Body.List[0]
	elseStmt := ifStmt.Else.(*ast.BlockStmt).List[0]

	tmplRoots := []*astview.NodeView{astview.Wrap(alpha.Fset, ifStmt)}
	locs := []template.Location{
		{Metavariable: template.Metavariable{Identifier: "cond"}, Range: srcrangeOf(alpha.Fset, cond.X)},
		{Metavariable: template.Metavariable{Identifier: "thenBody"}, Range: srcrangeOf(alpha.Fset, thenStmt)},
		{Metavariable: template.Metavariable{Identifier: "elseBody"}, Range: srcrangeOf(alpha.Fset, elseStmt)},
	}
	tpl, err := template.Extract(tmplRoots, srcrangeOf(alpha.Fset, ifStmt), locs)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	cmp := compare.New(alpha.Info, beta.Info)
	m := matcher.New(cmp)
	parts := rhs.Lex("if ?cond {\n\t?thenBody\n} else {\n\t?elseBody\n}")
	c := New(m, tpl, parts, false)

	changed, outPath, err := c.ProcessUnit(beta)
	if err != nil {
		t.Fatalf("ProcessUnit: %v", err)
	}
	if !changed {
		t.Fatalf("expected beta.go's structurally similar if statement to match")
	}
	if outPath == beta.Path {
		t.Errorf("expected a non-overwriting output path, got the original %s", outPath)
	}
	t.Cleanup(func() { os.Remove(outPath) })
	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(out) == 0 {
		t.Errorf("expected non-empty rewritten output")
	}
}
