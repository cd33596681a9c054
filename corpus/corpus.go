// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corpus implements the host parser interface consumed by the rest
// of xform (§6): loading a set of packages with golang.org/x/tools/go/packages,
// locating the enclosing module with golang.org/x/mod/modfile, and exposing
// each file's declarations as the ordered NodeView roots the matcher walks.
package corpus

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"srcx.dev/xform/astview"
	"srcx.dev/xform/diagnostics"
	"srcx.dev/xform/srcrange"
)

// A Unit is one loaded, type-checked Go source file: the host-side
// ASTUnit of §6.
type Unit struct {
	Fset    *token.FileSet
	File    *ast.File
	Path    string
	Info    *types.Info
	Package *types.Package
	modRoot string
}

// A Corpus is a loaded set of packages, ready to be searched.
type Corpus struct {
	Fset        *token.FileSet
	Units       []*Unit
	ModRoot     string
	ModulePath  string
	Diagnostics diagnostics.List
}

// Load loads every package matching patterns, rooted at dir, with full
// type information (§6: "per-node typed accessors as required by §4.3").
func Load(dir string, patterns ...string) (*Corpus, error) {
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo | packages.NeedModule,
		Dir:  dir,
		Fset: fset,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("corpus: loading %v: %w", patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("corpus: no packages matched %v in %s", patterns, dir)
	}

	modRoot, modulePath, err := findModuleRoot(dir)
	if err != nil {
		modRoot, modulePath = "", ""
	}

	c := &Corpus{Fset: fset, ModRoot: modRoot, ModulePath: modulePath}
	for _, pkg := range pkgs {
		for _, perr := range pkg.Errors {
			c.Diagnostics.Add(diagnostics.New(diagnostics.ParseFailure, parseErrorFile(perr), srcrange.NoRange, perr.Msg, nil))
		}
		for _, f := range pkg.Syntax {
			pos := fset.Position(f.Pos())
			c.Units = append(c.Units, &Unit{
				Fset:    fset,
				File:    f,
				Path:    pos.Filename,
				Info:    pkg.TypesInfo,
				Package: pkg.Types,
				modRoot: modRoot,
			})
		}
	}
	return c, nil
}

// findModuleRoot walks upward from dir looking for a go.mod, parsing it with
// golang.org/x/mod/modfile to recover the module's own import path alongside
// validating the file. IsWrittenInMainFile uses the returned root to compute
// each candidate file's module-relative path, per the host interface's
// "not a header" rule (§6): a file the go command resolved from outside
// this module root (a dependency pulled in only for type information) is
// never a main file, however it got onto the syntax list.
func findModuleRoot(dir string) (root, modulePath string, err error) {
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for {
		gomod := filepath.Join(dir, "go.mod")
		if data, ferr := os.ReadFile(gomod); ferr == nil {
			mf, perr := modfile.Parse(gomod, data, nil)
			if perr != nil {
				return "", "", fmt.Errorf("corpus: parsing %s: %w", gomod, perr)
			}
			modulePath := ""
			if mf.Module != nil {
				modulePath = mf.Module.Mod.Path
			}
			return dir, modulePath, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", fmt.Errorf("corpus: no go.mod found above %s", dir)
		}
		dir = parent
	}
}

// Roots returns u's top-level NodeView children: the file's declarations,
// the sibling list the matcher's candidate discovery walks (§4.4).
func (u *Unit) Roots() []*astview.NodeView {
	return astview.Wrap(u.Fset, u.File).Children()
}

// IsWrittenInMainFile implements the host interface's is_written_in_main_file:
// a node counts as living in the main file if its position resolves to
// u.Path, that path is not under a vendor/ or testdata/ directory, and its
// module-relative path (computed against the go.mod root modfile located)
// stays inside the module rather than escaping it (the Go analogue of "not
// a header": a file the loader resolved from outside the module root is
// never eligible, however it ended up on a package's syntax list).
func (u *Unit) IsWrittenInMainFile(n *astview.NodeView) bool {
	real := n.Node().Real
	if real == nil {
		return false
	}
	pos := u.Fset.Position(real.Pos())
	if pos.Filename != u.Path {
		return false
	}
	if isVendoredOrGenerated(pos.Filename) {
		return false
	}
	if !u.withinModule(pos.Filename) {
		return false
	}
	return true
}

// withinModule reports whether path's module-relative path (relative to the
// go.mod root modfile located) stays inside the module rather than
// escaping it via "..". A unit with no resolved module root (findModuleRoot
// failed) is treated as unconstrained, matching the pre-module-aware
// behavior for a corpus loaded outside any module.
func (u *Unit) withinModule(path string) bool {
	if u.modRoot == "" {
		return true
	}
	rel, err := filepath.Rel(u.modRoot, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// parseErrorFile extracts the file name from a packages.Error's Pos field
// ("file:line:col", or empty for a whole-package error).
func parseErrorFile(perr packages.Error) string {
	pos := perr.Pos
	if pos == "" {
		return ""
	}
	parts := strings.Split(pos, ":")
	if len(parts) == 0 {
		return pos
	}
	if _, err := strconv.Atoi(parts[len(parts)-1]); err == nil && len(parts) >= 3 {
		return strings.Join(parts[:len(parts)-2], ":")
	}
	return parts[0]
}

func isVendoredOrGenerated(path string) bool {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for _, p := range parts {
		if p == "vendor" || p == "testdata" {
			return true
		}
	}
	return false
}

// Text returns the full source text of u's file.
func (u *Unit) Text() ([]byte, error) {
	return os.ReadFile(u.Path)
}
