// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compare implements the pair-wise NodeComparator described in
// §4.3: a structural predicate over two AST nodes, dispatched by node
// category, with an optional name_only relaxation for declarations. It
// never recurses into children — the matcher package owns recursion.
//
// The dispatch mirrors the teacher's matchExpr/matchStmt/identical switch
// in rsc.io/rf's match.go, generalized from "wildcard vs concrete" matching
// to "two arbitrary nodes, optionally name-relaxed".
package compare

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"reflect"

	"srcx.dev/xform/astview"
)

// A Comparator compares nodes drawn from two (possibly identical) type-
// checked units: the template's and a candidate's. Declaration-reference
// and member-access rules resolve through the corresponding types.Info,
// exactly as the teacher's matcher resolves references through infoX/infoY.
type Comparator struct {
	TemplateInfo  *types.Info
	CandidateInfo *types.Info
}

// New builds a Comparator. Passing the same *types.Info for both template
// and candidate is correct and common: the LHS template is usually
// extracted from a file that is itself part of the corpus being searched.
func New(templateInfo, candidateInfo *types.Info) *Comparator {
	return &Comparator{TemplateInfo: templateInfo, CandidateInfo: candidateInfo}
}

// Compare reports whether template and candidate are structurally equal
// under the rules of §4.3. It is not recursive: callers (the Matcher) drive
// recursion into NodeView.Children.
func (c *Comparator) Compare(template, candidate *astview.NodeView, nameOnly bool) bool {
	tn, cn := template.Node(), candidate.Node()

	// Rule 1: empty/virtual-empty.
	if tn.IsEmpty() || cn.IsEmpty() {
		return tn.IsEmpty() && cn.IsEmpty()
	}

	// Rule 2: NodeKinds differ.
	tk, ck := tn.Kind(), cn.Kind()
	if !tk.IsSame(ck) {
		return false
	}

	// Virtual, non-empty groups (parameter lists, argument lists, ...)
	// carry no node-local structural facts of their own beyond kind and
	// emptiness; per-element comparison happens via child recursion.
	if tn.IsVirtual() {
		return true
	}

	switch t := tn.Real.(type) {
	// Declarations.
	case *ast.TypeSpec:
		cand := cn.Real.(*ast.TypeSpec)
		if !nameOnly && t.Name.Name != cand.Name.Name {
			return false
		}
		return c.compareTagKind(t.Type, cand.Type)

	case *ast.ValueSpec:
		cand := cn.Real.(*ast.ValueSpec)
		if !nameOnly && !sameNameList(t.Names, cand.Names) {
			return false
		}
		return c.compareDeclaredType(t.Type, cand.Type)

	case *ast.Field:
		cand := cn.Real.(*ast.Field)
		if !nameOnly && !sameNameList(t.Names, cand.Names) {
			return false
		}
		return c.compareDeclaredType(t.Type, cand.Type)

	case *ast.FuncDecl:
		cand := cn.Real.(*ast.FuncDecl)
		if !nameOnly && t.Name.Name != cand.Name.Name {
			return false
		}
		if (t.Recv == nil) != (cand.Recv == nil) {
			return false
		}
		if t.Recv != nil && isPointerReceiver(t.Recv) != isPointerReceiver(cand.Recv) {
			return false
		}
		tr, cr := fieldListResultType(t.Type.Results), fieldListResultType(cand.Type.Results)
		// Under name_only, a result naming a non-predeclared type (T or *T,
		// as a New<Type> constructor returns) matches one naming any other
		// non-predeclared type; predeclared names such as int still compare.
		if ts, ok := tr.(*ast.StarExpr); ok && nameOnly {
			if cs, ok := cr.(*ast.StarExpr); ok {
				tr, cr = ts.X, cs.X
			}
		}
		ti, tok := tr.(*ast.Ident)
		ci, cok := cr.(*ast.Ident)
		if nameOnly && tok && cok && types.Universe.Lookup(ti.Name) == nil && types.Universe.Lookup(ci.Name) == nil {
			return true
		}
		return c.compareDeclaredType(tr, cr)

	case *ast.GenDecl:
		cand := cn.Real.(*ast.GenDecl)
		return t.Tok == cand.Tok

	case *ast.ImportSpec:
		cand := cn.Real.(*ast.ImportSpec)
		tDot := t.Name != nil && t.Name.Name == "."
		cDot := cand.Name != nil && cand.Name.Name == "."
		if tDot || cDot {
			return tDot == cDot && t.Path.Value == cand.Path.Value
		}
		return true

	// Statements / expressions.
	case *ast.BinaryExpr:
		cand := cn.Real.(*ast.BinaryExpr)
		return t.Op == cand.Op

	case *ast.UnaryExpr:
		cand := cn.Real.(*ast.UnaryExpr)
		return t.Op == cand.Op

	case *ast.IncDecStmt:
		cand := cn.Real.(*ast.IncDecStmt)
		return t.Tok == cand.Tok

	case *ast.AssignStmt:
		cand := cn.Real.(*ast.AssignStmt)
		return t.Tok == cand.Tok

	case *ast.BasicLit:
		cand := cn.Real.(*ast.BasicLit)
		return compareBasicLit(t, cand)

	case *ast.Ident:
		cand := cn.Real.(*ast.Ident)
		return c.compareIdent(t, cand, nameOnly)

	case *ast.SelectorExpr:
		cand := cn.Real.(*ast.SelectorExpr)
		return c.compareSelector(t, cand)

	case *ast.SliceExpr:
		cand := cn.Real.(*ast.SliceExpr)
		return t.Slice3 == cand.Slice3

	case *ast.CallExpr:
		cand := cn.Real.(*ast.CallExpr)
		return t.Ellipsis.IsValid() == cand.Ellipsis.IsValid()

	case *ast.CompositeLit:
		cand := cn.Real.(*ast.CompositeLit)
		if (t.Type == nil) != (cand.Type == nil) {
			return false
		}
		if t.Type == nil {
			return true
		}
		return c.compareDeclaredType(t.Type, cand.Type)

	case *ast.BranchStmt:
		cand := cn.Real.(*ast.BranchStmt)
		return t.Tok == cand.Tok
	}

	// All other node kinds: equal, structural check defers to children.
	return true
}

func isPointerReceiver(fl *ast.FieldList) bool {
	if fl == nil || len(fl.List) == 0 {
		return false
	}
	_, ok := fl.List[0].Type.(*ast.StarExpr)
	return ok
}

func sameNameList(a, b []*ast.Ident) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}

func compareBasicLit(t, c *ast.BasicLit) bool {
	if t.Kind != c.Kind {
		return false
	}
	tv := constant.MakeFromLiteral(t.Value, t.Kind, 0)
	cv := constant.MakeFromLiteral(c.Value, c.Kind, 0)
	if tv.Kind() == constant.Unknown || cv.Kind() == constant.Unknown {
		return t.Value == c.Value
	}
	return constant.Compare(tv, token.EQL, cv)
}

// compareIdent implements "Declaration reference: compare referenced
// declarations using this same function, recursively, on the referenced
// declaration only" for the common case where the referenced declaration
// is itself named (so we fall back to a name comparison, honoring
// nameOnly).
func (c *Comparator) compareIdent(t, cand *ast.Ident, nameOnly bool) bool {
	tobj := lookupUse(c.TemplateInfo, t)
	cobj := lookupUse(c.CandidateInfo, cand)
	if tobj != nil && cobj != nil {
		if tobj == cobj {
			return true
		}
		// Different objects: still allow a name_only match if both are
		// declarations abstracted away by the same relaxation.
		if nameOnly {
			return true
		}
		return tobj.Name() == cobj.Name()
	}
	if nameOnly {
		return true
	}
	return t.Name == cand.Name
}

func lookupUse(info *types.Info, id *ast.Ident) types.Object {
	if info == nil || id == nil {
		return nil
	}
	if obj := info.Uses[id]; obj != nil {
		return obj
	}
	return info.Defs[id]
}

// compareSelector implements the "Member access" rule: Go's selector
// expressions have no arrow/dot distinction, so that half of the rule is
// vacuous; the referenced member declaration is compared through
// types.Info.Selections, exactly like the teacher's
// infoX.Selections[x].Obj() == infoY.Selections[y].Obj().
func (c *Comparator) compareSelector(t, cand *ast.SelectorExpr) bool {
	tsel := lookupSelection(c.TemplateInfo, t)
	csel := lookupSelection(c.CandidateInfo, cand)
	if tsel != nil && csel != nil {
		if tsel.Obj() == csel.Obj() {
			return true
		}
		return tsel.Obj() != nil && csel.Obj() != nil && tsel.Obj().Name() == csel.Obj().Name()
	}
	return t.Sel.Name == cand.Sel.Name
}

func lookupSelection(info *types.Info, sel *ast.SelectorExpr) *types.Selection {
	if info == nil {
		return nil
	}
	return info.Selections[sel]
}

// compareTagKind implements "if further a tag declaration, equal tag
// kinds": struct vs interface vs alias.
func (c *Comparator) compareTagKind(t, cand ast.Expr) bool {
	if reflect.TypeOf(t) != reflect.TypeOf(cand) {
		return false
	}
	return c.compareDeclaredType(t, cand)
}

// compareDeclaredType implements the §4.3 "Type equality" rules: purely
// structural, with named types compared by identifier name. It takes no
// name_only flag; the only name_only relaxation of a type is the one the
// *ast.FuncDecl case of Compare applies to a result type before calling it.
// Function types compare only return types, per spec (parameter
// types are handled by traversing parameter declarations as children).
func (c *Comparator) compareDeclaredType(t, cand ast.Expr) bool {
	if t == nil || cand == nil {
		return t == cand
	}
	if reflect.TypeOf(t) != reflect.TypeOf(cand) {
		return false
	}
	switch t := t.(type) {
	case *ast.Ident:
		cand := cand.(*ast.Ident)
		return t.Name == cand.Name
	case *ast.SelectorExpr:
		cand := cand.(*ast.SelectorExpr)
		return c.compareSelector(t, cand)
	case *ast.StarExpr:
		cand := cand.(*ast.StarExpr)
		return c.compareDeclaredType(t.X, cand.X)
	case *ast.ArrayType:
		cand := cand.(*ast.ArrayType)
		if (t.Len == nil) != (cand.Len == nil) {
			return false
		}
		return c.compareDeclaredType(t.Elt, cand.Elt)
	case *ast.MapType:
		cand := cand.(*ast.MapType)
		return c.compareDeclaredType(t.Key, cand.Key) && c.compareDeclaredType(t.Value, cand.Value)
	case *ast.ChanType:
		cand := cand.(*ast.ChanType)
		return t.Dir == cand.Dir && c.compareDeclaredType(t.Value, cand.Value)
	case *ast.FuncType:
		cand := cand.(*ast.FuncType)
		return c.compareDeclaredType(fieldListResultType(t.Results), fieldListResultType(cand.Results))
	case *ast.StructType:
		cand := cand.(*ast.StructType)
		return sameFieldCount(t.Fields, cand.Fields)
	case *ast.InterfaceType:
		cand := cand.(*ast.InterfaceType)
		return sameFieldCount(t.Methods, cand.Methods)
	case *ast.Ellipsis:
		cand := cand.(*ast.Ellipsis)
		return c.compareDeclaredType(t.Elt, cand.Elt)
	}
	return true
}

func sameFieldCount(a, b *ast.FieldList) bool {
	if a == nil || b == nil {
		return a == b
	}
	return len(a.List) == len(b.List)
}

// fieldListResultType collapses a possibly-multi-value result list into a
// single representative type expression for the "equal return types" rule;
// nil (no results) is its own case.
func fieldListResultType(fl *ast.FieldList) ast.Expr {
	if fl == nil || len(fl.List) == 0 {
		return nil
	}
	return fl.List[0].Type
}
