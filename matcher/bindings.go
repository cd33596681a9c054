// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcher

import (
	"srcx.dev/xform/astview"
	"srcx.dev/xform/compare"
	"srcx.dev/xform/template"
)

// A Binding is the sequence of nodes captured for one metavariable: a
// single node for a name_only binding, or an ordered run of sibling nodes
// for a variadic one (possibly empty, per the zero-arity open question).
type Binding struct {
	Metavariable template.Metavariable
	Nodes        []*astview.NodeView
}

// Bindings maps a metavariable's identifier to its Binding. Once inserted
// for a given identifier within one PartialMatch, a Binding is immutable
// (§3): later insertions for the same identifier only ever succeed if
// structurally equal to the first.
type Bindings map[string]Binding

func (b Bindings) clone() Bindings {
	nb := make(Bindings, len(b)+1)
	for k, v := range b {
		nb[k] = v
	}
	return nb
}

// insertBinding implements the two "binding consistency" rules of §4.4: a
// fresh binding is always accepted; a repeated binding for the same
// metavariable is accepted only if structurally equal (comparator with
// name_only=false) to the one already recorded.
func insertBinding(b Bindings, mv template.Metavariable, nodes []*astview.NodeView, cmp *compare.Comparator) (Bindings, bool) {
	if existing, ok := b[mv.Identifier]; ok {
		if !sequencesEqual(cmp, existing.Nodes, nodes) {
			return nil, false
		}
		return b, true
	}
	nb := b.clone()
	nb[mv.Identifier] = Binding{Metavariable: mv, Nodes: nodes}
	return nb, true
}

// nodeEqual recursively compares two nodes and their normalised children,
// used where the specification calls for full structural equality rather
// than the comparator's single-level predicate (§4.4 binding consistency).
func nodeEqual(cmp *compare.Comparator, a, b *astview.NodeView) bool {
	if a.Same(b) {
		return true
	}
	if !cmp.Compare(a, b, false) {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !nodeEqual(cmp, ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func sequencesEqual(cmp *compare.Comparator, a, b []*astview.NodeView) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodeEqual(cmp, a[i], b[i]) {
			return false
		}
	}
	return true
}
