// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package template

import (
	"srcx.dev/xform/astview"
	"srcx.dev/xform/srcrange"
)

// An LHSTemplate is the result of extraction: the ordered top-level
// sub-trees spanning the requested source range, and the metavariable bound
// to each annotated node, keyed by NodeView identity (§3).
type LHSTemplate struct {
	Subtrees      []*astview.NodeView
	Metavariables map[uint64]Metavariable
}

// MetavariableOf reports the metavariable bound to n, if any.
func (t *LHSTemplate) MetavariableOf(n *astview.NodeView) (Metavariable, bool) {
	mv, ok := t.Metavariables[n.ID()]
	return mv, ok
}

// Error is the extractor's error taxonomy (§4.1, §7): InvalidRange,
// Overshoot, PartialSpan, MissingMetavariable.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string { return e.Kind + ": " + e.Message }

func newError(kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

var (
	errOvershoot   = newError("Overshoot", "walked past the template range before finding its start")
	errPartialSpan = newError("PartialSpan", "a node's range partially overlaps the requested span without containing it")
)

// Extract implements the TemplateExtractor (§4.1). roots is the ordered
// sibling list to search — typically a file's top-level declarations, or
// the statement list of an enclosing block, chosen by the caller based on
// where template.Begin is known to live. locs must already be sorted by
// SortLocations with OverlapCheck having reported no overlap.
func Extract(roots []*astview.NodeView, tmplRange srcrange.Range, locs []Location) (*LHSTemplate, error) {
	if !tmplRange.Valid() {
		return nil, newError("InvalidRange", "template range is invalid")
	}
	for _, loc := range locs {
		if !loc.Range.Valid() {
			return nil, newError("InvalidRange", "metavariable "+loc.Metavariable.Identifier+" has an invalid range")
		}
		if !tmplRange.Encloses(loc.Range) {
			return nil, newError("InvalidRange", "metavariable "+loc.Metavariable.Identifier+" is not enclosed by the template range")
		}
	}

	subtrees, err := spanNodes(roots, tmplRange)
	if err != nil {
		return nil, err
	}

	metavars := make(map[uint64]Metavariable)
	found := make(map[string]bool)
	for _, loc := range locs {
		matched, err := spanNodes(subtrees, loc.Range)
		if err != nil {
			return nil, err
		}
		for _, n := range matched {
			metavars[n.ID()] = loc.Metavariable
		}
		found[loc.Metavariable.Identifier] = true
	}
	for _, loc := range locs {
		if !found[loc.Metavariable.Identifier] {
			return nil, newError("MissingMetavariable", "metavariable "+loc.Metavariable.Identifier+" was declared but never located")
		}
	}

	applyImplicitParameterization(subtrees, metavars)

	return &LHSTemplate{Subtrees: subtrees, Metavariables: metavars}, nil
}

// spanNodes implements the document-order walk of §4.1 steps 1-6, applied
// generically both to locate the template's own span within roots and,
// recursively, to locate a single metavariable's span within a template
// sub-tree's descendants.
func spanNodes(nodes []*astview.NodeView, target srcrange.Range) ([]*astview.NodeView, error) {
	for i, n := range nodes {
		r := n.Node().Range()

		if r.End.Less(target.Begin) {
			continue // ends strictly before target: not reached yet
		}
		if target.End.Less(r.Begin) {
			return nil, errOvershoot
		}
		if r.Begin == target.Begin {
			if r.End == target.End {
				return []*astview.NodeView{n}, nil
			}
			if target.End.Less(r.End) {
				// n encloses target sharing its left boundary: a single
				// sibling can never be the match, so look inside n rather
				// than failing outright (e.g. a binary expression's first
				// operand shares its begin with the whole expression).
				children := n.Children()
				if len(children) == 0 {
					return nil, errPartialSpan
				}
				return spanNodes(children, target)
			}
			return buildRun(nodes, i, target)
		}
		if r.Begin.Less(target.Begin) {
			if target.Begin.Less(r.End) {
				children := n.Children()
				if len(children) == 0 {
					return nil, errPartialSpan
				}
				return spanNodes(children, target)
			}
			return nil, errPartialSpan
		}
		// r.Begin is strictly past target.Begin but not past target.End:
		// a partial overlap without containment.
		return nil, errPartialSpan
	}
	return nil, errPartialSpan
}

// buildRun enrolls consecutive siblings starting at index start as the
// sub-trees spanning target, per §4.1 step 3.
func buildRun(nodes []*astview.NodeView, start int, target srcrange.Range) ([]*astview.NodeView, error) {
	var run []*astview.NodeView
	for i := start; i < len(nodes); i++ {
		n := nodes[i]
		r := n.Node().Range()
		if target.End.Less(r.End) {
			return nil, errPartialSpan
		}
		run = append(run, n)
		if r.End == target.End {
			return run, nil
		}
	}
	return nil, errPartialSpan
}
