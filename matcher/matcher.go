// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcher

import (
	"go/token"

	"srcx.dev/xform/astview"
	"srcx.dev/xform/compare"
	"srcx.dev/xform/srcrange"
	"srcx.dev/xform/template"
)

// A Matcher runs the synchronised template/candidate walk of §4.4. It holds
// no per-run state, so a single Matcher may drive many independent Match
// calls; per §5, a host that wants concurrency runs one Matcher per input
// unit rather than sharing one across goroutines.
type Matcher struct {
	Comparator *compare.Comparator
}

// New builds a Matcher backed by cmp for its structural comparisons.
func New(cmp *compare.Comparator) *Matcher {
	return &Matcher{Comparator: cmp}
}

// A MatchResult is a completed match: the top-level candidate nodes it
// spans, the bindings captured along the way, and the union source range,
// per §3.
type MatchResult struct {
	Roots    []*astview.NodeView
	Bindings Bindings
	Range    srcrange.Range
}

// Match finds every non-overlapping occurrence of tpl within unitRoots,
// the top-level node list of one input unit (e.g. a file's declarations),
// honoring isMain for the candidate-discovery restriction to non-header
// files. Results are delivered in source-ascending order after overlap
// resolution (§4.4, §5); the second return value names every match that
// overlap resolution discarded, paired with the match it lost to, so the
// caller can report an OverlapDiscarded diagnostic for each.
func (m *Matcher) Match(fset *token.FileSet, tpl *template.LHSTemplate, unitRoots []*astview.NodeView, isMain IsMainFile) ([]MatchResult, []OverlapConflict) {
	if len(tpl.Subtrees) == 0 {
		return nil, nil
	}
	firstKind := tpl.Subtrees[0].Node().Kind()

	var results []MatchResult
	for _, root := range DiscoverCandidateRoots(fset, unitRoots, firstKind, isMain) {
		for _, pm := range m.run(tpl, root) {
			results = append(results, MatchResult{
				Roots:    pm.Roots,
				Bindings: pm.Bindings,
				Range:    rangeOfRoots(pm.Roots),
			})
		}
	}
	return ResolveOverlaps(results)
}

// run drives one synchronised walk of tpl's subtrees against the children
// of candidateRoot, returning every PartialMatch that survives to
// completion.
func (m *Matcher) run(tpl *template.LHSTemplate, candidateRoot *astview.NodeView) []PartialMatch {
	templateCursor := NewCursor(tpl.Subtrees)
	live := []PartialMatch{newPartialMatch(candidateRoot.Children())}

	for !templateCursor.Done() {
		if len(live) == 0 {
			return nil
		}

		if templateCursor.ChildrenAccessed() {
			atLast := templateCursor.AtLastChild()
			live = filterByLastChild(live, atLast)
			if atLast {
				templateCursor = templateCursor.Popped()
				live = popAll(live)
			} else {
				templateCursor = templateCursor.Advanced()
				live = advanceAll(live)
			}
			continue
		}

		curT := templateCursor.Current()
		mv, isMV := tpl.MetavariableOf(curT)

		switch {
		case isMV && mv.NameOnly:
			live = m.filterNameOnly(live, curT, mv)
			templateCursor, live = m.descendOrAdvance(templateCursor, curT, live)

		case isMV:
			run := runLength(templateCursor, tpl, mv)
			newIdx := templateCursor.Index() + run
			consumeAll := newIdx >= len(templateCursor.Siblings())
			live = m.forkVariadic(live, mv, consumeAll)
			if consumeAll {
				templateCursor = templateCursor.Popped()
			} else {
				templateCursor = templateCursor.AtIndex(newIdx)
			}

		default:
			live = m.filterPlain(live, curT)
			templateCursor, live = m.descendOrAdvance(templateCursor, curT, live)
		}
	}

	return live
}

// descendOrAdvance implements the shared tail of the "plain node" and
// "name_only fallthrough" rules of §4.4: descend into children if curT has
// any, otherwise pop or advance exactly like the "returning from children"
// step would for a childless node.
func (m *Matcher) descendOrAdvance(templateCursor Cursor, curT *astview.NodeView, live []PartialMatch) (Cursor, []PartialMatch) {
	if curT.HasChildren() {
		templateCursor = templateCursor.WithChildrenAccessed().Descended(curT.Children())
		for i := range live {
			cur := live[i].Cursor.Current()
			var children []*astview.NodeView
			if cur != nil {
				children = cur.Children()
			}
			live[i].Cursor = live[i].Cursor.WithChildrenAccessed().Descended(children)
		}
		return templateCursor, live
	}
	if templateCursor.AtLastChild() {
		return templateCursor.Popped(), popAll(live)
	}
	return templateCursor.Advanced(), advanceAll(live)
}

func (m *Matcher) filterPlain(live []PartialMatch, curT *astview.NodeView) []PartialMatch {
	var out []PartialMatch
	for _, pm := range live {
		curC := pm.Cursor.Current()
		if curC == nil {
			continue
		}
		if m.Comparator.Compare(curT, curC, false) {
			out = append(out, pm)
		}
	}
	return out
}

func (m *Matcher) filterNameOnly(live []PartialMatch, curT *astview.NodeView, mv template.Metavariable) []PartialMatch {
	var out []PartialMatch
	for _, pm := range live {
		curC := pm.Cursor.Current()
		if curC == nil {
			continue
		}
		if !m.Comparator.Compare(curT, curC, true) {
			continue
		}
		nb, ok := insertBinding(pm.Bindings, mv, []*astview.NodeView{curC}, m.Comparator)
		if !ok {
			continue
		}
		out = append(out, PartialMatch{Cursor: pm.Cursor, Bindings: nb, Roots: pm.Roots})
	}
	return out
}

// forkVariadic implements variadic forking and repetition (§4.4). When
// consumeAll is true the template's run reaches the end of its sibling
// list, so every fork must consume exactly its candidate's remaining
// siblings to stay in lockstep; otherwise every prefix width, including
// zero, is tried.
func (m *Matcher) forkVariadic(live []PartialMatch, mv template.Metavariable, consumeAll bool) []PartialMatch {
	var out []PartialMatch
	for _, pm := range live {
		siblings := pm.Cursor.Siblings()
		idx := pm.Cursor.Index()
		if idx < 0 {
			continue
		}
		remaining := len(siblings) - idx
		if remaining < 0 {
			continue
		}

		tryWidth := func(w int) {
			nodes := append([]*astview.NodeView(nil), siblings[idx:idx+w]...)
			nb, ok := insertBinding(pm.Bindings, mv, nodes, m.Comparator)
			if !ok {
				return
			}
			var newCursor Cursor
			if idx+w >= len(siblings) {
				newCursor = pm.Cursor.Popped()
			} else {
				newCursor = pm.Cursor.AtIndex(idx + w)
			}
			out = append(out, PartialMatch{Cursor: newCursor, Bindings: nb, Roots: pm.Roots})
		}

		if consumeAll {
			tryWidth(remaining)
			continue
		}
		for w := 0; w <= remaining; w++ {
			tryWidth(w)
		}
	}
	return out
}

// runLength counts the contiguous run of template siblings, starting at
// tc's current position, that all share mv's identifier (§4.4: "advance
// the template cursor past the entire contiguous run of sibling template
// nodes that share M's identifier").
func runLength(tc Cursor, tpl *template.LHSTemplate, mv template.Metavariable) int {
	siblings := tc.Siblings()
	idx := tc.Index()
	n := 0
	for i := idx; i < len(siblings); i++ {
		m, ok := tpl.MetavariableOf(siblings[i])
		if !ok || m.Identifier != mv.Identifier {
			break
		}
		n++
	}
	if n == 0 {
		n = 1 // the metavariable's own node always counts.
	}
	return n
}

func filterByLastChild(live []PartialMatch, wantLast bool) []PartialMatch {
	var out []PartialMatch
	for _, pm := range live {
		if pm.Cursor.Done() {
			continue
		}
		if pm.Cursor.AtLastChild() == wantLast {
			out = append(out, pm)
		}
	}
	return out
}

func popAll(live []PartialMatch) []PartialMatch {
	for i := range live {
		live[i].Cursor = live[i].Cursor.Popped()
	}
	return live
}

func advanceAll(live []PartialMatch) []PartialMatch {
	for i := range live {
		live[i].Cursor = live[i].Cursor.Advanced()
	}
	return live
}

func rangeOfRoots(roots []*astview.NodeView) srcrange.Range {
	if len(roots) == 0 {
		return srcrange.NoRange
	}
	first := roots[0].Node().Range()
	last := roots[len(roots)-1].Node().Range()
	return srcrange.Range{Begin: first.Begin, End: last.End}
}
