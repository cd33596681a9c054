// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcher

import "srcx.dev/xform/astview"

// A PartialMatch is a traversal cursor over one candidate region together
// with the bindings accumulated so far. Roots is fixed at seeding time: the
// top-level candidate nodes the walk is trying to align with the template
// (§3).
type PartialMatch struct {
	Cursor   Cursor
	Bindings Bindings
	Roots    []*astview.NodeView
}

func newPartialMatch(roots []*astview.NodeView) PartialMatch {
	return PartialMatch{
		Cursor:   NewCursor(roots),
		Bindings: Bindings{},
		Roots:    roots,
	}
}
