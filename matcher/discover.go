// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcher

import (
	"go/token"

	"srcx.dev/xform/astview"
	"srcx.dev/xform/nodekind"
)

// IsMainFile reports whether n's node lives in a file the run should treat
// as a candidate source, the Go analogue of §4.4's "main (non-header)
// file" restriction. Hosts typically exclude vendored or generated files.
type IsMainFile func(n *astview.NodeView) bool

// DiscoverCandidateRoots implements the §4.4 candidate discovery rule: for
// every statement/declaration node in a main file whose kind matches
// firstKind, enumerate every prefix-terminated slice of its sibling list
// that begins there, each becoming one seed for the matcher.
func DiscoverCandidateRoots(fset *token.FileSet, unitRoots []*astview.NodeView, firstKind nodekind.Kind, isMain IsMainFile) []*astview.NodeView {
	var out []*astview.NodeView
	var walk func(siblings []*astview.NodeView)
	walk = func(siblings []*astview.NodeView) {
		for i, n := range siblings {
			if isMain(n) && !n.Node().IsVirtual() && n.Node().Kind().IsSame(firstKind) {
				for width := 1; i+width <= len(siblings); width++ {
					out = append(out, astview.PrefixGroup(fset, siblings, i, width))
				}
			}
			walk(n.Children())
		}
	}
	walk(unitRoots)
	return out
}
