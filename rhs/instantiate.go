// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rhs

import (
	"go/token"

	"srcx.dev/xform/astview"
)

// A Binding supplies the ordered sub-trees captured for one metavariable,
// mirroring matcher.Binding without importing the matcher package (the
// rewriter has no need for cursors or comparators).
type Binding struct {
	Nodes []*astview.NodeView
}

// MissingBinding is returned alongside partial output when a metaparameter
// reference names a metavariable absent from bindings (§4.5, §7): the
// caller logs it and continues, per the "recoverable, substitute empty"
// disposition.
type MissingBinding struct {
	Identifier string
}

// Instantiate concatenates parts in order, substituting each
// metaparameter reference with the source text of its bound sub-tree
// sequence (§4.5). src is the full text of the file the bindings' nodes
// were parsed from; fset resolves their positions into byte offsets.
func Instantiate(parts []Part, bindings map[string]Binding, fset *token.FileSet, src []byte) (string, []MissingBinding) {
	var out []byte
	var missing []MissingBinding
	for _, p := range parts {
		switch p.Kind {
		case Literal:
			out = append(out, p.Text...)
		case MetaparamRef:
			b, ok := bindings[p.Text]
			if !ok {
				missing = append(missing, MissingBinding{Identifier: p.Text})
				continue
			}
			if len(b.Nodes) == 0 {
				// A legitimately-bound zero-arity variadic metavariable
				// (§4.4's zero-width fork): contributes empty text, not a
				// diagnostic.
				continue
			}
			out = append(out, captureText(fset, src, b.Nodes)...)
		}
	}
	return string(out), missing
}

// captureText renders the source text spanning a captured sub-tree
// sequence, extended to include a single trailing statement terminator if
// one immediately follows in src (§4.5).
func captureText(fset *token.FileSet, src []byte, nodes []*astview.NodeView) []byte {
	first := nodes[0].Node().Real
	last := nodes[len(nodes)-1].Node().Real
	if first == nil || last == nil {
		return nil
	}
	begin := fset.Position(first.Pos()).Offset
	end := fset.Position(last.End()).Offset
	if begin < 0 || end < 0 || end > len(src) || begin > end {
		return nil
	}
	end = extendTrailingTerminator(src, end)
	return src[begin:end]
}

// extendTrailingTerminator advances end past a single immediately
// following ';', the Go analogue of the spec's "trailing statement
// terminator" extension.
func extendTrailingTerminator(src []byte, end int) int {
	if end < len(src) && src[end] == ';' {
		return end + 1
	}
	return end
}
