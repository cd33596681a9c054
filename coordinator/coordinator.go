// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coordinator implements the MatchCoordinator described in §4.6:
// for each input unit, run the Matcher, instantiate the Rewriter's
// replacement text for every result, splice the replacements into the
// original source with editbuf, gofmt the result the way the teacher's
// Snapshot.Gofmt does, and write it out either alongside the original
// (default) or in place (opt-in).
package coordinator

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"srcx.dev/xform/corpus"
	"srcx.dev/xform/diagnostics"
	"srcx.dev/xform/editbuf"
	"srcx.dev/xform/matcher"
	"srcx.dev/xform/rhs"
	"srcx.dev/xform/template"
)

// A Coordinator drives one transform run across a corpus.
type Coordinator struct {
	Matcher              *matcher.Matcher
	Template             *template.LHSTemplate
	RHSParts             []rhs.Part
	OverwriteSourceFiles bool
	Diagnostics          *diagnostics.List
}

// New builds a Coordinator ready to process units.
func New(m *matcher.Matcher, tpl *template.LHSTemplate, rhsParts []rhs.Part, overwrite bool) *Coordinator {
	return &Coordinator{
		Matcher:              m,
		Template:             tpl,
		RHSParts:             rhsParts,
		OverwriteSourceFiles: overwrite,
		Diagnostics:          &diagnostics.List{},
	}
}

// ProcessUnit implements §4.6 for a single input unit: match, rewrite,
// splice, format, and write. It returns whether the unit's output was
// changed, and the path written to.
func (c *Coordinator) ProcessUnit(u *corpus.Unit) (changed bool, outPath string, err error) {
	src, err := u.Text()
	if err != nil {
		return false, "", fmt.Errorf("coordinator: reading %s: %w", u.Path, err)
	}

	results, conflicts := c.Matcher.Match(u.Fset, c.Template, u.Roots(), u.IsWrittenInMainFile)
	for _, oc := range conflicts {
		c.Diagnostics.Add(diagnostics.New(diagnostics.OverlapDiscarded, u.Path, oc.Discarded.Range,
			fmt.Sprintf("match at %s overlaps and was discarded in favor of the match kept at %s", oc.Discarded.Range, oc.Kept.Range), nil))
	}
	if len(results) == 0 {
		return false, u.Path, nil
	}

	buf := editbuf.New(src)
	for _, r := range results {
		text, missing := rhs.Instantiate(c.RHSParts, toRHSBindings(r.Bindings), u.Fset, src)
		for _, mb := range missing {
			c.Diagnostics.Add(diagnostics.New(diagnostics.MissingBinding, u.Path, r.Range,
				fmt.Sprintf("metavariable %q has no binding in this match", mb.Identifier), nil))
		}
		begin := u.Fset.Position(r.Roots[0].Node().Real.Pos()).Offset
		end := u.Fset.Position(r.Roots[len(r.Roots)-1].Node().Real.End()).Offset
		buf.Replace(begin, end, []byte(text))
	}

	if !buf.Modified() {
		return false, u.Path, nil
	}

	out, err := buf.Bytes()
	if err != nil {
		return false, "", fmt.Errorf("coordinator: splicing %s: %w", u.Path, err)
	}
	formatted, err := format.Source(out)
	if err != nil {
		// Keep the unformatted output rather than losing the transform;
		// gofmt failures on a valid AST-derived splice should not happen,
		// but a malformed RHS template can produce one.
		formatted = out
	}

	outPath = u.Path
	if !c.OverwriteSourceFiles {
		outPath = alternatePath(u.Path)
	}
	if err := os.WriteFile(outPath, formatted, 0o644); err != nil {
		return false, "", fmt.Errorf("coordinator: writing %s: %w", outPath, err)
	}
	return true, outPath, nil
}

// alternatePath is the default (non-overwriting) output location: the
// original name with ".xform" inserted before the extension (x.go becomes
// x.xform.go).
func alternatePath(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + ".xform" + ext
}

func toRHSBindings(b matcher.Bindings) map[string]rhs.Binding {
	out := make(map[string]rhs.Binding, len(b))
	for k, v := range b {
		out[k] = rhs.Binding{Nodes: v.Nodes}
	}
	return out
}
