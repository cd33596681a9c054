// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Xform applies a structural template transformation to a corpus of Go
// packages.
//
// Usage:
//
//	xform -config config.json [pkg ...]
//
// The packages named on the command line (or "." if none are given) are
// loaded with full type information. A configuration document (§6 of the
// design) names a source file and a source range within it holding the
// template to extract, an ordered list of metavariable declarations, and
// the path to an RHS template used to build each match's replacement text.
//
// By default xform writes each changed file's rewritten form alongside the
// original, with a ".xform" suffix inserted before the extension; setting
// overwrite_source_files in the configuration document rewrites files in
// place instead. The -diff flag also prints a unified diff of each change;
// in the default mode the ".xform" file is removed once diffed, while with
// overwrite_source_files the rewritten source file stays in place.
//
// A configuration document looks like:
//
//	{
//		"template_source": "pkg/file.go",
//		"template_range": [[10, 2], [10, 34]],
//		"meta_variables": [
//			{"identifier": "cond", "range": [[10, 6], [10, 12]]}
//		],
//		"rhs_template": "pkg/rhs.txt",
//		"overwrite_source_files": false
//	}
//
// Locations are 1-based [line, column] pairs, the same numbering go/token
// positions use (columns count bytes). The template range is
// inclusive of its last token. An RHS template refers to a bound
// metavariable by name preceded by a bare '?', as in "if ?cond { ... }";
// a lone '?' not immediately followed by an identifier is copied through
// as a literal character.
package main
