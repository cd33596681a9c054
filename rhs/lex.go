// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rhs implements the Rewriter described in §4.5: lexing an RHS
// template into literal and metaparameter-reference parts, and
// instantiating a match's bindings against those parts to produce
// replacement text.
package rhs

import "strings"

// A PartKind distinguishes a literal run of RHS text from a metaparameter
// reference.
type PartKind int

const (
	// Literal is a run of RHS text copied verbatim into the output.
	Literal PartKind = iota
	// MetaparamRef names a metavariable whose captured source text
	// replaces this part.
	MetaparamRef
)

// A Part is one element of a lexed RHS template.
type Part struct {
	Kind PartKind
	Text string // literal text, or the metavariable identifier for a ref
}

// Lex splits src into an alternating sequence of literal and
// metaparameter-reference parts (§4.5). A metaparameter reference is a
// single '?' immediately followed, with no intervening whitespace, by an
// identifier; a bare '?' not followed by an identifier is literal text.
func Lex(src string) []Part {
	var parts []Part
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, Part{Kind: Literal, Text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(src)
	for i := 0; i < len(runes); {
		c := runes[i]
		if c != '?' {
			lit.WriteRune(c)
			i++
			continue
		}
		start := i + 1
		j := start
		for j < len(runes) && isIdentRune(runes[j], j == start) {
			j++
		}
		if j == start {
			// Bare '?' with no following identifier: literal.
			lit.WriteRune(c)
			i++
			continue
		}
		flush()
		parts = append(parts, Part{Kind: MetaparamRef, Text: string(runes[start:j])})
		i = j
	}
	flush()
	return parts
}

func isIdentRune(r rune, first bool) bool {
	switch {
	case r == '_':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return !first
	}
	return false
}
