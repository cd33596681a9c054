// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package srcrange defines the source location and source range types used
// throughout xform to describe where template regions, metavariable
// bindings, and match results live in the original source text.
package srcrange

import (
	"fmt"
	"go/token"
)

// A Location is a (line, column) pair, 1-based like a text editor's cursor
// position. The zero Location is invalid; use NoLocation to spell it.
type Location struct {
	Line   int
	Column int
}

// NoLocation is the distinguished invalid Location.
var NoLocation = Location{}

// Valid reports whether l identifies an actual position.
func (l Location) Valid() bool {
	return l.Line > 0 && l.Column > 0
}

// Less reports whether l sorts strictly before other, lexicographically by
// (line, column).
func (l Location) Less(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

func (l Location) String() string {
	if !l.Valid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// FromPosition converts a go/token.Position into a Location.
func FromPosition(p token.Position) Location {
	if !p.IsValid() {
		return NoLocation
	}
	return Location{Line: p.Line, Column: p.Column}
}

// A Range is a half-open-in-spirit but inclusive-of-last-token source span
// (begin, end), with begin <= end. The zero Range is invalid.
type Range struct {
	Begin Location
	End   Location
}

// NoRange is the distinguished invalid Range.
var NoRange = Range{}

// Valid reports whether r has valid endpoints with Begin <= End.
func (r Range) Valid() bool {
	return r.Begin.Valid() && r.End.Valid() && !r.End.Less(r.Begin)
}

// Encloses reports whether r wholly contains inner: r.Begin <= inner.Begin
// and inner.End <= r.End.
func (r Range) Encloses(inner Range) bool {
	return !inner.Begin.Less(r.Begin) && !r.End.Less(inner.End)
}

// Overlaps reports whether r and other share any point. The caller must
// ensure r.Begin <= other.Begin; Overlaps does not normalize its arguments.
func (r Range) Overlaps(other Range) bool {
	return !other.Begin.Less(r.Begin) && !r.End.Less(other.Begin)
}

// String renders r as "[line, column] -> [line, column]", the format used
// in diagnostic messages.
func (r Range) String() string {
	return fmt.Sprintf("[%s] -> [%s]", pointString(r.Begin), pointString(r.End))
}

func pointString(l Location) string {
	if !l.Valid() {
		return "-, -"
	}
	return fmt.Sprintf("%d, %d", l.Line, l.Column)
}

// FromPosPair builds a Range from a pair of go/token positions resolved
// through fset. It is the bridge every package in xform uses to turn
// go/ast node positions into the language-neutral Range type from §3.
func FromPosPair(fset *token.FileSet, pos, end token.Pos) Range {
	return Range{
		Begin: FromPosition(fset.Position(pos)),
		End:   FromPosition(fset.Position(end)),
	}
}
