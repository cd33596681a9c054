// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package template implements the TemplateExtractor described in §4.1: it
// walks a parsed source unit, finds the sub-trees spanning a requested
// source range, and attaches the metavariable bindings declared over that
// range, producing an LHSTemplate ready for the matcher.
package template

import "srcx.dev/xform/srcrange"

// A Metavariable is a named placeholder that may be bound to a sub-tree (or,
// for a variadic binding, a sequence of sibling sub-trees). A name-only
// metavariable abstracts only the identifier of a declaration, leaving its
// structure to match exactly.
type Metavariable struct {
	Identifier string
	NameOnly   bool
}

// Less orders metavariables by identifier, then by name_only before
// non-name_only for equal identifiers, matching the total order of §3.
func (m Metavariable) Less(o Metavariable) bool {
	if m.Identifier != o.Identifier {
		return m.Identifier < o.Identifier
	}
	return m.NameOnly && !o.NameOnly
}

// A Location associates a Metavariable with the source range over which it
// applies, before extraction has resolved that range to concrete nodes.
type Location struct {
	Metavariable Metavariable
	Range        srcrange.Range
}

// SortLocations orders locs by Range.Begin ascending, ties broken by the
// longer range first and then by metavariable order, matching the sweep the
// caller runs to reject overlapping declarations before invoking Extract.
func SortLocations(locs []Location) {
	sortLocations(locs)
}
