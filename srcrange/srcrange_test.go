// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcrange

import "testing"

func TestLocationLess(t *testing.T) {
	a := Location{Line: 1, Column: 5}
	b := Location{Line: 1, Column: 6}
	c := Location{Line: 2, Column: 1}
	if !a.Less(b) {
		t.Errorf("%v should be less than %v", a, b)
	}
	if !b.Less(c) {
		t.Errorf("%v should be less than %v", b, c)
	}
	if c.Less(a) {
		t.Errorf("%v should not be less than %v", c, a)
	}
}

func TestRangeEncloses(t *testing.T) {
	outer := Range{Begin: Location{1, 1}, End: Location{10, 1}}
	inner := Range{Begin: Location{2, 1}, End: Location{5, 1}}
	if !outer.Encloses(inner) {
		t.Errorf("%v should enclose %v", outer, inner)
	}
	if inner.Encloses(outer) {
		t.Errorf("%v should not enclose %v", inner, outer)
	}
	same := outer
	if !outer.Encloses(same) {
		t.Errorf("a range should enclose itself")
	}
}

func TestRangeOverlaps(t *testing.T) {
	a := Range{Begin: Location{1, 1}, End: Location{3, 1}}
	b := Range{Begin: Location{2, 1}, End: Location{4, 1}}
	c := Range{Begin: Location{5, 1}, End: Location{6, 1}}
	if !a.Overlaps(b) {
		t.Errorf("%v should overlap %v", a, b)
	}
	if a.Overlaps(c) {
		t.Errorf("%v should not overlap %v", a, c)
	}
}

func TestRangeValid(t *testing.T) {
	if NoRange.Valid() {
		t.Errorf("NoRange should be invalid")
	}
	r := Range{Begin: Location{1, 1}, End: Location{1, 1}}
	if !r.Valid() {
		t.Errorf("a zero-width but non-zero range should be valid")
	}
}

func TestRangeString(t *testing.T) {
	r := Range{Begin: Location{2, 3}, End: Location{4, 5}}
	want := "[2, 3] -> [4, 5]"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
