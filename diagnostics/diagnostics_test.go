// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagnostics

import (
	"errors"
	"strings"
	"testing"

	"srcx.dev/xform/srcrange"
)

func rng(l int) srcrange.Range {
	return srcrange.Range{
		Begin: srcrange.Location{Line: l, Column: 1},
		End:   srcrange.Location{Line: l, Column: 2},
	}
}

func TestErrorFormatting(t *testing.T) {
	e := New(Overshoot, "x.go", rng(3), "walked past the range", nil)
	got := e.Error()
	if !strings.Contains(got, "x.go") || !strings.Contains(got, "Overshoot") || !strings.Contains(got, "walked past the range") {
		t.Errorf("Error() = %q, missing expected fields", got)
	}
}

func TestErrorWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	e := New(ParseFailure, "y.go", srcrange.NoRange, "parse failed", cause)
	if !errors.Is(e, cause) {
		t.Errorf("expected errors.Is to find the wrapped cause")
	}
}

func TestListSortsByFileThenRange(t *testing.T) {
	var l List
	l.Add(New(OverlapDiscarded, "b.go", rng(5), "second", nil))
	l.Add(New(OverlapDiscarded, "a.go", rng(9), "first file", nil))
	l.Add(New(OverlapDiscarded, "a.go", rng(2), "first file, first line", nil))

	sorted := l.Errors()
	if len(sorted) != 3 {
		t.Fatalf("got %d errors, want 3", len(sorted))
	}
	if sorted[0].File != "a.go" || sorted[0].Range.Begin.Line != 2 {
		t.Errorf("expected a.go line 2 first, got %+v", sorted[0])
	}
	if sorted[1].File != "a.go" || sorted[1].Range.Begin.Line != 9 {
		t.Errorf("expected a.go line 9 second, got %+v", sorted[1])
	}
	if sorted[2].File != "b.go" {
		t.Errorf("expected b.go last, got %+v", sorted[2])
	}
}

func TestListErrNilWhenEmpty(t *testing.T) {
	var l List
	if err := l.Err(); err != nil {
		t.Errorf("expected nil Err() for an empty list, got %v", err)
	}
}

func TestListErrSummarizesMultiple(t *testing.T) {
	var l List
	l.Add(New(MissingBinding, "x.go", rng(1), "no binding for V", nil))
	l.Add(New(MissingBinding, "x.go", rng(2), "no binding for W", nil))
	if err := l.Err(); err == nil {
		t.Fatalf("expected a non-nil summary error")
	}
}
