// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diagnostics implements the error taxonomy of §7: a
// location-carrying Error and an accumulating List, adapted from the
// teacher's refactor.Error/refactor.ErrorList but keyed by srcrange.Range
// instead of go/token positions, so it applies uniformly to configuration,
// extraction, matching, and rewriting diagnostics alike.
package diagnostics

import (
	"fmt"
	"sort"

	"golang.org/x/xerrors"

	"srcx.dev/xform/srcrange"
)

// A Kind names one of the error/diagnostic categories of §7.
type Kind string

const (
	MalformedConfig     Kind = "MalformedConfig"
	InvalidRange        Kind = "InvalidRange"
	Overshoot           Kind = "Overshoot"
	PartialSpan         Kind = "PartialSpan"
	MissingMetavariable Kind = "MissingMetavariable"
	ParseFailure        Kind = "ParseFailure"
	OverlapDiscarded    Kind = "OverlapDiscarded"
	MissingBinding      Kind = "MissingBinding"
)

// An Error pairs a Kind and message with the source range it concerns, and
// optionally the file it was found in.
type Error struct {
	Kind    Kind
	File    string
	Range   srcrange.Range
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Range.Valid() {
		if e.File != "" {
			return fmt.Sprintf("%s: %s: %s: %s", e.File, e.Kind, e.Range, e.Message)
		}
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Range, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error { return e.Wrapped }

// New builds an Error, wrapping cause (if non-nil) with golang.org/x/xerrors
// for stack-trace-preserving diagnostics, mirroring the teacher's use of
// xerrors in refactor.Error.
func New(kind Kind, file string, r srcrange.Range, msg string, cause error) *Error {
	var wrapped error
	if cause != nil {
		wrapped = xerrors.Errorf("%s: %w", msg, cause)
	}
	return &Error{Kind: kind, File: file, Range: r, Message: msg, Wrapped: wrapped}
}

// A List accumulates diagnostics for one run, printed in a stable order at
// the end (by file, then by range).
type List struct {
	errs []*Error
}

// Add appends e to the list.
func (l *List) Add(e *Error) { l.errs = append(l.errs, e) }

// Len reports how many diagnostics have been recorded.
func (l *List) Len() int { return len(l.errs) }

// Errors returns the recorded diagnostics sorted by file, then by range.
func (l *List) Errors() []*Error {
	sorted := append([]*Error(nil), l.errs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Range.Begin.Less(b.Range.Begin)
	})
	return sorted
}

// Err returns a single error summarizing the list, or nil if empty, in the
// style of the teacher's ErrorList.Err.
func (l *List) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	if len(l.errs) == 1 {
		return l.errs[0]
	}
	return xerrors.Errorf("%d diagnostics, first: %w", len(l.errs), l.errs[0])
}
