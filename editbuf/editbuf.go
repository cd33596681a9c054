// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package editbuf implements a minimal byte-range splice buffer, adapted
// from the teacher's refactor.Buffer: a source file's original bytes plus a
// set of non-overlapping [start,end) replacements applied in descending
// start order so earlier offsets stay valid while later ones are patched.
package editbuf

import (
	"fmt"
	"sort"
)

// An Edit replaces the byte range [Start, End) of the original text with
// New.
type Edit struct {
	Start, End int
	New        []byte
}

// A Buffer accumulates Edits against a fixed original byte slice.
type Buffer struct {
	original []byte
	edits    []Edit
}

// New wraps original for editing. original is never mutated.
func New(original []byte) *Buffer {
	return &Buffer{original: original}
}

// Replace records that [start, end) of the original text should become
// text. Overlapping edits are a caller error, reported at Bytes time.
func (b *Buffer) Replace(start, end int, text []byte) {
	b.edits = append(b.edits, Edit{Start: start, End: end, New: text})
}

// Modified reports whether any edits have been recorded.
func (b *Buffer) Modified() bool { return len(b.edits) > 0 }

// Bytes renders the original text with every recorded edit applied, in
// descending start order (§4.6, MatchCoordinator).
func (b *Buffer) Bytes() ([]byte, error) {
	edits := append([]Edit(nil), b.edits...)
	sort.Slice(edits, func(i, j int) bool { return edits[i].Start > edits[j].Start })

	for i := 1; i < len(edits); i++ {
		if edits[i-1].Start < edits[i].End {
			return nil, fmt.Errorf("editbuf: overlapping edits at [%d,%d) and [%d,%d)", edits[i].Start, edits[i].End, edits[i-1].Start, edits[i-1].End)
		}
	}

	out := append([]byte(nil), b.original...)
	for _, e := range edits {
		if e.Start < 0 || e.End > len(out) || e.Start > e.End {
			return nil, fmt.Errorf("editbuf: edit [%d,%d) out of range for %d-byte buffer", e.Start, e.End, len(out))
		}
		var next []byte
		next = append(next, out[:e.Start]...)
		next = append(next, e.New...)
		next = append(next, out[e.End:]...)
		out = next
	}
	return out, nil
}
