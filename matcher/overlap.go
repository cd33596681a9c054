// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcher

import "sort"

// An OverlapConflict records one match discarded by ResolveOverlaps because
// it overlapped an earlier, kept match, so callers can surface it as an
// OverlapDiscarded diagnostic naming both ranges (§4.4, §6, §7).
type OverlapConflict struct {
	Kept      MatchResult
	Discarded MatchResult
}

// ResolveOverlaps implements the §4.4 overlap resolution sweep: sort by
// source range ascending (ties broken wider-first), then keep a match only
// if it does not overlap the most recently kept one. Overlap resolution
// naturally prefers the earliest match of any overlapping pair, and, by the
// tiebreak, the widest among those sharing a start. Every discarded match is
// reported alongside the kept match it overlapped.
func ResolveOverlaps(results []MatchResult) ([]MatchResult, []OverlapConflict) {
	sorted := append([]MatchResult(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Range.Begin != b.Range.Begin {
			return a.Range.Begin.Less(b.Range.Begin)
		}
		return b.Range.End.Less(a.Range.End)
	})

	var kept []MatchResult
	var conflicts []OverlapConflict
	for _, r := range sorted {
		if len(kept) > 0 && kept[len(kept)-1].Range.Overlaps(r.Range) {
			conflicts = append(conflicts, OverlapConflict{Kept: kept[len(kept)-1], Discarded: r})
			continue
		}
		kept = append(kept, r)
	}
	return kept, conflicts
}
