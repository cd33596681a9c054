// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package template

import "sort"

func sortLocations(locs []Location) {
	sort.SliceStable(locs, func(i, j int) bool {
		a, b := locs[i], locs[j]
		if !a.Range.Begin.Less(b.Range.Begin) && !b.Range.Begin.Less(a.Range.Begin) {
			// Same begin: longer range first.
			if !a.Range.End.Less(b.Range.End) && !b.Range.End.Less(a.Range.End) {
				return a.Metavariable.Less(b.Metavariable)
			}
			return b.Range.End.Less(a.Range.End)
		}
		return a.Range.Begin.Less(b.Range.Begin)
	})
}

// OverlapCheck reports the first pair of locations found to overlap during a
// single linear sweep over locs, which must already be sorted by
// SortLocations. It returns ok=false if no overlap exists.
func OverlapCheck(locs []Location) (i, j int, ok bool) {
	for k := 1; k < len(locs); k++ {
		prev, cur := locs[k-1], locs[k]
		if prev.Range.End.Less(cur.Range.Begin) {
			continue
		}
		return k - 1, k, true
	}
	return 0, 0, false
}
