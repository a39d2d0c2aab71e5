// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package series

import (
	"math"
	"sort"
)

type extent interface {
	Start() float64
	End() float64
}

// viewportIndexes returns the first and last point which overlap [xStart, xEnd].
// Partially visible points are included. end < start if nothing is visible.
func viewportIndexes[V extent](visuals []V, xStart, xEnd float64) (start, end int) {
	start = sort.Search(len(visuals), func(i int) bool {
		return visuals[i].End() > xStart
	})
	end = sort.Search(len(visuals), func(i int) bool {
		return visuals[i].Start() > xEnd
	}) - 1
	if end < start {
		return 0, -1
	}
	return start, end
}

// splitSegments returns visuals[start:end+1] split at segment boundaries.
// The returned slices share the visual array.
func splitSegments[V any](visuals []V, lengths []int, start, end int) [][]V {
	if end < start || start >= len(visuals) {
		return nil
	}
	end = min(end, len(visuals)-1)
	start = max(start, 0)
	if len(lengths) <= 1 {
		return [][]V{visuals[start : end+1]}
	}
	var r [][]V
	segStart := 0
	for _, l := range lengths {
		segEnd := segStart + l - 1
		s := max(segStart, start)
		e := min(segEnd, end)
		if s <= e {
			r = append(r, visuals[s:e+1])
		}
		segStart += l
	}
	return r
}

// indexForUnit returns the point containing u. Outside of the data the index is
// extrapolated using the mean width.
func indexForUnit[V extent](visuals []V, u, meanWidth float64) int {
	n := len(visuals)
	if n == 0 {
		return int(math.Floor(u / meanWidth))
	}
	first := visuals[0].Start()
	last := visuals[n-1].End()
	switch {
	case u < first:
		return int(math.Floor((u - first) / meanWidth))
	case u >= last:
		return n + int((u-last)/meanWidth)
	}
	return sort.Search(n, func(i int) bool {
		return visuals[i].End() > u
	})
}
