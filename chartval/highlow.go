// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import "math"

const MaxSafeInteger = 1<<53 - 1
const MinSafeInteger = -MaxSafeInteger

// HighLow is the value extent contributed by one series.
// HighIdx and LowIdx are -1 if unknown.
type HighLow struct {
	High    float64
	Low     float64
	HighIdx int
	LowIdx  int
}

// EmptyHighLow is returned if there is no data. It must not be applied to a viewport.
var EmptyHighLow = HighLow{High: MinSafeInteger, Low: MaxSafeInteger, HighIdx: -1, LowIdx: -1}

func (h HighLow) IsEmpty() bool {
	return h.High < h.Low || math.IsNaN(h.High) || math.IsNaN(h.Low)
}

func (h HighLow) Height() float64 {
	return h.High - h.Low
}

// MergeHighLow folds extents using max/min, skipping values which are not finite.
func MergeHighLow(values ...HighLow) HighLow {
	r := HighLow{High: math.Inf(-1), Low: math.Inf(1), HighIdx: -1, LowIdx: -1}
	for _, v := range values {
		if IsFinite(v.High) && v.High > r.High {
			r.High = v.High
			r.HighIdx = v.HighIdx
		}
		if IsFinite(v.Low) && v.Low < r.Low {
			r.Low = v.Low
			r.LowIdx = v.LowIdx
		}
	}
	if math.IsInf(r.High, -1) || math.IsInf(r.Low, 1) {
		return EmptyHighLow
	}
	return r
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
