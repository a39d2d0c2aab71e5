// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package candlemerge

import (
	"chartcore/chartval"
)

// AdjustSecondaryCandles lays out a comparison series on the timeline of the main series.
// Each secondary candle is assigned to the main candle at or before its timestamp, the last one wins.
// Main candles without a secondary candle get a copy of the nearest assigned neighbour,
// searching left first, with all prices collapsed to the neighbour's close and no volume.
// The result has exactly one candle per main candle, with timestamp and idx of the main candle.
func AdjustSecondaryCandles(main, secondary []chartval.Candle) []chartval.Candle {
	if len(main) == 0 || len(secondary) == 0 {
		return nil
	}
	slots := make([]int, len(main))
	for i := range slots {
		slots[i] = -1
	}
	for j, s := range secondary {
		idx, _ := SearchIndex(main, s.Timestamp, false, 0)
		if idx < 0 {
			continue
		}
		slots[idx] = j
	}

	// Nearest assigned slot to the left, then to the right.
	source := make([]int, len(main))
	last := -1
	for i, s := range slots {
		if s >= 0 {
			last = s
		}
		source[i] = last
	}
	next := -1
	for i := len(slots) - 1; i >= 0; i-- {
		if slots[i] >= 0 {
			next = slots[i]
		}
		if source[i] < 0 {
			source[i] = next
		}
	}

	r := make([]chartval.Candle, len(main))
	for i := range main {
		var c chartval.Candle
		switch {
		case slots[i] >= 0:
			c = secondary[slots[i]]
		case source[i] >= 0:
			c = collapse(secondary[source[i]])
		default:
			// Every secondary candle is before the main series.
			c = collapse(secondary[len(secondary)-1])
		}
		c.Timestamp = main[i].Timestamp
		c.Idx = i
		c.Expansion = false
		r[i] = c
	}
	return r
}

func collapse(c chartval.Candle) chartval.Candle {
	c.Open = c.Close
	c.High = c.Close
	c.Low = c.Close
	c.Volume = 0
	return c
}
