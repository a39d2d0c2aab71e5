// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package series

import (
	"chartcore/chartval"
	"math"
)

// WidthCalculator returns the X width of every candle in units.
type WidthCalculator interface {
	Widths(candles []chartval.Candle) []float64
}

// UnitWidth gives every candle a width of one unit.
type UnitWidth struct{}

func (UnitWidth) Widths(candles []chartval.Candle) []float64 {
	w := make([]float64, len(candles))
	for i := range w {
		w[i] = 1
	}
	return w
}

// MinEquivolumeWidth keeps candles without volume visible.
const MinEquivolumeWidth = 0.1

// EquivolumeWidth scales candle widths by volume, relative to the mean volume.
// The mean width is therefore about one unit.
type EquivolumeWidth struct{}

func (EquivolumeWidth) Widths(candles []chartval.Candle) []float64 {
	sum := 0.0
	n := 0
	for i := range candles {
		if v := candles[i].Volume; chartval.IsFinite(v) && v > 0 {
			sum += v
			n++
		}
	}
	w := make([]float64, len(candles))
	if n == 0 {
		for i := range w {
			w[i] = 1
		}
		return w
	}
	mean := sum / float64(n)
	for i := range candles {
		v := candles[i].Volume
		if !chartval.IsFinite(v) || v < 0 {
			v = 0
		}
		w[i] = math.Max(v/mean, MinEquivolumeWidth)
	}
	return w
}
