// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartunit

import "math"

// Units are logical values (candle units on X, axis units on Y), zoom is units per pixel.

// CalculateZoom returns units per pixel, or 0 if the pixel span is not yet known.
func CalculateZoom(unitsSpan, pixelSpan float64) float64 {
	if pixelSpan <= 0 {
		return 0
	}
	return unitsSpan / pixelSpan
}

func UnitToPixels(units, zoom float64) float64 {
	return units / zoom
}

func PixelsToUnits(px, zoom float64) float64 {
	return px * zoom
}

// UnitToPercent is undefined for non-positive baselines.
func UnitToPercent(value, baseline float64) float64 {
	return (value - baseline) * 100 / baseline
}

func PercentToUnit(percent, baseline float64) float64 {
	return percent*baseline/100 + baseline
}

// CalcLogValue is undefined for non-positive prices.
func CalcLogValue(price float64) float64 {
	return math.Log2(price)
}

func LogValueToUnit(v float64) float64 {
	return math.Pow(2, v)
}
