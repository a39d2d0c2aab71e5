// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartunit

import (
	"math"
	"testing"

	"gioui.org/unit"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func TestCalculateZoom(t *testing.T) {
	assert.Equal(t, 0.25, CalculateZoom(200, 800))
	assert.Equal(t, 0.0, CalculateZoom(200, 0))
	assert.Equal(t, 0.0, CalculateZoom(200, -5))
}

func TestPixelRoundTrip(t *testing.T) {
	for _, zoom := range []float64{0.001, 0.25, 1, 17.5} {
		for _, u := range []float64{-100, 0, 0.5, 1234.5678} {
			assert.InDelta(t, u, PixelsToUnits(UnitToPixels(u, zoom), zoom), tolerance)
		}
	}
}

func TestAxisRoundTrip(t *testing.T) {
	for _, baseline := range []float64{0.01, 1, 250.75} {
		for _, v := range []float64{0.5, 1, 99.99, 12345} {
			for _, a := range []AxisType{AxisRegular, AxisPercent, AxisLogarithmic} {
				back := FromAxisUnits(ToAxisUnits(v, baseline, a), baseline, a)
				assert.InDelta(t, v, back, tolerance*math.Max(1, v), "axis %s", a)
			}
		}
	}
}

func TestPercentAndLog(t *testing.T) {
	assert.Equal(t, 50.0, UnitToPercent(150, 100))
	assert.Equal(t, 150.0, PercentToUnit(50, 100))
	assert.Equal(t, 3.0, CalcLogValue(8))
	assert.Equal(t, 8.0, LogValueToUnit(3))
	assert.True(t, math.IsInf(CalcLogValue(0), -1))
	assert.True(t, math.IsNaN(CalcLogValue(-1)))
}

func TestUnknownAxisTypePanics(t *testing.T) {
	assert.Panics(t, func() { ToAxisUnits(1, 1, AxisType(42)) })
	_, err := AxisTypeFromString("cubic")
	assert.Error(t, err)
	a, err := AxisTypeFromString("percent")
	assert.NoError(t, err)
	assert.Equal(t, AxisPercent, a)
}

func TestPixelContext(t *testing.T) {
	c := NewPixelContext(unit.Metric{PxPerDp: 2})
	assert.Equal(t, 10.5, c.FloorToDPR(10.7))
	assert.Equal(t, 10.5, c.RoundToDPR(10.6))
	assert.Equal(t, 11.0, c.CeilToDPR(10.6))
	assert.Equal(t, 8.0, c.Px(4))

	c.SetMetric(unit.Metric{PxPerDp: 1})
	assert.Equal(t, 10.0, c.FloorToDPR(10.7))

	var unset *PixelContext
	assert.Equal(t, 1.0, unset.Ratio())
}
