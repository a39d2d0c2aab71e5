// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartunit

import (
	"math"

	"gioui.org/unit"
)

// PixelContext snaps pixel values to the device pixel grid.
// The host updates it through SetMetric whenever the device pixel ratio changes.
type PixelContext struct {
	metric unit.Metric
}

func NewPixelContext(m unit.Metric) *PixelContext {
	return &PixelContext{metric: m}
}

func (c *PixelContext) SetMetric(m unit.Metric) {
	c.metric = m
}

func (c *PixelContext) Metric() unit.Metric {
	return c.metric
}

// Ratio returns device pixels per logical pixel.
func (c *PixelContext) Ratio() float64 {
	if c == nil || c.metric.PxPerDp <= 0 {
		return 1
	}
	return float64(c.metric.PxPerDp)
}

func (c *PixelContext) FloorToDPR(px float64) float64 {
	r := c.Ratio()
	return math.Floor(px*r) / r
}

func (c *PixelContext) RoundToDPR(px float64) float64 {
	r := c.Ratio()
	return math.Round(px*r) / r
}

func (c *PixelContext) CeilToDPR(px float64) float64 {
	r := c.Ratio()
	return math.Ceil(px*r) / r
}

// Px converts device independent pixels to logical pixels.
func (c *PixelContext) Px(v unit.Dp) float64 {
	return float64(v) * c.Ratio()
}
