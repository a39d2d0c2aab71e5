// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package series

import (
	"chartcore/candlemerge"
	"chartcore/chartunit"
	"chartcore/chartval"
	"chartcore/viewport"
	"math"
)

// DataSeriesModel is a line series, e.g. an indicator, laid out on the grid of a candle series.
// Point i is drawn at the position of grid candle i.
type DataSeriesModel struct {
	name         string
	points       chartval.Points[chartval.DataSeriesPoint]
	visual       []chartval.VisualSeriesPoint
	grid         *CandleSeriesModel
	followAxis   bool
	xStart       float64
	xEnd         float64
	dataIdxStart int
	dataIdxEnd   int
	active       bool
}

// NewDataSeriesModel creates a line on the grid of the candle series.
// With followAxis, values are prices and use the axis type and baseline of the grid.
func NewDataSeriesModel(name string, grid *CandleSeriesModel, followAxis bool) *DataSeriesModel {
	return &DataSeriesModel{
		name:       name,
		grid:       grid,
		followAxis: followAxis,
		dataIdxEnd: -1,
		active:     true,
	}
}

func (m *DataSeriesModel) Name() string {
	return m.name
}

func (m *DataSeriesModel) SetDataPoints(p chartval.Points[chartval.DataSeriesPoint]) {
	m.points = p
	m.RecalculateVisualPoints()
}

func (m *DataSeriesModel) DataPoints() []chartval.DataSeriesPoint {
	return m.points.Flatten()
}

func (m *DataSeriesModel) VisualPoints() []chartval.VisualSeriesPoint {
	return m.visual
}

// RecalculateVisualPoints rebuilds the visual points, it has to be called after the grid changed.
func (m *DataSeriesModel) RecalculateVisualPoints() {
	flat := m.points.Flatten()
	gv := m.grid.VisualPoints()
	mw := m.grid.MeanCandleWidth()
	end := m.grid.LastUnit()
	visual := make([]chartval.VisualSeriesPoint, len(flat))
	for i := range flat {
		p := &flat[i]
		v := chartval.VisualSeriesPoint{
			Idx:       p.Idx,
			Timestamp: p.Timestamp,
			Close:     p.Close,
		}
		if i < len(gv) {
			v.StartUnit = gv[i].StartUnit
			v.Width = gv[i].Width
		} else {
			v.StartUnit = end + float64(i-len(gv))*mw
			v.Width = mw
		}
		v.CenterUnit = v.StartUnit + v.Width/2
		if m.followAxis {
			v.Close = chartunit.ToAxisUnits(p.Close, m.grid.Baseline(), m.grid.AxisType())
		}
		visual[i] = v
	}
	m.visual = visual
	m.xStart, m.xEnd = m.grid.xStart, m.grid.xEnd
	m.dataIdxStart, m.dataIdxEnd = m.grid.DataIdxStart(), m.grid.DataIdxEnd()
	m.dataIdxEnd = min(m.dataIdxEnd, len(m.visual)-1)
}

// RecalculateDataViewportIndexes caches the visible index range.
func (m *DataSeriesModel) RecalculateDataViewportIndexes(xStart, xEnd float64) {
	m.xStart = xStart
	m.xEnd = xEnd
	m.dataIdxStart, m.dataIdxEnd = viewportIndexes(m.visual, xStart, xEnd)
}

// GetSeriesInViewport returns the visible visual points split into segments.
// A nil bound is replaced by the cached one.
func (m *DataSeriesModel) GetSeriesInViewport(xStart, xEnd *float64) [][]chartval.VisualSeriesPoint {
	start, end := m.dataIdxStart, m.dataIdxEnd
	if xStart != nil || xEnd != nil {
		xs, xe := m.xStart, m.xEnd
		if xStart != nil {
			xs = *xStart
		}
		if xEnd != nil {
			xe = *xEnd
		}
		start, end = viewportIndexes(m.visual, xs, xe)
	}
	return splitSegments(m.visual, m.points.SegmentLengths(), start, end)
}

// PointAt returns the point at idx, or a fake point outside of the data.
func (m *DataSeriesModel) PointAt(idx int) chartval.DataSeriesPoint {
	return candlemerge.FakePoint(m.points.Flatten(), idx, m.grid.extrapolator)
}

func (m *DataSeriesModel) IsHighLowActive() bool {
	return m.active && len(m.visual) > 0
}

func (m *DataSeriesModel) CalculateHighLow(state *viewport.State) chartval.HighLow {
	start, end := m.dataIdxStart, m.dataIdxEnd
	if state != nil {
		start, end = viewportIndexes(m.visual, state.XStart, state.XEnd)
	}
	hl := chartval.HighLow{High: math.Inf(-1), Low: math.Inf(1), HighIdx: -1, LowIdx: -1}
	for i := max(start, 0); i <= end && i < len(m.visual); i++ {
		v := m.visual[i].Close
		if !chartval.IsFinite(v) {
			continue
		}
		if v > hl.High {
			hl.High = v
			hl.HighIdx = m.visual[i].Idx
		}
		if v < hl.Low {
			hl.Low = v
			hl.LowIdx = m.visual[i].Idx
		}
	}
	if hl.HighIdx < 0 {
		return chartval.EmptyHighLow
	}
	return hl
}

func (m *DataSeriesModel) Deactivate() {
	m.active = false
	m.points = chartval.Points[chartval.DataSeriesPoint]{}
	m.visual = nil
	m.dataIdxStart = 0
	m.dataIdxEnd = -1
}
