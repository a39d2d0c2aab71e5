// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package series

import (
	"chartcore/candlemerge"
	"chartcore/chartunit"
	"chartcore/chartval"
	"chartcore/indapi/candles"
	"chartcore/logging"
	"chartcore/viewport"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// ExtrapolatorFunc creates the extrapolation used for fake candles from the detected period.
type ExtrapolatorFunc func(period time.Duration) candles.Extrapolator

// CandleSeriesModel owns the candles of one series and their visual projection.
// Visual points are always rebuilt in full, because the X position of every candle
// depends on the widths of all candles before it.
type CandleSeriesModel struct {
	name            string
	instrument      chartval.Instrument
	points          chartval.Points[chartval.Candle]
	flat            []chartval.Candle
	flatValid       bool
	visual          []chartval.VisualCandle
	width           WidthCalculator
	grid            *CandleSeriesModel
	axis            chartunit.AxisType
	baseline        float64
	xStart          float64
	xEnd            float64
	dataIdxStart    int
	dataIdxEnd      int
	meanCandleWidth float64
	period          time.Duration
	newExtrapolator ExtrapolatorFunc
	extrapolator    candles.Extrapolator
	pricePrecisions []int
	active          bool
	log             *logrus.Entry
}

func NewCandleSeriesModel(name string) *CandleSeriesModel {
	return &CandleSeriesModel{
		name:            name,
		width:           UnitWidth{},
		baseline:        math.NaN(),
		dataIdxEnd:      -1,
		meanCandleWidth: 1,
		newExtrapolator: candles.ExtrapolatorForPeriod,
		extrapolator:    candles.FixedExtrapolator(0),
		pricePrecisions: []int{chartval.DefaultPricePrecision},
		active:          true,
		log:             logging.Component("series").WithField("series", name),
	}
}

func (m *CandleSeriesModel) Name() string {
	return m.name
}

func (m *CandleSeriesModel) Instrument() chartval.Instrument {
	return m.instrument
}

// SetInstrument updates the price precisions from the price increments of the instrument.
// Invalid increments are logged and the default precision is used.
func (m *CandleSeriesModel) SetInstrument(i chartval.Instrument) {
	m.instrument = i
	p, err := i.PricePrecisions()
	if err != nil {
		m.log.WithError(err).Warn("using default price precision")
		p = []int{chartval.DefaultPricePrecision}
	}
	m.pricePrecisions = p
}

func (m *CandleSeriesModel) PricePrecisions() []int {
	return m.pricePrecisions
}

// PricePrecision is the largest of the price precisions.
func (m *CandleSeriesModel) PricePrecision() int {
	p := chartval.DefaultPricePrecision
	for i, v := range m.pricePrecisions {
		if i == 0 || v > p {
			p = v
		}
	}
	return p
}

func (m *CandleSeriesModel) RoundPrice(v float64) float64 {
	return chartval.RoundPrice(v, m.PricePrecision())
}

func (m *CandleSeriesModel) SetWidthCalculator(w WidthCalculator) {
	m.width = w
	m.RecalculateVisualPoints()
}

// AttachTo lays out this series on the visual grid of the main series.
// Candle i is drawn at the position of main candle i. nil detaches.
func (m *CandleSeriesModel) AttachTo(grid *CandleSeriesModel) {
	m.grid = grid
	m.RecalculateVisualPoints()
}

func (m *CandleSeriesModel) Grid() *CandleSeriesModel {
	return m.grid
}

func (m *CandleSeriesModel) SetExtrapolatorFunc(f ExtrapolatorFunc) {
	m.newExtrapolator = f
	m.extrapolator = f(m.period)
}

func (m *CandleSeriesModel) SetAxisType(a chartunit.AxisType) {
	if m.axis == a {
		return
	}
	m.axis = a
	m.RecalculateVisualPoints()
}

func (m *CandleSeriesModel) AxisType() chartunit.AxisType {
	return m.axis
}

// Baseline is the reference price of a percent axis, NaN otherwise.
func (m *CandleSeriesModel) Baseline() float64 {
	return m.baseline
}

// SetDataPoints replaces all candles. The period is detected again and visual points are rebuilt.
func (m *CandleSeriesModel) SetDataPoints(p chartval.Points[chartval.Candle]) {
	m.points = p
	m.flat = nil
	m.flatValid = false
	flat := m.DataPoints()
	timestamps := make([]time.Time, len(flat))
	for i := range flat {
		timestamps[i] = flat[i].Timestamp
	}
	m.period = candles.DetectPeriod(timestamps)
	m.extrapolator = m.newExtrapolator(m.period)
	m.RecalculateVisualPoints()
}

// Points returns the candles as they were set, flat or segmented.
func (m *CandleSeriesModel) Points() chartval.Points[chartval.Candle] {
	return m.points
}

// DataPoints returns all candles in order. Segmented data is flattened on first access.
func (m *CandleSeriesModel) DataPoints() []chartval.Candle {
	if !m.flatValid {
		m.flat = m.points.Flatten()
		m.flatValid = true
	}
	return m.flat
}

func (m *CandleSeriesModel) Len() int {
	return len(m.DataPoints())
}

func (m *CandleSeriesModel) VisualPoints() []chartval.VisualCandle {
	return m.visual
}

// UpdateDataPoints merges update into the candles and rebuilds the visual points.
// Segments keep their lengths, prepended candles extend the first and appended the last segment.
func (m *CandleSeriesModel) UpdateDataPoints(update []chartval.Candle) candlemerge.Result[chartval.Candle] {
	r := candlemerge.UpdateCandles(m.DataPoints(), update)
	if len(update) > r.Dropped {
		m.SetDataPoints(chartval.Resegment(r.Candles, m.points.SegmentLengths(), r.Prepended))
	}
	return r
}

// PrependDataPoints adds older candles, e.g. when lazily loading history.
func (m *CandleSeriesModel) PrependDataPoints(older []chartval.Candle) candlemerge.Result[chartval.Candle] {
	r := candlemerge.PrependCandles(m.DataPoints(), older)
	if r.Prepended > 0 {
		m.SetDataPoints(chartval.Resegment(r.Candles, m.points.SegmentLengths(), r.Prepended))
	}
	return r
}

// RecalculateVisualPoints rebuilds all visual points from the candles.
func (m *CandleSeriesModel) RecalculateVisualPoints() {
	m.rebuildVisuals()
	m.RecalculateMeanCandleWidth()
	m.RecalculateDataViewportIndexes(m.xStart, m.xEnd)
}

func (m *CandleSeriesModel) rebuildVisuals() {
	flat := m.DataPoints()
	m.baseline = m.calcBaseline()
	starts, widths := m.layout(flat)
	visual := make([]chartval.VisualCandle, len(flat))
	for i := range flat {
		c := &flat[i]
		visual[i] = chartval.VisualCandle{
			Idx:        c.Idx,
			Timestamp:  c.Timestamp,
			StartUnit:  starts[i],
			CenterUnit: starts[i] + widths[i]/2,
			Width:      widths[i],
			Open:       m.toAxis(c.Open),
			High:       m.toAxis(c.High),
			Low:        m.toAxis(c.Low),
			Close:      m.toAxis(c.Close),
			Volume:     c.Volume,
			Expansion:  c.Expansion,
		}
	}
	m.visual = visual
}

func (m *CandleSeriesModel) toAxis(v float64) float64 {
	return chartunit.ToAxisUnits(v, m.baseline, m.axis)
}

// ToPrice converts an axis value back to a price.
func (m *CandleSeriesModel) ToPrice(v float64) float64 {
	return chartunit.FromAxisUnits(v, m.baseline, m.axis)
}

// calcBaseline uses the close of the first visible candle, or of the first candle if nothing is visible.
func (m *CandleSeriesModel) calcBaseline() float64 {
	if m.axis != chartunit.AxisPercent {
		return math.NaN()
	}
	flat := m.DataPoints()
	if len(flat) == 0 {
		return math.NaN()
	}
	idx := 0
	if m.dataIdxEnd >= m.dataIdxStart && m.dataIdxStart < len(flat) {
		idx = m.dataIdxStart
	}
	return flat[idx].Close
}

func (m *CandleSeriesModel) layout(flat []chartval.Candle) (starts, widths []float64) {
	starts = make([]float64, len(flat))
	if m.grid != nil {
		widths = make([]float64, len(flat))
		gv := m.grid.visual
		mw := m.grid.MeanCandleWidth()
		end := 0.0
		if len(gv) > 0 {
			end = gv[len(gv)-1].End()
		}
		for i := range flat {
			if i < len(gv) {
				starts[i] = gv[i].StartUnit
				widths[i] = gv[i].Width
			} else {
				starts[i] = end + float64(i-len(gv))*mw
				widths[i] = mw
			}
		}
		return starts, widths
	}
	widths = m.width.Widths(flat)
	pos := 0.0
	for i := range flat {
		starts[i] = pos
		pos += widths[i]
	}
	return starts, widths
}

// RecalculateMeanCandleWidth averages the widths of all visual points. Without data it is 1.
func (m *CandleSeriesModel) RecalculateMeanCandleWidth() {
	if len(m.visual) == 0 {
		m.meanCandleWidth = 1
		return
	}
	sum := 0.0
	for i := range m.visual {
		sum += m.visual[i].Width
	}
	m.meanCandleWidth = sum / float64(len(m.visual))
}

func (m *CandleSeriesModel) MeanCandleWidth() float64 {
	return m.meanCandleWidth
}

// Period is the dominant time between candles, 0 if unknown.
func (m *CandleSeriesModel) Period() time.Duration {
	return m.period
}

// RecalculateDataViewportIndexes caches the visible index range for the X range.
// On a percent axis the visual points are rebuilt if the first visible candle changed.
func (m *CandleSeriesModel) RecalculateDataViewportIndexes(xStart, xEnd float64) {
	m.xStart = xStart
	m.xEnd = xEnd
	m.dataIdxStart, m.dataIdxEnd = viewportIndexes(m.visual, xStart, xEnd)
	if m.axis == chartunit.AxisPercent {
		if b := m.calcBaseline(); b != m.baseline && !(math.IsNaN(b) && math.IsNaN(m.baseline)) {
			m.rebuildVisuals()
		}
	}
}

func (m *CandleSeriesModel) DataIdxStart() int {
	return m.dataIdxStart
}

// DataIdxEnd is the last visible index, it is less than DataIdxStart if nothing is visible.
func (m *CandleSeriesModel) DataIdxEnd() int {
	return m.dataIdxEnd
}

// GetSeriesInViewport returns the visible visual points split into segments.
// If both bounds are nil, the cached indexes are used.
func (m *CandleSeriesModel) GetSeriesInViewport(xStart, xEnd *float64) [][]chartval.VisualCandle {
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

// CandleAt returns the candle at idx. Outside of the data a fake candle without prices is returned.
func (m *CandleSeriesModel) CandleAt(idx int) chartval.Candle {
	return candlemerge.FakeCandleWith(m.DataPoints(), idx, m.extrapolator)
}

// IndexForUnit returns the index of the candle at X position u, extrapolated outside of the data.
func (m *CandleSeriesModel) IndexForUnit(u float64) int {
	return indexForUnit(m.visual, u, m.meanCandleWidth)
}

// UnitForIndex returns the center of candle idx, extrapolated outside of the data.
func (m *CandleSeriesModel) UnitForIndex(idx int) float64 {
	n := len(m.visual)
	mw := m.meanCandleWidth
	switch {
	case n == 0:
		return (float64(idx) + 0.5) * mw
	case idx < 0:
		return m.visual[0].StartUnit + (float64(idx)+0.5)*mw
	case idx >= n:
		return m.visual[n-1].End() + (float64(idx-n)+0.5)*mw
	}
	return m.visual[idx].CenterUnit
}

// UnitForTimestamp returns the center of the candle at or before ts.
func (m *CandleSeriesModel) UnitForTimestamp(ts time.Time) float64 {
	idx, _ := candlemerge.SearchIndex(m.DataPoints(), ts, true, m.period)
	return m.UnitForIndex(idx)
}

func (m *CandleSeriesModel) TimestampForUnit(u float64) time.Time {
	return m.CandleAt(m.IndexForUnit(u)).Timestamp
}

// PrependedWidth is the summed width of the first count visual points.
func (m *CandleSeriesModel) PrependedWidth(count int) float64 {
	w := 0.0
	for i := 0; i < count && i < len(m.visual); i++ {
		w += m.visual[i].Width
	}
	return w
}

// FirstUnit is the start of the first candle.
func (m *CandleSeriesModel) FirstUnit() float64 {
	if len(m.visual) == 0 {
		return 0
	}
	return m.visual[0].StartUnit
}

// LastUnit is the end of the last candle.
func (m *CandleSeriesModel) LastUnit() float64 {
	if len(m.visual) == 0 {
		return 0
	}
	return m.visual[len(m.visual)-1].End()
}

func (m *CandleSeriesModel) IsEmpty() bool {
	return len(m.visual) == 0
}

// IsLastCandleVisible reports whether the last candle overlaps the cached viewport range.
func (m *CandleSeriesModel) IsLastCandleVisible() bool {
	n := len(m.visual)
	return n > 0 && m.dataIdxEnd == n-1 && m.dataIdxStart <= m.dataIdxEnd
}

func (m *CandleSeriesModel) IsHighLowActive() bool {
	return m.active && len(m.visual) > 0
}

// CalculateHighLow returns the extent of the candles visible in state, or in the cached range for nil.
func (m *CandleSeriesModel) CalculateHighLow(state *viewport.State) chartval.HighLow {
	start, end := m.dataIdxStart, m.dataIdxEnd
	if state != nil {
		start, end = viewportIndexes(m.visual, state.XStart, state.XEnd)
	}
	hl := chartval.HighLow{High: math.Inf(-1), Low: math.Inf(1), HighIdx: -1, LowIdx: -1}
	for i := max(start, 0); i <= end && i < len(m.visual); i++ {
		v := &m.visual[i]
		if chartval.IsFinite(v.High) && v.High > hl.High {
			hl.High = v.High
			hl.HighIdx = v.Idx
		}
		if chartval.IsFinite(v.Low) && v.Low < hl.Low {
			hl.Low = v.Low
			hl.LowIdx = v.Idx
		}
	}
	if hl.HighIdx < 0 || hl.LowIdx < 0 {
		return chartval.EmptyHighLow
	}
	return hl
}

func (m *CandleSeriesModel) IsActive() bool {
	return m.active
}

// Deactivate releases the data. A deactivated series does not take part in auto scaling.
func (m *CandleSeriesModel) Deactivate() {
	m.active = false
	m.points = chartval.Points[chartval.Candle]{}
	m.flat = nil
	m.flatValid = false
	m.visual = nil
	m.grid = nil
	m.dataIdxStart = 0
	m.dataIdxEnd = -1
	m.meanCandleWidth = 1
	m.log.Debug("series deactivated")
}
