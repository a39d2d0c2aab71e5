// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chart

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Timeframe is a visible time range, from the first to the last at least half visible candle.
type Timeframe struct {
	Start time.Time
	End   time.Time
}

// VisibleTimeframe returns false if there is no data.
func (m *Model) VisibleTimeframe() (Timeframe, bool) {
	if m.main.IsEmpty() {
		return Timeframe{}, false
	}
	s := m.scale.Export()
	if s.XEnd <= s.XStart {
		return Timeframe{}, false
	}
	half := m.main.MeanCandleWidth() / 2
	return Timeframe{
		Start: m.main.TimestampForUnit(s.XStart + half),
		End:   m.main.TimestampForUnit(s.XEnd - half),
	}, true
}

// SetTimestampRange shows the candles from start to end, both included.
// Timestamps outside of the data are extrapolated. It returns false if the range was
// rejected, e.g. because it is empty or exceeds a zoom limit.
func (m *Model) SetTimestampRange(start, end time.Time) bool {
	if m.main.IsEmpty() || end.Before(start) {
		return false
	}
	half := m.main.MeanCandleWidth() / 2
	xStart := m.main.UnitForTimestamp(start) - half
	xEnd := m.main.UnitForTimestamp(end) + half
	if m.scale.SetXScale(xStart, xEnd, false) {
		return true
	}
	// Not changed, either because the range is already shown or because it was rejected.
	if s := m.scale.Export(); s.XStart == xStart && s.XEnd == xEnd {
		return true
	}
	m.log.WithFields(logrus.Fields{
		"start":       start,
		"end":         end,
		"zoomReached": m.scale.ZoomReached(),
	}).Debug("timestamp range rejected")
	return false
}

// DoBasicScale shows the most recent candles followed by the right offset.
// Zoom limits and constraints do not apply.
func (m *Model) DoBasicScale() {
	if m.main.IsEmpty() {
		return
	}
	mw := m.main.MeanCandleWidth()
	last := m.main.LastUnit()
	xStart := max(last-float64(m.cfg.DefaultVisibleCandles)*mw, m.main.FirstUnit())
	xEnd := last + m.scale.Offsets().Right*mw
	m.scale.ForceXScale(xStart, xEnd)
}
