// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chart

import (
	"chartcore/candlemerge"
	"chartcore/chartunit"
	"chartcore/chartval"
	"chartcore/series"
	"fmt"

	"github.com/sirupsen/logrus"
)

// SetAllSeries replaces all data. Comparison series which are not part of secondary are removed.
// The previous timeframe is restored if configured, otherwise the basic scale is applied.
func (m *Model) SetAllSeries(main SeriesData, secondary []SeriesData) {
	prev, hadTimeframe := m.VisibleTimeframe()

	m.main.SetInstrument(main.Instrument)
	m.main.SetDataPoints(chartval.Flat(candlemerge.PrepareCandles(main.Candles)))
	m.setSecondaries(secondary)
	m.updateOverlays()

	restored := false
	if hadTimeframe && m.cfg.ApplyPreviousTimeframe {
		restored = m.SetTimestampRange(prev.Start, prev.End)
	}
	if !restored {
		m.DoBasicScale()
	}
	s := m.scale.Export()
	m.recalculateViewportIndexes(s.XStart, s.XEnd)
	if m.cfg.AutoScaleOnCandles {
		m.scale.SetAutoScale(true)
	} else {
		m.scale.DoAutoYScale()
	}

	m.log.WithFields(logrus.Fields{
		"symbol":    main.Instrument.Symbol,
		"candles":   m.main.Len(),
		"secondary": len(m.secondaries),
		"restored":  restored,
	}).Info("all series set")
	m.candlesSet.Publish(SetEvent{Symbol: main.Instrument.Symbol, Count: m.main.Len()})
	m.publishRedraw()
}

// UpdateAllSeries merges candles into the main series and every comparison series.
// Each existing comparison series needs a payload with its symbol, otherwise nothing is changed.
func (m *Model) UpdateAllSeries(main SeriesData, secondary []SeriesData) error {
	if err := m.checkInstruments(main, secondary); err != nil {
		m.log.WithError(err).Error("update rejected")
		return err
	}
	updates := make(map[string][]chartval.Candle, len(secondary))
	for _, s := range secondary {
		updates[s.Instrument.Symbol] = s.Candles
	}

	r := m.main.UpdateDataPoints(candlemerge.PrepareCandles(main.Candles))
	for _, s := range m.secondaries {
		s.raw = candlemerge.UpdateCandles(s.raw, candlemerge.PrepareCandles(updates[s.model.Name()])).Candles
	}
	m.adjustSecondaries()
	m.updateOverlays()

	width := m.compensatePrepend(r.Prepended)
	m.afterUpdate()

	m.candlesUpdated.Publish(UpdateEvent{
		Symbol:    m.main.Instrument().Symbol,
		Prepended: r.Prepended,
		Appended:  r.Appended,
		Dropped:   r.Dropped,
	})
	if r.Prepended > 0 {
		m.candlesPrepended.Publish(PrependEvent{Count: r.Prepended, Width: width})
	}
	m.publishRedraw()
	return nil
}

func (m *Model) checkInstruments(main SeriesData, secondary []SeriesData) error {
	symbol := m.main.Instrument().Symbol
	if main.Instrument.Symbol != symbol {
		return fmt.Errorf("%w: main series is %s, update is for %s", ErrInstrumentMismatch, symbol, main.Instrument.Symbol)
	}
	present := make(map[string]bool, len(secondary))
	for _, s := range secondary {
		present[s.Instrument.Symbol] = true
	}
	for _, s := range m.secondaries {
		if !present[s.model.Name()] {
			return fmt.Errorf("%w: no update for comparison series %s", ErrInstrumentMismatch, s.model.Name())
		}
	}
	for _, s := range secondary {
		if m.findSecondary(s.Instrument.Symbol) == nil {
			m.log.WithField("symbol", s.Instrument.Symbol).Warn("ignoring update for unknown comparison series")
		}
	}
	return nil
}

// UpdateCandles merges candles of a single symbol. If the main series gets new candles while
// its last candle is visible, the viewport follows by the width of the new candles.
func (m *Model) UpdateCandles(update []chartval.Candle, symbol string) error {
	if symbol != m.main.Instrument().Symbol {
		s := m.findSecondary(symbol)
		if s == nil {
			return fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
		}
		r := candlemerge.UpdateCandles(s.raw, candlemerge.PrepareCandles(update))
		s.raw = r.Candles
		m.adjustSecondary(s)
		m.afterUpdate()
		m.candlesUpdated.Publish(UpdateEvent{Symbol: symbol, Prepended: r.Prepended, Appended: r.Appended, Dropped: r.Dropped})
		m.publishRedraw()
		return nil
	}

	wasEmpty := m.main.IsEmpty()
	follow := m.main.IsLastCandleVisible()
	r := m.main.UpdateDataPoints(candlemerge.PrepareCandles(update))
	m.adjustSecondaries()
	m.updateOverlays()

	var width float64
	switch {
	case wasEmpty && !m.main.IsEmpty():
		m.DoBasicScale()
	case r.Prepended > 0:
		width = m.compensatePrepend(r.Prepended)
	}
	if !wasEmpty && follow && r.Appended > 0 {
		visual := m.main.VisualPoints()
		appended := 0.0
		for _, v := range visual[len(visual)-r.Appended:] {
			appended += v.Width
		}
		m.log.WithFields(logrus.Fields{"candles": r.Appended, "width": appended}).Debug("following new candles")
		m.scale.MoveXStart(m.scale.Export().XStart + appended)
	}
	m.afterUpdate()

	m.candlesUpdated.Publish(UpdateEvent{Symbol: symbol, Prepended: r.Prepended, Appended: r.Appended, Dropped: r.Dropped})
	if r.Prepended > 0 {
		m.candlesPrepended.Publish(PrependEvent{Count: r.Prepended, Width: width})
	}
	m.publishRedraw()
	return nil
}

// compensatePrepend moves the viewport by the width of the prepended candles,
// so the same candles remain visible.
func (m *Model) compensatePrepend(count int) float64 {
	if count <= 0 {
		return 0
	}
	width := m.main.PrependedWidth(count)
	m.scale.MoveXStart(m.scale.Export().XStart + width)
	return width
}

func (m *Model) afterUpdate() {
	s := m.scale.Export()
	m.recalculateViewportIndexes(s.XStart, s.XEnd)
	m.scale.DoAutoYScale()
	m.autoScalePanes()
}

func (m *Model) findSecondary(symbol string) *secondarySeries {
	for _, s := range m.secondaries {
		if s.model.Name() == symbol {
			return s
		}
	}
	return nil
}

func (m *Model) setSecondaries(data []SeriesData) {
	keep := make(map[string]bool, len(data))
	for _, d := range data {
		keep[d.Instrument.Symbol] = true
	}
	for _, s := range m.secondaries {
		if !keep[s.model.Name()] {
			m.scale.AutoScale().RemoveHighLowProvider(secondaryProviderName(s.model.Name()))
			s.model.Deactivate()
			m.log.WithField("symbol", s.model.Name()).Debug("comparison series removed")
		}
	}

	secondaries := make([]*secondarySeries, 0, len(data))
	for _, d := range data {
		s := m.findSecondary(d.Instrument.Symbol)
		if s == nil {
			s = &secondarySeries{model: series.NewCandleSeriesModel(d.Instrument.Symbol)}
			s.model.AttachTo(m.main)
		}
		s.model.SetInstrument(d.Instrument)
		s.model.SetAxisType(m.main.AxisType())
		s.raw = candlemerge.PrepareCandles(d.Candles)
		secondaries = append(secondaries, s)
	}
	m.secondaries = secondaries
	for _, s := range m.secondaries {
		m.registerSecondary(s)
	}
	m.adjustSecondaries()
}

func secondaryProviderName(symbol string) string {
	return "secondary/" + symbol
}

// Comparison series usually have a different price level, they are scaled together
// with the main series on a percent axis only.
func (m *Model) registerSecondary(s *secondarySeries) {
	name := secondaryProviderName(s.model.Name())
	if m.main.AxisType() == chartunit.AxisPercent {
		m.scale.AutoScale().SetHighLowProvider(name, s.model)
	} else {
		m.scale.AutoScale().RemoveHighLowProvider(name)
	}
}

func (m *Model) adjustSecondaries() {
	for _, s := range m.secondaries {
		m.adjustSecondary(s)
	}
}

func (m *Model) adjustSecondary(s *secondarySeries) {
	adjusted := candlemerge.AdjustSecondaryCandles(m.main.DataPoints(), s.raw)
	s.model.SetDataPoints(chartval.Flat(adjusted))
}
