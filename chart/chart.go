// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chart

import (
	"chartcore/calendar"
	"chartcore/chartunit"
	"chartcore/chartval"
	"chartcore/config"
	"chartcore/indapi/candles"
	"chartcore/logging"
	"chartcore/observable"
	"chartcore/scale"
	"chartcore/series"
	"chartcore/viewport"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInstrumentMismatch = errors.New("instrument mismatch")
	ErrUnknownSymbol      = errors.New("unknown symbol")
)

const (
	mainProviderName   = "main"
	edgeConstraintName = "candleEdges"
)

// SeriesData is the payload of one series: the instrument and its candles.
type SeriesData struct {
	Instrument chartval.Instrument
	Candles    []chartval.Candle
}

type SetEvent struct {
	Symbol string
	Count  int
}

type UpdateEvent struct {
	Symbol    string
	Prepended int
	Appended  int
	Dropped   int
}

// PrependEvent reports candles which were inserted before the first candle.
// Width is the X distance the viewport was moved to keep showing the same candles.
type PrependEvent struct {
	Count int
	Width float64
}

type secondarySeries struct {
	// Candles as received, before they were aligned to the main series.
	raw   []chartval.Candle
	model *series.CandleSeriesModel
}

// Model is the chart orchestrator. It owns the main series, comparison series,
// indicator overlays and the scale of the price pane.
// It is not thread safe, all calls have to be made from the same goroutine.
type Model struct {
	id               uuid.UUID
	cfg              config.ChartConfig
	scale            *scale.Model
	main             *series.CandleSeriesModel
	secondaries      []*secondarySeries
	overlays         map[string]*overlay
	pixels           *chartunit.PixelContext
	candlesSet       *observable.Subject[SetEvent]
	candlesUpdated   *observable.Subject[UpdateEvent]
	candlesPrepended *observable.Subject[PrependEvent]
	redraw           *observable.Subject[viewport.State]
	inScaleChange    bool
	log              *logrus.Entry
}

// ScaleOptions converts the chart configuration to options of the price scale.
func ScaleOptions(cfg config.ChartConfig) scale.Options {
	return scale.Options{
		Auto:                cfg.AutoScale,
		LockPriceToBarRatio: cfg.LockPriceToBarRatio,
		MinCandles:          cfg.MinCandles,
		MinCandleWidthPx:    cfg.MinCandleWidthPx,
		AnimationDuration:   time.Duration(cfg.AnimationMs) * time.Millisecond,
		ZoomSensitivity:     cfg.ZoomSensitivity,
	}
}

// NewModel creates an empty chart. A nil pixel context snaps to logical pixels.
func NewModel(cfg config.ChartConfig, pixels *chartunit.PixelContext) *Model {
	id := uuid.New()
	m := &Model{
		id:               id,
		cfg:              cfg,
		scale:            scale.NewModel(ScaleOptions(cfg)),
		main:             series.NewCandleSeriesModel(mainProviderName),
		overlays:         make(map[string]*overlay),
		pixels:           pixels,
		candlesSet:       observable.NewSubject[SetEvent](),
		candlesUpdated:   observable.NewSubject[UpdateEvent](),
		candlesPrepended: observable.NewSubject[PrependEvent](),
		redraw:           observable.NewSubject[viewport.State](),
		log:              logging.Component("chart").WithField("chart", id.String()),
	}
	if cfg.Equivolume {
		m.main.SetWidthCalculator(series.EquivolumeWidth{})
	}
	if cfg.TradingDays {
		m.main.SetExtrapolatorFunc(tradingDayExtrapolator(calendar.NewUSBankCalendar()))
	}
	m.main.SetAxisType(cfg.Axis())
	m.main.SetInstrument(chartval.Instrument{Symbol: cfg.Symbol})

	m.scale.SetCandleWidthSource(m.main)
	m.scale.AutoScale().SetHighLowProvider(mainProviderName, m.main)
	m.scale.AddXConstraint(edgeConstraintName, scale.CandleEdgesConstraint(m.main, cfg.EdgeMarginCandles))
	m.scale.SetOffsets(scale.Offsets{
		Top:    cfg.TopOffsetPercent,
		Bottom: cfg.BottomOffsetPercent,
		Right:  cfg.RightOffsetCandles,
	})
	m.scale.Changed().Subscribe(m.onScaleChanged)

	for _, ic := range cfg.Indicators {
		if err := m.AddOverlay(ic.IndicatorId, ic.Properties); err != nil {
			m.log.WithError(err).WithField("indicator", ic.IndicatorId).Warn("skipping configured indicator")
		}
	}
	m.log.WithField("symbol", cfg.Symbol).Debug("chart created")
	return m
}

// Daily candles skip weekends and bank holidays, other resolutions use the calendar.
func tradingDayExtrapolator(cal calendar.BankCalendar) series.ExtrapolatorFunc {
	return func(period time.Duration) candles.Extrapolator {
		if r, ok := candles.ResolutionForPeriod(period); ok && r == candles.CandleOneDay {
			return cal.TradingDayExtrapolator()
		}
		return candles.ExtrapolatorForPeriod(period)
	}
}

func (m *Model) Id() uuid.UUID {
	return m.id
}

func (m *Model) Scale() *scale.Model {
	return m.scale
}

func (m *Model) MainSeries() *series.CandleSeriesModel {
	return m.main
}

// SecondarySeries returns the comparison series of symbol.
func (m *Model) SecondarySeries(symbol string) (*series.CandleSeriesModel, bool) {
	s := m.findSecondary(symbol)
	if s == nil {
		return nil, false
	}
	return s.model, true
}

// SecondarySymbols returns the symbols of the comparison series in display order.
func (m *Model) SecondarySymbols() []string {
	r := make([]string, len(m.secondaries))
	for i, s := range m.secondaries {
		r[i] = s.model.Name()
	}
	return r
}

func (m *Model) CandlesSet() *observable.Subject[SetEvent] {
	return m.candlesSet
}

func (m *Model) CandlesUpdated() *observable.Subject[UpdateEvent] {
	return m.candlesUpdated
}

func (m *Model) CandlesPrepended() *observable.Subject[PrependEvent] {
	return m.candlesPrepended
}

func (m *Model) OffsetsChanged() *observable.Subject[scale.Offsets] {
	return m.scale.OffsetsChanged()
}

// Redraw fires whenever the visible content changed.
func (m *Model) Redraw() *observable.Subject[viewport.State] {
	return m.redraw
}

func (m *Model) SetBounds(b viewport.Bounds) {
	m.scale.SetBounds(b)
}

// SetAxisType changes the Y axis of all candle series and price overlays.
// Comparison series only take part in auto scaling on a percent axis.
func (m *Model) SetAxisType(a chartunit.AxisType) {
	if m.main.AxisType() == a {
		return
	}
	m.main.SetAxisType(a)
	for _, s := range m.secondaries {
		s.model.SetAxisType(a)
		m.registerSecondary(s)
	}
	m.recalculateOverlayVisuals(true)
	m.scale.DoAutoYScale()
	m.publishRedraw()
}

func (m *Model) AxisType() chartunit.AxisType {
	return m.main.AxisType()
}

// GetSeriesInViewport returns the visible candles of the main series.
func (m *Model) GetSeriesInViewport(xStart, xEnd *float64) [][]chartval.VisualCandle {
	return m.main.GetSeriesInViewport(xStart, xEnd)
}

// SnapX returns the pixel position of u, rounded to the device pixel grid.
func (m *Model) SnapX(u float64) float64 {
	return m.pixels.RoundToDPR(m.scale.ToX(u))
}

func (m *Model) SnapY(u float64) float64 {
	return m.pixels.RoundToDPR(m.scale.ToY(u))
}

// Tick advances a running viewport animation and returns true while more frames are needed.
func (m *Model) Tick(now time.Time) bool {
	return m.scale.Tick(now)
}

func (m *Model) onScaleChanged(s viewport.State) {
	if m.inScaleChange {
		return
	}
	m.inScaleChange = true
	defer func() { m.inScaleChange = false }()

	baseline := m.main.Baseline()
	m.recalculateViewportIndexes(s.XStart, s.XEnd)
	if b := m.main.Baseline(); b != baseline && !(math.IsNaN(b) && math.IsNaN(baseline)) {
		// A percent axis follows the first visible candle.
		m.recalculateOverlayVisuals(true)
		m.scale.DoAutoYScale()
	}
	m.autoScalePanes()
	m.publishRedraw()
}

func (m *Model) recalculateViewportIndexes(xStart, xEnd float64) {
	m.main.RecalculateDataViewportIndexes(xStart, xEnd)
	for _, s := range m.secondaries {
		s.model.RecalculateDataViewportIndexes(xStart, xEnd)
	}
	for _, o := range m.overlays {
		for _, l := range o.lines {
			l.RecalculateDataViewportIndexes(xStart, xEnd)
		}
	}
}

func (m *Model) publishRedraw() {
	m.redraw.Publish(m.scale.Export())
}
