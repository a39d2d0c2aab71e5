// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package scale

import (
	"chartcore/animation"
	"chartcore/autoscale"
	"chartcore/chartunit"
	"chartcore/chartval"
	"chartcore/logging"
	"chartcore/observable"
	"chartcore/viewport"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Zoom values are compared using this tolerance.
const ZoomEpsilon = 0.001

const DefaultZoomSensitivity = 0.25

type Options struct {
	Auto                bool
	LockPriceToBarRatio bool
	// Zooming in stops if fewer candles would be visible.
	MinCandles int
	// Zooming out stops if candles would become narrower.
	MinCandleWidthPx  float64
	AnimationDuration time.Duration
	ZoomSensitivity   float64
}

func DefaultOptions() Options {
	return Options{
		Auto:              true,
		MinCandles:        5,
		MinCandleWidthPx:  1,
		AnimationDuration: 200 * time.Millisecond,
		ZoomSensitivity:   DefaultZoomSensitivity,
	}
}

// CandleWidthSource provides the mean candle width in X units.
type CandleWidthSource interface {
	MeanCandleWidth() float64
}

type ZoomReached struct {
	ZoomIn  bool
	ZoomOut bool
}

// Offsets are the paddings around the data. Top and Bottom are percentages, Right is in candles.
type Offsets struct {
	Top    float64
	Bottom float64
	Right  float64
}

// Model extends the viewport with constraints, auto scaling and animation.
// All calls have to be made from the same goroutine.
type Model struct {
	*viewport.Model
	opts           Options
	autoScale      *autoscale.Model
	constraints    []namedConstraint
	zoomReached    ZoomReached
	anim           animation.Animation
	offsets        Offsets
	offsetsChanged *observable.Subject[Offsets]
	widthSource    CandleWidthSource
	now            func() time.Time
	log            *logrus.Entry
}

func NewModel(opts Options) *Model {
	if opts.ZoomSensitivity <= 0 {
		opts.ZoomSensitivity = DefaultZoomSensitivity
	}
	m := &Model{
		Model:          viewport.NewModel(),
		opts:           opts,
		autoScale:      autoscale.NewModel(),
		offsetsChanged: observable.NewSubject[Offsets](),
		now:            time.Now,
		log:            logging.Component("scale"),
	}
	m.autoScale.AddPostProcessor(autoscale.OffsetsPostProcessorName, autoscale.OffsetsPostProcessor(func() autoscale.Padding {
		return autoscale.Padding{Top: m.offsets.Top, Bottom: m.offsets.Bottom}
	}))
	return m
}

// SetClock replaces the time source used for animations.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Model) Options() Options {
	return m.opts
}

func (m *Model) AutoScale() *autoscale.Model {
	return m.autoScale
}

func (m *Model) SetCandleWidthSource(s CandleWidthSource) {
	m.widthSource = s
}

func (m *Model) ZoomReached() ZoomReached {
	return m.zoomReached
}

func (m *Model) Offsets() Offsets {
	return m.offsets
}

func (m *Model) OffsetsChanged() *observable.Subject[Offsets] {
	return m.offsetsChanged
}

func (m *Model) SetOffsets(o Offsets) {
	if m.offsets == o {
		return
	}
	m.offsets = o
	m.offsetsChanged.Publish(o)
	m.DoAutoYScale()
}

func (m *Model) SetAutoScale(auto bool) {
	m.opts.Auto = auto
	if auto {
		m.DoAutoYScale()
	}
}

func (m *Model) IsAutoScale() bool {
	return m.opts.Auto
}

func (m *Model) SetLockPriceToBarRatio(lock bool) {
	m.opts.LockPriceToBarRatio = lock
}

func (m *Model) SetBounds(b viewport.Bounds) {
	m.HaltAnimation()
	m.Model.SetBounds(b)
	m.DoAutoYScale()
}

func (m *Model) meanCandleWidth() float64 {
	if m.widthSource == nil {
		return 1
	}
	w := m.widthSource.MeanCandleWidth()
	if w <= 0 || !chartval.IsFinite(w) {
		return 1
	}
	return w
}

// CalculateZoomReached checks whether zoomX would exceed the zoom limit in the given direction.
func (m *Model) CalculateZoomReached(zoomX float64, zoomIn bool) ZoomReached {
	width := m.Bounds().Width
	if width <= 0 {
		return ZoomReached{}
	}
	meanWidth := m.meanCandleWidth()
	var r ZoomReached
	if m.opts.MinCandles > 0 {
		maxZoomIn := float64(m.opts.MinCandles) * meanWidth / width
		r.ZoomIn = zoomIn && maxZoomIn-zoomX >= ZoomEpsilon
	}
	if m.opts.MinCandleWidthPx > 0 {
		maxZoomOut := meanWidth / m.opts.MinCandleWidthPx
		r.ZoomOut = !zoomIn && zoomX-maxZoomOut >= ZoomEpsilon
	}
	return r
}

// DoAutoYScale recalculates Y from the data if auto scaling is enabled.
// While animating, the target of the animation is rescaled instead.
func (m *Model) DoAutoYScale() {
	if !m.opts.Auto {
		return
	}
	if m.anim.InProgress() {
		target := m.anim.Target()
		if m.autoScale.AutoScaleYViewportTransformer(&target, m.Bounds().Height) {
			m.anim.Retarget(target)
		}
		return
	}
	s := m.Export()
	if m.autoScale.AutoScaleYViewportTransformer(&s, m.Bounds().Height) {
		m.Apply(s)
	}
}

// changeYToKeepRatio keeps the ratio of zoomY to zoomX, centered around the current Y range.
func (m *Model) changeYToKeepRatio(initial viewport.State, candidate *viewport.State) bool {
	if initial.ZoomX <= 0 || initial.ZoomY <= 0 {
		return false
	}
	ratio := initial.ZoomY / initial.ZoomX
	zoomY := candidate.ZoomX * ratio
	span := chartunit.PixelsToUnits(m.Bounds().Height, zoomY)
	center := (candidate.YStart + candidate.YEnd) / 2
	candidate.YStart = center - span/2
	candidate.YEnd = center + span/2
	candidate.ZoomY = zoomY
	return !math.IsNaN(span)
}
