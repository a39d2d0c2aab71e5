// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package scale

import (
	"chartcore/chartunit"
	"chartcore/viewport"
	"time"

	"github.com/sirupsen/logrus"
)

// SetXScale changes the visible X range. The request is dropped if a zoom limit would be
// exceeded. It returns false if the viewport was not changed.
func (m *Model) SetXScale(xStart, xEnd float64, animate bool) bool {
	m.HaltAnimation()
	initial := m.Export()
	// Zoom 0 means it was never calculated, e.g. because the pane had no size yet.
	if initial.XStart == xStart && initial.XEnd == xEnd && initial.ZoomX > 0 {
		m.zoomReached = ZoomReached{}
		return false
	}
	candidate := initial
	candidate.XStart = xStart
	candidate.XEnd = xEnd
	candidate.ZoomX = m.CalculateZoomX(xStart, xEnd)
	return m.applyXCandidate(initial, candidate, animate)
}

// ForceXScale sets the X range without constraints or zoom limits.
func (m *Model) ForceXScale(xStart, xEnd float64) {
	m.HaltAnimation()
	candidate := m.Export()
	candidate.XStart = xStart
	candidate.XEnd = xEnd
	candidate.ZoomX = m.CalculateZoomX(xStart, xEnd)
	m.zoomReached = ZoomReached{}
	if m.opts.Auto {
		m.autoScale.AutoScaleYViewportTransformer(&candidate, m.Bounds().Height)
	}
	m.Apply(candidate)
}

func (m *Model) applyXCandidate(initial, candidate viewport.State, animate bool) bool {
	for _, c := range m.constraints {
		candidate = c.fn(initial, candidate)
	}
	candidate.ZoomX = m.CalculateZoomX(candidate.XStart, candidate.XEnd)

	// Panning keeps the zoom, only zoom changes are checked against the limits.
	m.zoomReached = ZoomReached{}
	if candidate.ZoomX != initial.ZoomX {
		zoomIn := candidate.ZoomX < initial.ZoomX
		m.zoomReached = m.CalculateZoomReached(candidate.ZoomX, zoomIn)
		if m.zoomReached.ZoomIn || m.zoomReached.ZoomOut {
			m.log.WithFields(logrus.Fields{
				"zoomX":   candidate.ZoomX,
				"zoomIn":  m.zoomReached.ZoomIn,
				"zoomOut": m.zoomReached.ZoomOut,
			}).Debug("zoom limit reached")
			return false
		}
	}

	locked := m.opts.LockPriceToBarRatio && m.changeYToKeepRatio(initial, &candidate)
	if !locked && m.opts.Auto {
		m.autoScale.AutoScaleYViewportTransformer(&candidate, m.Bounds().Height)
	}

	if candidate == initial {
		return false
	}
	if animate && m.opts.AnimationDuration > 0 {
		m.anim.Start(initial, candidate, m.now(), m.opts.AnimationDuration)
		return true
	}
	m.Apply(candidate)
	return true
}

// ZoomXToPercent zooms around pivot, which is the relative X position in [0, 1].
// A sensitivity <= 0 uses the configured sensitivity.
func (m *Model) ZoomXToPercent(pivot float64, zoomIn bool, noAnimation bool, sensitivity float64) bool {
	if sensitivity <= 0 {
		sensitivity = m.opts.ZoomSensitivity
	}
	pivot = min(max(pivot, 0), 1)
	m.HaltAnimation()
	s := m.Export()
	norm := 1 + sensitivity
	if zoomIn {
		norm = 1 - sensitivity
	}
	delta := (s.XEnd - s.XStart) * (1 - norm)
	return m.SetXScale(s.XStart+delta*pivot, s.XEnd-delta*(1-pivot), !noAnimation)
}

// MoveXStart translates the X range so that it starts at xStart. The zoom is kept.
// No constraints are applied and nothing is animated.
func (m *Model) MoveXStart(xStart float64) {
	m.HaltAnimation()
	s := m.Export()
	delta := xStart - s.XStart
	if delta == 0 {
		return
	}
	s.XStart += delta
	s.XEnd += delta
	if m.opts.Auto {
		m.autoScale.AutoScaleYViewportTransformer(&s, m.Bounds().Height)
	}
	m.Apply(s)
}

// MoveXByPx pans by a pixel distance, e.g. from a drag gesture.
func (m *Model) MoveXByPx(dx float64) bool {
	m.HaltAnimation()
	s := m.Export()
	if s.ZoomX <= 0 {
		return false
	}
	units := chartunit.PixelsToUnits(dx, s.ZoomX)
	return m.SetXScale(s.XStart-units, s.XEnd-units, false)
}

// MoveYByPx pans Y by a pixel distance and disables auto scaling.
func (m *Model) MoveYByPx(dy float64) {
	m.HaltAnimation()
	s := m.Export()
	if s.ZoomY <= 0 {
		return
	}
	units := chartunit.PixelsToUnits(dy, s.ZoomY)
	if s.InverseY {
		units = -units
	}
	m.opts.Auto = false
	m.SetYScale(s.YStart+units, s.YEnd+units)
}

// SetYScale sets Y bounds directly.
func (m *Model) SetYScale(yStart, yEnd float64) {
	m.HaltAnimation()
	s := m.Export()
	if s.YStart == yStart && s.YEnd == yEnd && s.ZoomY > 0 {
		return
	}
	m.Model.SetYScale(yStart, yEnd, true)
}

func (m *Model) IsAnimating() bool {
	return m.anim.InProgress()
}

// Tick advances a running animation. It returns true while the animation needs more frames.
func (m *Model) Tick(now time.Time) bool {
	if !m.anim.InProgress() {
		return false
	}
	if m.anim.Done(now) {
		m.HaltAnimation()
		return false
	}
	m.Apply(m.anim.Frame(now))
	return true
}

// HaltAnimation snaps a running animation to its target.
func (m *Model) HaltAnimation() {
	if target, ok := m.anim.Finish(); ok {
		m.Apply(target)
	}
}
