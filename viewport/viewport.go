// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package viewport

import (
	"chartcore/chartunit"
	"chartcore/chartval"
	"chartcore/observable"
)

// State is an atomic snapshot of a viewport.
type State struct {
	XStart   float64
	XEnd     float64
	YStart   float64
	YEnd     float64
	ZoomX    float64
	ZoomY    float64
	InverseY bool
}

// Bounds is the pixel area of a pane.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// xAxis is shared by reference between X-synchronized viewports.
type xAxis struct {
	start   float64
	end     float64
	zoom    float64
	members []*Model
}

type Model struct {
	bounds   Bounds
	x        *xAxis
	yStart   float64
	yEnd     float64
	zoomY    float64
	inverseY bool
	changed  *observable.Subject[State]
}

func NewModel() *Model {
	m := &Model{changed: observable.NewSubject[State]()}
	m.x = &xAxis{members: []*Model{m}}
	return m
}

// Changed fires after every effective change. X changes are fired on all synchronized models.
func (m *Model) Changed() *observable.Subject[State] {
	return m.changed
}

func (m *Model) Bounds() Bounds {
	return m.bounds
}

// SetBounds updates the pixel area and recalculates both zoom values.
func (m *Model) SetBounds(b Bounds) {
	m.bounds = b
	m.x.zoom = m.CalculateZoomX(m.x.start, m.x.end)
	m.zoomY = m.CalculateZoomY(m.yStart, m.yEnd)
	m.fireX()
}

func (m *Model) Export() State {
	return State{
		XStart:   m.x.start,
		XEnd:     m.x.end,
		YStart:   m.yStart,
		YEnd:     m.yEnd,
		ZoomX:    m.x.zoom,
		ZoomY:    m.zoomY,
		InverseY: m.inverseY,
	}
}

// Apply sets all fields of the state at once and fires a single notification.
func (m *Model) Apply(s State) {
	initial := m.Export()
	if initial == s {
		return
	}
	m.x.start = s.XStart
	m.x.end = s.XEnd
	m.x.zoom = s.ZoomX
	m.yStart = s.YStart
	m.yEnd = s.YEnd
	m.zoomY = s.ZoomY
	m.inverseY = s.InverseY
	if initial.XStart != s.XStart || initial.XEnd != s.XEnd || initial.ZoomX != s.ZoomX {
		m.fireX()
	} else {
		m.fire()
	}
}

func (m *Model) SetXScale(xStart, xEnd float64, fire bool) {
	m.x.start = xStart
	m.x.end = xEnd
	m.x.zoom = m.CalculateZoomX(xStart, xEnd)
	if fire {
		m.fireX()
	}
}

func (m *Model) SetYScale(yStart, yEnd float64, fire bool) {
	m.yStart = yStart
	m.yEnd = yEnd
	m.zoomY = m.CalculateZoomY(yStart, yEnd)
	if fire {
		m.fire()
	}
}

func (m *Model) SetInverseY(inverse bool) {
	if m.inverseY == inverse {
		return
	}
	m.inverseY = inverse
	m.fire()
}

// RecalculateZoomX keeps the bounds and recalculates the zoom from the current pixel width.
func (m *Model) RecalculateZoomX(fire bool) {
	m.x.zoom = m.CalculateZoomX(m.x.start, m.x.end)
	if fire {
		m.fireX()
	}
}

func (m *Model) RecalculateZoomY(fire bool) {
	m.zoomY = m.CalculateZoomY(m.yStart, m.yEnd)
	if fire {
		m.fire()
	}
}

func (m *Model) CalculateZoomX(xStart, xEnd float64) float64 {
	return chartunit.CalculateZoom(xEnd-xStart, m.bounds.Width)
}

func (m *Model) CalculateZoomY(yStart, yEnd float64) float64 {
	return chartunit.CalculateZoom(yEnd-yStart, m.bounds.Height)
}

func (m *Model) ToX(u float64) float64 {
	return m.bounds.X + chartunit.UnitToPixels(u-m.x.start, m.x.zoom)
}

// ToY returns the pixel position of a Y value. Larger values are drawn higher unless Y is inverted.
func (m *Model) ToY(u float64) float64 {
	if m.inverseY {
		return m.bounds.Y + chartunit.UnitToPixels(u-m.yStart, m.zoomY)
	}
	return m.bounds.Y + m.bounds.Height - chartunit.UnitToPixels(u-m.yStart, m.zoomY)
}

func (m *Model) FromX(px float64) float64 {
	return m.x.start + chartunit.PixelsToUnits(px-m.bounds.X, m.x.zoom)
}

func (m *Model) FromY(px float64) float64 {
	if m.inverseY {
		return m.yStart + chartunit.PixelsToUnits(px-m.bounds.Y, m.zoomY)
	}
	return m.yStart + chartunit.PixelsToUnits(m.bounds.Y+m.bounds.Height-px, m.zoomY)
}

// XPixels converts an X distance in units to pixels.
func (m *Model) XPixels(units float64) float64 {
	return chartunit.UnitToPixels(units, m.x.zoom)
}

func (m *Model) YPixels(units float64) float64 {
	return chartunit.UnitToPixels(units, m.zoomY)
}

// IsViewportValid must be checked before drawing.
func (m *Model) IsViewportValid() bool {
	return m.x.start != m.x.end &&
		m.yStart != m.yEnd &&
		chartval.IsFinite(m.yStart) &&
		chartval.IsFinite(m.yEnd)
}

func (m *Model) fire() {
	m.changed.Publish(m.Export())
}

func (m *Model) fireX() {
	for _, member := range m.x.members {
		member.fire()
	}
}
