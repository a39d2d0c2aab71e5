// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chart

import (
	"chartcore/autoscale"
	"chartcore/chartval"
	"chartcore/indapi"
	"chartcore/indapi/indicators"
	"chartcore/scale"
	"chartcore/series"
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// overlay is an indicator computed from the main series.
// Price overlays are drawn on the price pane, other indicators get their own X synchronized pane.
type overlay struct {
	indicator indapi.IndicatorData
	lines     []*series.DataSeriesModel
	pane      *scale.Model
}

func overlayName(id indapi.IndicatorId, line int) string {
	return fmt.Sprintf("overlay/%s/%d", id, line)
}

// AddOverlay adds an indicator, replacing an existing one with the same id.
func (m *Model) AddOverlay(id indapi.IndicatorId, properties map[string]string) error {
	ind, err := indicators.Create(id, properties)
	if err != nil {
		return fmt.Errorf("unable to add overlay: %w", err)
	}
	m.RemoveOverlay(id)
	o := &overlay{indicator: ind}
	if ind.GetSubPlotType() != indapi.SubPlotTypePrice {
		o.pane = scale.NewModel(scale.Options{Auto: true})
		o.pane.SyncXWith(m.scale.Model)
	}
	m.overlays[string(id)] = o
	m.updateOverlay(o)
	m.log.WithField("indicator", id).Debug("overlay added")
	return nil
}

// RemoveOverlay returns false if there is no overlay with this id.
func (m *Model) RemoveOverlay(id indapi.IndicatorId) bool {
	o, ok := m.overlays[string(id)]
	if !ok {
		return false
	}
	for i, l := range o.lines {
		m.overlayAutoScale(o).RemoveHighLowProvider(overlayName(id, i))
		l.Deactivate()
	}
	if o.pane != nil {
		o.pane.UnsyncX()
	}
	delete(m.overlays, string(id))
	m.scale.DoAutoYScale()
	return true
}

// Overlays returns the ids of all overlays, sorted.
func (m *Model) Overlays() indapi.IndicatorList {
	keys := maps.Keys(m.overlays)
	ids := make(indapi.IndicatorList, len(keys))
	for i, k := range keys {
		ids[i] = indapi.IndicatorId(k)
	}
	sort.Sort(ids)
	return ids
}

// OverlaySeries returns the lines of an overlay.
func (m *Model) OverlaySeries(id indapi.IndicatorId) ([]*series.DataSeriesModel, bool) {
	o, ok := m.overlays[string(id)]
	if !ok {
		return nil, false
	}
	return o.lines, true
}

// Pane returns the scale of an indicator which is not drawn on the price pane.
func (m *Model) Pane(id indapi.IndicatorId) (*scale.Model, bool) {
	o, ok := m.overlays[string(id)]
	if !ok || o.pane == nil {
		return nil, false
	}
	return o.pane, true
}

func (m *Model) overlayAutoScale(o *overlay) *autoscale.Model {
	if o.pane != nil {
		return o.pane.AutoScale()
	}
	return m.scale.AutoScale()
}

func (m *Model) updateOverlays() {
	for _, id := range m.Overlays() {
		m.updateOverlay(m.overlays[string(id)])
	}
}

// updateOverlay recomputes the indicator from the main candles.
func (m *Model) updateOverlay(o *overlay) {
	id := o.indicator.GetId()
	var lines [][]chartval.DataSeriesPoint
	if !m.main.IsEmpty() {
		lines = o.indicator.Update(m.main.DataPoints())
	}
	followAxis := o.pane == nil
	auto := m.overlayAutoScale(o)
	for len(o.lines) < len(lines) {
		i := len(o.lines)
		l := series.NewDataSeriesModel(overlayName(id, i), m.main, followAxis)
		o.lines = append(o.lines, l)
		auto.SetHighLowProvider(overlayName(id, i), l)
	}
	for i, l := range o.lines {
		var points []chartval.DataSeriesPoint
		if i < len(lines) {
			points = lines[i]
		}
		l.SetDataPoints(chartval.Flat(points))
	}
}

// recalculateOverlayVisuals rebuilds the visual points after the main grid or axis changed.
func (m *Model) recalculateOverlayVisuals(priceOnly bool) {
	for _, o := range m.overlays {
		if priceOnly && o.pane != nil {
			continue
		}
		for _, l := range o.lines {
			l.RecalculateVisualPoints()
		}
	}
}

func (m *Model) autoScalePanes() {
	for _, o := range m.overlays {
		if o.pane != nil {
			o.pane.DoAutoYScale()
		}
	}
}
