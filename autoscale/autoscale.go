// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package autoscale

import (
	"chartcore/chartunit"
	"chartcore/chartval"
	"chartcore/viewport"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// HighLowProvider is implemented by every series which takes part in auto scaling.
type HighLowProvider interface {
	IsHighLowActive() bool
	// CalculateHighLow returns the extent for the X range of the candidate state.
	CalculateHighLow(state *viewport.State) chartval.HighLow
}

// PostProcessor may widen or narrow the merged extent.
type PostProcessor func(hl chartval.HighLow) chartval.HighLow

type namedPostProcessor struct {
	name string
	fn   PostProcessor
}

type Model struct {
	providers      map[string]HighLowProvider
	postProcessors []namedPostProcessor
}

func NewModel() *Model {
	return &Model{providers: make(map[string]HighLowProvider)}
}

func (m *Model) SetHighLowProvider(name string, p HighLowProvider) {
	m.providers[name] = p
}

func (m *Model) RemoveHighLowProvider(name string) {
	delete(m.providers, name)
}

func (m *Model) ProviderNames() []string {
	names := maps.Keys(m.providers)
	slices.Sort(names)
	return names
}

// AddPostProcessor appends a post-processor. Post-processors run in registration order.
// Adding a name twice replaces the existing entry in place.
func (m *Model) AddPostProcessor(name string, fn PostProcessor) {
	for i := range m.postProcessors {
		if m.postProcessors[i].name == name {
			m.postProcessors[i].fn = fn
			return
		}
	}
	m.postProcessors = append(m.postProcessors, namedPostProcessor{name: name, fn: fn})
}

func (m *Model) RemovePostProcessor(name string) {
	m.postProcessors = slices.DeleteFunc(m.postProcessors, func(p namedPostProcessor) bool { return p.name == name })
}

// CalculateHighLow merges the extents of all active providers for the candidate state.
// If there is no data, chartval.EmptyHighLow is returned and no post-processor is run.
func (m *Model) CalculateHighLow(state *viewport.State) chartval.HighLow {
	var values []chartval.HighLow
	for _, name := range m.ProviderNames() {
		p := m.providers[name]
		if p.IsHighLowActive() {
			values = append(values, p.CalculateHighLow(state))
		}
	}
	hl := chartval.MergeHighLow(values...)
	if hl.IsEmpty() {
		return chartval.EmptyHighLow
	}
	for _, p := range m.postProcessors {
		hl = p.fn(hl)
	}
	return hl
}

// AutoScaleYViewportTransformer sets the Y bounds of the candidate state to the merged extent.
// It returns false and leaves the state untouched if there is no data.
func (m *Model) AutoScaleYViewportTransformer(state *viewport.State, heightPx float64) bool {
	hl := m.CalculateHighLow(state)
	if hl.IsEmpty() {
		return false
	}
	hl = ensureMinHeight(hl)
	state.YStart = hl.Low
	state.YEnd = hl.High
	state.ZoomY = chartunit.CalculateZoom(hl.High-hl.Low, heightPx)
	return true
}

// Flat data gets a height of one unit, centered around the value.
func ensureMinHeight(hl chartval.HighLow) chartval.HighLow {
	if hl.High == hl.Low {
		hl.High += 0.5
		hl.Low -= 0.5
	}
	return hl
}
