// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package autoscale

import (
	"chartcore/chartval"
	"chartcore/viewport"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testProvider struct {
	active bool
	hl     chartval.HighLow
	calls  int
	states []viewport.State
}

func (p *testProvider) IsHighLowActive() bool {
	return p.active
}

func (p *testProvider) CalculateHighLow(state *viewport.State) chartval.HighLow {
	p.calls++
	if state != nil {
		p.states = append(p.states, *state)
	}
	return p.hl
}

func TestMergeProviders(t *testing.T) {
	m := NewModel()
	a := &testProvider{active: true, hl: chartval.HighLow{High: 10, Low: 2}}
	b := &testProvider{active: true, hl: chartval.HighLow{High: 8, Low: -1}}
	m.SetHighLowProvider("a", a)
	m.SetHighLowProvider("b", b)

	state := &viewport.State{XStart: 1, XEnd: 2}
	hl := m.CalculateHighLow(state)
	assert.Equal(t, 10.0, hl.High)
	assert.Equal(t, -1.0, hl.Low)
	// All providers see the same candidate state.
	assert.Equal(t, a.states, b.states)
}

func TestInactiveProvidersIgnored(t *testing.T) {
	m := NewModel()
	a := &testProvider{active: false, hl: chartval.HighLow{High: 100, Low: -100}}
	b := &testProvider{active: true, hl: chartval.HighLow{High: 8, Low: 4}}
	m.SetHighLowProvider("a", a)
	m.SetHighLowProvider("b", b)

	hl := m.CalculateHighLow(nil)
	assert.Equal(t, 8.0, hl.High)
	assert.Equal(t, 4.0, hl.Low)
	assert.Equal(t, 0, a.calls)
}

func TestNoActiveProvider(t *testing.T) {
	m := NewModel()
	m.SetHighLowProvider("a", &testProvider{active: false})
	processed := false
	m.AddPostProcessor("p", func(hl chartval.HighLow) chartval.HighLow {
		processed = true
		return hl
	})
	hl := m.CalculateHighLow(nil)
	assert.Equal(t, chartval.EmptyHighLow, hl)
	assert.False(t, processed)

	state := viewport.State{YStart: 3, YEnd: 7, ZoomY: 1}
	assert.False(t, m.AutoScaleYViewportTransformer(&state, 100))
	assert.Equal(t, viewport.State{YStart: 3, YEnd: 7, ZoomY: 1}, state)
}

func TestPostProcessorOrder(t *testing.T) {
	m := NewModel()
	m.SetHighLowProvider("a", &testProvider{active: true, hl: chartval.HighLow{High: 10, Low: 0}})
	m.AddPostProcessor("double", func(hl chartval.HighLow) chartval.HighLow {
		hl.High *= 2
		return hl
	})
	m.AddPostProcessor("add", func(hl chartval.HighLow) chartval.HighLow {
		hl.High += 1
		return hl
	})
	assert.Equal(t, 21.0, m.CalculateHighLow(nil).High)

	m.RemovePostProcessor("double")
	assert.Equal(t, 11.0, m.CalculateHighLow(nil).High)
}

func TestTransformerSetsYBounds(t *testing.T) {
	m := NewModel()
	m.SetHighLowProvider("a", &testProvider{active: true, hl: chartval.HighLow{High: 120, Low: 20}})
	state := viewport.State{XStart: 0, XEnd: 10}
	assert.True(t, m.AutoScaleYViewportTransformer(&state, 200))
	assert.Equal(t, 20.0, state.YStart)
	assert.Equal(t, 120.0, state.YEnd)
	assert.Equal(t, 0.5, state.ZoomY)
}

func TestOffsetsPadding(t *testing.T) {
	m := NewModel()
	m.SetHighLowProvider("a", &testProvider{active: true, hl: chartval.HighLow{High: 110, Low: 10}})
	m.AddPostProcessor(OffsetsPostProcessorName, OffsetsPostProcessor(func() Padding {
		return Padding{Top: 10, Bottom: 5}
	}))
	hl := m.CalculateHighLow(nil)
	assert.Equal(t, 120.0, hl.High)
	assert.Equal(t, 5.0, hl.Low)
}

func TestOffsetsFlatData(t *testing.T) {
	m := NewModel()
	m.SetHighLowProvider("a", &testProvider{active: true, hl: chartval.HighLow{High: 7, Low: 7}})
	m.AddPostProcessor(OffsetsPostProcessorName, OffsetsPostProcessor(func() Padding {
		return Padding{Top: 50, Bottom: 50}
	}))
	hl := m.CalculateHighLow(nil)
	assert.Equal(t, 8.0, hl.High)
	assert.Equal(t, 6.0, hl.Low)

	state := viewport.State{}
	assert.True(t, m.AutoScaleYViewportTransformer(&state, 100))
	assert.Greater(t, state.YEnd, state.YStart)
}

func TestProviderNamesSorted(t *testing.T) {
	m := NewModel()
	m.SetHighLowProvider("zeta", &testProvider{})
	m.SetHighLowProvider("alpha", &testProvider{})
	m.SetHighLowProvider("main", &testProvider{})
	assert.Equal(t, []string{"alpha", "main", "zeta"}, m.ProviderNames())
	m.RemoveHighLowProvider("main")
	assert.Equal(t, []string{"alpha", "zeta"}, m.ProviderNames())
}
