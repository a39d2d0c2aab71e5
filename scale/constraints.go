// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package scale

import (
	"chartcore/viewport"

	"golang.org/x/exp/slices"
)

// XConstraint receives the state before the change and the candidate so far,
// and returns a possibly clamped candidate.
type XConstraint func(initial, candidate viewport.State) viewport.State

type namedConstraint struct {
	name string
	fn   XConstraint
}

// AddXConstraint registers a constraint. Constraints run in registration order,
// so each one sees the result of the previous ones.
func (m *Model) AddXConstraint(name string, c XConstraint) {
	for i := range m.constraints {
		if m.constraints[i].name == name {
			m.constraints[i].fn = c
			return
		}
	}
	m.constraints = append(m.constraints, namedConstraint{name: name, fn: c})
}

func (m *Model) RemoveXConstraint(name string) {
	m.constraints = slices.DeleteFunc(m.constraints, func(c namedConstraint) bool { return c.name == name })
}

func (m *Model) XConstraintNames() []string {
	names := make([]string, len(m.constraints))
	for i, c := range m.constraints {
		names[i] = c.name
	}
	return names
}

// DataRange provides the X extent of the loaded data.
type DataRange interface {
	// FirstUnit and LastUnit return the start of the first and the end of the last candle.
	FirstUnit() float64
	LastUnit() float64
	MeanCandleWidth() float64
	IsEmpty() bool
}

// CandleEdgesConstraint keeps at least marginCandles candles visible at either end of the data.
// The span of the candidate is kept, the range is shifted.
func CandleEdgesConstraint(data DataRange, marginCandles int) XConstraint {
	return func(initial, candidate viewport.State) viewport.State {
		if data.IsEmpty() || marginCandles <= 0 {
			return candidate
		}
		margin := float64(marginCandles) * data.MeanCandleWidth()
		span := candidate.XEnd - candidate.XStart
		first := data.FirstUnit()
		last := data.LastUnit()
		// Less data than the margin: keep whatever is available.
		margin = min(margin, last-first)
		if maxStart := last - margin; candidate.XStart > maxStart {
			candidate.XStart = maxStart
			candidate.XEnd = maxStart + span
		}
		if minEnd := first + margin; candidate.XEnd < minEnd {
			candidate.XEnd = minEnd
			candidate.XStart = minEnd - span
		}
		return candidate
	}
}
