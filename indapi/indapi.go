// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indapi

import (
	"chartcore/chartval"
	"errors"
	"math"
)

var (
	ErrUnknownIndicator = errors.New("unknown indicator")
	ErrInvalidProperty  = errors.New("invalid indicator property")
)

type IndicatorId string

// For sorting
type IndicatorList []IndicatorId

func (x IndicatorList) Len() int           { return len(x) }
func (x IndicatorList) Less(i, j int) bool { return x[i] < x[j] }
func (x IndicatorList) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

type SubPlotType int

const (
	// Drawn on the price pane, takes part in its auto scaling.
	SubPlotTypePrice SubPlotType = iota
	// Drawn on its own pane below the price pane, X synchronized.
	SubPlotTypeIndicator
)

// IndicatorData derives auxiliary series from the main candles.
type IndicatorData interface {
	GetId() IndicatorId
	GetProperties() map[string]string
	SetProperties(map[string]string) error
	GetSubPlotType() SubPlotType
	// Update computes the lines of the indicator. Each line has one point per candle,
	// with the timestamp and idx of that candle. Values which cannot be computed yet are NaN.
	Update(candles []chartval.Candle) [][]chartval.DataSeriesPoint
}

// Closes extracts the close prices.
func Closes(candles []chartval.Candle) []float64 {
	r := make([]float64, len(candles))
	for i := range candles {
		r[i] = candles[i].Close
	}
	return r
}

func Highs(candles []chartval.Candle) []float64 {
	r := make([]float64, len(candles))
	for i := range candles {
		r[i] = candles[i].High
	}
	return r
}

func Lows(candles []chartval.Candle) []float64 {
	r := make([]float64, len(candles))
	for i := range candles {
		r[i] = candles[i].Low
	}
	return r
}

// ToLine aligns computed values with the candles they belong to.
func ToLine(candles []chartval.Candle, values []float64) []chartval.DataSeriesPoint {
	r := make([]chartval.DataSeriesPoint, len(candles))
	for i := range candles {
		r[i] = chartval.DataSeriesPoint{Timestamp: candles[i].Timestamp, Idx: i}
		if i < len(values) {
			r[i].Close = values[i]
		} else {
			r[i].Close = math.NaN()
		}
	}
	return r
}
