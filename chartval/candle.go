// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"math"
	"time"
)

// Candle is one OHLCV sample. Missing prices are NaN.
// Idx is the position within the owning series and is reassigned after every structural change.
type Candle struct {
	Timestamp     time.Time
	Open          float64
	High          float64
	Low           float64
	Close         float64
	Volume        float64
	Idx           int
	ImpVolatility float64 `yaml:",omitempty"`
	Vwap          float64 `yaml:",omitempty"`
	// Expansion marks a synthetic candle used for out-of-range queries.
	Expansion bool `yaml:",omitempty"`
}

func (c Candle) Time() time.Time {
	return c.Timestamp
}

func (c Candle) WithIdx(i int) Candle {
	c.Idx = i
	return c
}

// HasPrices reports whether at least one of open, high, low and close is present.
func (c Candle) HasPrices() bool {
	return !math.IsNaN(c.Open) || !math.IsNaN(c.High) || !math.IsNaN(c.Low) || !math.IsNaN(c.Close)
}

func (c Candle) IsGreen() bool {
	return IsGreenCandle(c.Open, c.Close)
}

// NewNaNCandle returns a candle without prices.
func NewNaNCandle(t time.Time) Candle {
	return Candle{
		Timestamp: t,
		Open:      math.NaN(),
		High:      math.NaN(),
		Low:       math.NaN(),
		Close:     math.NaN(),
		Volume:    math.NaN(),
	}
}

// For sorting
type CandleList []Candle

func (x CandleList) Len() int           { return len(x) }
func (x CandleList) Less(i, j int) bool { return x[i].Timestamp.Before(x[j].Timestamp) }
func (x CandleList) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

// DataSeriesPoint is the non-candle variant of a series sample.
type DataSeriesPoint struct {
	Timestamp time.Time
	Close     float64
	Idx       int
	Expansion bool
}

func (p DataSeriesPoint) Time() time.Time {
	return p.Timestamp
}

func (p DataSeriesPoint) WithIdx(i int) DataSeriesPoint {
	p.Idx = i
	return p
}

// Timestamped is implemented by every point type a series can hold.
type Timestamped interface {
	Time() time.Time
}

// Point is a timestamped value which can be renumbered.
type Point[T any] interface {
	Timestamped
	WithIdx(i int) T
}

// VisualCandle is the pixel-ready projection of a candle.
// X values are logical units, prices are axis units.
type VisualCandle struct {
	Idx        int
	Timestamp  time.Time
	StartUnit  float64
	CenterUnit float64
	Width      float64
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	Expansion  bool
}

func (v VisualCandle) Center() float64 {
	return v.CenterUnit
}

func (v VisualCandle) Time() time.Time {
	return v.Timestamp
}

func (v VisualCandle) Start() float64 {
	return v.StartUnit
}

func (v VisualCandle) End() float64 {
	return v.StartUnit + v.Width
}

type VisualSeriesPoint struct {
	Idx        int
	Timestamp  time.Time
	StartUnit  float64
	CenterUnit float64
	Width      float64
	Close      float64
}

func (v VisualSeriesPoint) Center() float64 {
	return v.CenterUnit
}

func (v VisualSeriesPoint) Time() time.Time {
	return v.Timestamp
}

func (v VisualSeriesPoint) Start() float64 {
	return v.StartUnit
}

func (v VisualSeriesPoint) End() float64 {
	return v.StartUnit + v.Width
}
