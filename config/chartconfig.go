// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"chartcore/chartunit"
	"chartcore/indapi/candles"
)

type ChartConfig struct {
	Symbol string
	// Secondary symbols are shown as comparison series.
	Secondary  []string `yaml:",omitempty"`
	Resolution string
	// "regular", "percent" or "logarithmic"
	AxisType   string `yaml:",omitempty"`
	Equivolume bool   `yaml:",omitempty"`

	AutoScale           bool
	AutoScaleOnCandles  bool
	LockPriceToBarRatio bool `yaml:",omitempty"`
	// Restore the visible time range after all series were replaced.
	ApplyPreviousTimeframe bool
	// Skip weekends and holidays when extrapolating daily candles.
	TradingDays bool `yaml:",omitempty"`

	MinCandles            int
	MinCandleWidthPx      float64
	DefaultVisibleCandles int
	// Empty space right of the last candle, in candles.
	RightOffsetCandles float64
	// Scrolling stops if fewer candles would remain visible at either end.
	EdgeMarginCandles   int
	TopOffsetPercent    float64
	BottomOffsetPercent float64
	AnimationMs         int
	ZoomSensitivity     float64

	Indicators []IndicatorConfig `yaml:",omitempty"`
}

func NewChartConfig() ChartConfig {
	return ChartConfig{
		Symbol:                 "SPY",
		Resolution:             candles.CandleOneDay.String(),
		AxisType:               chartunit.AxisRegular.String(),
		AutoScale:              true,
		AutoScaleOnCandles:     true,
		ApplyPreviousTimeframe: true,
		MinCandles:             5,
		MinCandleWidthPx:       1,
		DefaultVisibleCandles:  100,
		RightOffsetCandles:     5,
		EdgeMarginCandles:      2,
		TopOffsetPercent:       10,
		BottomOffsetPercent:    10,
		AnimationMs:            200,
		ZoomSensitivity:        0.25,
		Indicators: []IndicatorConfig{
			{IndicatorId: "sma", Properties: map[string]string{"Time Periods": "20"}},
		},
	}
}

// sanitize replaces invalid values by their defaults.
func (c *ChartConfig) sanitize() {
	def := NewChartConfig()
	if len(c.Symbol) == 0 {
		c.Symbol = def.Symbol
	}
	if _, err := candles.ParseCandleResolution(c.Resolution); err != nil {
		c.Resolution = def.Resolution
	}
	if _, err := chartunit.AxisTypeFromString(c.AxisType); err != nil {
		c.AxisType = def.AxisType
	}
	if c.MinCandles <= 0 {
		c.MinCandles = def.MinCandles
	}
	if c.MinCandleWidthPx <= 0 {
		c.MinCandleWidthPx = def.MinCandleWidthPx
	}
	if c.DefaultVisibleCandles < c.MinCandles {
		c.DefaultVisibleCandles = max(def.DefaultVisibleCandles, c.MinCandles)
	}
	if c.RightOffsetCandles < 0 {
		c.RightOffsetCandles = 0
	}
	if c.EdgeMarginCandles < 0 {
		c.EdgeMarginCandles = 0
	}
	if c.TopOffsetPercent < 0 {
		c.TopOffsetPercent = 0
	}
	if c.BottomOffsetPercent < 0 {
		c.BottomOffsetPercent = 0
	}
	if c.AnimationMs < 0 {
		c.AnimationMs = 0
	}
	if c.ZoomSensitivity <= 0 || c.ZoomSensitivity >= 1 {
		c.ZoomSensitivity = def.ZoomSensitivity
	}
}

func (c ChartConfig) CandleResolution() candles.CandleResolution {
	r, err := candles.ParseCandleResolution(c.Resolution)
	if err != nil {
		return candles.CandleOneDay
	}
	return r
}

func (c ChartConfig) Axis() chartunit.AxisType {
	a, err := chartunit.AxisTypeFromString(c.AxisType)
	if err != nil {
		return chartunit.AxisRegular
	}
	return a
}
