// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"chartcore/chartval"
	"math"
	"time"
)

const (
	MessageTypeSubscribe = "subscribe"
	MessageTypeCandles   = "candles"
	MessageTypeError     = "error"
)

// Message is the JSON frame exchanged with the candle server.
type Message struct {
	Type    string       `json:"type"`
	Symbol  string       `json:"symbol,omitempty"`
	Symbols []string     `json:"symbols,omitempty"`
	Candles []WireCandle `json:"candles,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// WireCandle has a unix millisecond timestamp. Missing prices are omitted.
type WireCandle struct {
	T int64    `json:"t"`
	O *float64 `json:"o,omitempty"`
	H *float64 `json:"h,omitempty"`
	L *float64 `json:"l,omitempty"`
	C *float64 `json:"c,omitempty"`
	V *float64 `json:"v,omitempty"`
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func (w WireCandle) Candle() chartval.Candle {
	return chartval.Candle{
		Timestamp: time.UnixMilli(w.T).UTC(),
		Open:      valueOrNaN(w.O),
		High:      valueOrNaN(w.H),
		Low:       valueOrNaN(w.L),
		Close:     valueOrNaN(w.C),
		Volume:    valueOrNaN(w.V),
	}
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func NewWireCandle(c chartval.Candle) WireCandle {
	return WireCandle{
		T: c.Timestamp.UnixMilli(),
		O: optional(c.Open),
		H: optional(c.High),
		L: optional(c.Low),
		C: optional(c.Close),
		V: optional(c.Volume),
	}
}
