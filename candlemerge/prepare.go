// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package candlemerge

import (
	"chartcore/chartval"
	"errors"
	"fmt"
	"math"
)

var ErrMalformedCandle = errors.New("candle has no prices")

// PrepareCandle fills missing prices from the available ones.
// A candle without any of open, high, low and close cannot be repaired.
func PrepareCandle(c chartval.Candle) (chartval.Candle, error) {
	if !c.HasPrices() {
		return c, fmt.Errorf("%w: %s", ErrMalformedCandle, c.Timestamp)
	}
	if math.IsNaN(c.Open) {
		c.Open = firstValid(c.Close, c.High, c.Low)
	}
	if math.IsNaN(c.Close) {
		c.Close = firstValid(c.Open, c.Low, c.High)
	}
	if math.IsNaN(c.High) {
		c.High = max(c.Open, c.Close)
	}
	if math.IsNaN(c.Low) {
		c.Low = min(c.Open, c.Close)
	}
	if math.IsNaN(c.Volume) {
		c.Volume = 0
	}
	return c, nil
}

func firstValid(values ...float64) float64 {
	for _, v := range values {
		if !math.IsNaN(v) {
			return v
		}
	}
	return math.NaN()
}

// PrepareCandles repairs, sorts and reindexes candles. Malformed candles are logged and dropped,
// the rest of the batch is kept. Of several candles with the same timestamp the last one wins.
func PrepareCandles(data []chartval.Candle) []chartval.Candle {
	prepared := make([]chartval.Candle, 0, len(data))
	for _, c := range data {
		p, err := PrepareCandle(c)
		if err != nil {
			logger.WithError(err).Warn("dropping malformed candle")
			continue
		}
		prepared = append(prepared, p)
	}
	prepared = sortUnique(prepared)
	ReindexCandles(prepared, 0)
	return prepared
}
