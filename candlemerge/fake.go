// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package candlemerge

import (
	"chartcore/chartval"
	"chartcore/indapi/candles"
	"math"
	"time"
)

// FakeCandle returns the candle at index, or a synthetic candle without prices if index is
// outside of the data. Its timestamp continues from the nearest edge candle in steps of period.
func FakeCandle(data []chartval.Candle, index int, period time.Duration) chartval.Candle {
	return FakeCandleWith(data, index, candles.FixedExtrapolator(period))
}

// FakeCandleWith is FakeCandle with a calendar aware extrapolation.
func FakeCandleWith(data []chartval.Candle, index int, extrapolate candles.Extrapolator) chartval.Candle {
	if index >= 0 && index < len(data) {
		return data[index]
	}
	c := chartval.NewNaNCandle(fakeTime(data, index, extrapolate))
	c.Idx = index
	c.Expansion = true
	return c
}

// FakePoint is the DataSeriesPoint variant of FakeCandleWith.
func FakePoint(data []chartval.DataSeriesPoint, index int, extrapolate candles.Extrapolator) chartval.DataSeriesPoint {
	if index >= 0 && index < len(data) {
		return data[index]
	}
	return chartval.DataSeriesPoint{
		Timestamp: fakeTime(data, index, extrapolate),
		Close:     math.NaN(),
		Idx:       index,
		Expansion: true,
	}
}

func fakeTime[T chartval.Timestamped](data []T, index int, extrapolate candles.Extrapolator) time.Time {
	if len(data) == 0 {
		return time.Time{}
	}
	edge := 0
	if index >= len(data) {
		edge = len(data) - 1
	}
	return extrapolate(data[edge].Time(), index-edge)
}
