// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package candlemerge

import (
	"chartcore/chartval"
	"chartcore/mock"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustSecondaryFillsGapFromLeft(t *testing.T) {
	main := mock.Range(period, 0, 8)
	secondary := []chartval.Candle{
		mock.OHLC(3, period, 1, 5, 0.5, 2, 10),
		mock.OHLC(4, period, 2, 6, 1, 3, 10),
		mock.OHLC(6, period, 3, 7, 2, 4, 10),
	}
	r := AdjustSecondaryCandles(main, secondary)
	require.Len(t, r, len(main))
	assertIndexed(t, r)

	// idx 5 is copied from idx 4 with the prices collapsed to its close.
	assert.Equal(t, main[5].Timestamp, r[5].Timestamp)
	assert.Equal(t, 3.0, r[5].Open)
	assert.Equal(t, 3.0, r[5].High)
	assert.Equal(t, 3.0, r[5].Low)
	assert.Equal(t, 3.0, r[5].Close)
	assert.Equal(t, 0.0, r[5].Volume)

	// Leading gaps use the right neighbour.
	assert.Equal(t, 2.0, r[0].Close)
	assert.Equal(t, 2.0, r[0].High)

	// Real candles are kept.
	assert.Equal(t, 6.0, r[4].High)
	assert.Equal(t, 10.0, r[4].Volume)
	assert.Equal(t, 4.0, r[7].Close)
}

func TestAdjustSecondaryMapsToFloorCandle(t *testing.T) {
	main := mock.Candles(period, 0, 10, 20)
	secondary := []chartval.Candle{
		mock.Candle(11, period, 1),
		mock.Candle(12, period, 2),
		mock.Candle(25, period, 3),
	}
	r := AdjustSecondaryCandles(main, secondary)
	assert.Equal(t, 2.0, r[0].Close)
	assert.Equal(t, 2.0, r[1].Close)
	assert.Equal(t, main[1].Timestamp, r[1].Timestamp)
	assert.Equal(t, 3.0, r[2].Close)
}

func TestAdjustSecondaryEmpty(t *testing.T) {
	assert.Nil(t, AdjustSecondaryCandles(nil, mock.Candles(period, 1)))
	assert.Nil(t, AdjustSecondaryCandles(mock.Candles(period, 1), nil))
}
