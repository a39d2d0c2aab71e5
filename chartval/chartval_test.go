// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMergeHighLow(t *testing.T) {
	r := MergeHighLow(
		HighLow{High: 10, Low: 2, HighIdx: 1, LowIdx: 2},
		HighLow{High: 8, Low: -1, HighIdx: 3, LowIdx: 4},
	)
	assert.Equal(t, 10.0, r.High)
	assert.Equal(t, -1.0, r.Low)
	assert.Equal(t, 1, r.HighIdx)
	assert.Equal(t, 4, r.LowIdx)
}

func TestMergeHighLowSkipsNonFinite(t *testing.T) {
	r := MergeHighLow(
		HighLow{High: math.NaN(), Low: math.Inf(-1)},
		HighLow{High: 5, Low: 3},
	)
	assert.Equal(t, 5.0, r.High)
	assert.Equal(t, 3.0, r.Low)
}

func TestMergeHighLowEmpty(t *testing.T) {
	r := MergeHighLow()
	assert.True(t, r.IsEmpty())
	assert.Equal(t, float64(MinSafeInteger), r.High)
	assert.Equal(t, float64(MaxSafeInteger), r.Low)

	r = MergeHighLow(HighLow{High: math.NaN(), Low: math.NaN()})
	assert.True(t, r.IsEmpty())
}

func TestPointsFlatAndSegmented(t *testing.T) {
	flat := Flat([]int{1, 2, 3})
	assert.False(t, flat.IsSegmented())
	assert.Equal(t, 3, flat.Len())
	assert.Equal(t, [][]int{{1, 2, 3}}, flat.Segments())

	seg := Segmented([][]int{{1, 2}, {5}, {7, 8}})
	assert.True(t, seg.IsSegmented())
	assert.Equal(t, 5, seg.Len())
	assert.Equal(t, []int{1, 2, 5, 7, 8}, seg.Flatten())
	assert.Equal(t, []int{2, 1, 2}, seg.SegmentLengths())

	assert.Nil(t, Flat([]int{}).Segments())
}

func TestResegment(t *testing.T) {
	p := Resegment([]int{0, 1, 2, 5, 7, 8, 9}, []int{2, 1, 2}, 1)
	assert.Equal(t, [][]int{{0, 1, 2}, {5}, {7, 8, 9}}, p.Segments())

	p = Resegment([]int{1, 2}, []int{2}, 0)
	assert.False(t, p.IsSegmented())
}

func TestPricePrecisions(t *testing.T) {
	p, err := Instrument{Symbol: "X", PriceIncrements: []string{"0.01", "0.0050", "1"}}.PricePrecisions()
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 3, 0}, p)

	p, err = Instrument{Symbol: "X"}.PricePrecisions()
	assert.NoError(t, err)
	assert.Equal(t, []int{DefaultPricePrecision}, p)

	_, err = Instrument{Symbol: "X", PriceIncrements: []string{"abc"}}.PricePrecisions()
	assert.Error(t, err)
}

func TestRoundPrice(t *testing.T) {
	assert.Equal(t, 1.23, RoundPrice(1.2345, 2))
	assert.Equal(t, 100.0, RoundPrice(99.996, 2))
	assert.True(t, math.IsNaN(RoundPrice(math.NaN(), 2)))
}

func TestCandleHasPrices(t *testing.T) {
	c := NewNaNCandle(time.Unix(0, 0))
	assert.False(t, c.HasPrices())
	c.Low = 1
	assert.True(t, c.HasPrices())
	assert.Equal(t, 3, c.WithIdx(3).Idx)
}
