// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"chartcore/chartval"
	"chartcore/logging"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// Base is the timestamp of the first candle built by the helpers below.
var Base = time.Date(2023, 3, 1, 14, 30, 0, 0, time.UTC)

// NewLogHook captures entries of the shared logger for the duration of the test.
func NewLogHook(t *testing.T) *test.Hook {
	hook := test.NewLocal(logging.Logger())
	t.Cleanup(func() {
		logging.Logger().ReplaceHooks(make(logrus.LevelHooks))
	})
	return hook
}

// Candle returns a candle n periods after Base with all prices set to close.
func Candle(n int, period time.Duration, close float64) chartval.Candle {
	return chartval.Candle{
		Timestamp: Base.Add(time.Duration(n) * period),
		Open:      close,
		High:      close,
		Low:       close,
		Close:     close,
		Volume:    1,
	}
}

// OHLC returns a fully specified candle n periods after Base.
func OHLC(n int, period time.Duration, o, h, l, c, v float64) chartval.Candle {
	return chartval.Candle{
		Timestamp: Base.Add(time.Duration(n) * period),
		Open:      o,
		High:      h,
		Low:       l,
		Close:     c,
		Volume:    v,
	}
}

// Candles returns one candle per offset, indexed by position. The close price is 100 + offset.
func Candles(period time.Duration, offsets ...int) []chartval.Candle {
	r := make([]chartval.Candle, len(offsets))
	for i, n := range offsets {
		r[i] = Candle(n, period, 100+float64(n))
		r[i].Idx = i
	}
	return r
}

// Range returns count consecutive candles starting at offset first.
func Range(period time.Duration, first, count int) []chartval.Candle {
	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = first + i
	}
	return Candles(period, offsets...)
}

// Timestamps extracts the timestamps, for compact assertions.
func Timestamps[T chartval.Timestamped](points []T) []time.Time {
	r := make([]time.Time, len(points))
	for i, p := range points {
		r[i] = p.Time()
	}
	return r
}
