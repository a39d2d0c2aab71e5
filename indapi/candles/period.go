// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package candles

import (
	"time"
)

// Extrapolator returns the time n candles away from t.
type Extrapolator func(t time.Time, n int) time.Time

// DetectPeriod returns the most frequent positive delta between consecutive timestamps.
// If two deltas are equally frequent, the smaller one wins. 0 is returned for fewer than two timestamps.
func DetectPeriod(timestamps []time.Time) time.Duration {
	counts := make(map[time.Duration]int)
	var period time.Duration
	best := 0
	for i := 1; i < len(timestamps); i++ {
		d := timestamps[i].Sub(timestamps[i-1])
		if d <= 0 {
			continue
		}
		counts[d]++
		c := counts[d]
		if c > best || (c == best && d < period) {
			best = c
			period = d
		}
	}
	return period
}

// ResolutionForPeriod maps a detected period to a candle resolution.
// Day, week and month periods are matched with some tolerance, because
// daylight saving time and different month lengths change the delta.
func ResolutionForPeriod(period time.Duration) (CandleResolution, bool) {
	switch {
	case period == time.Minute:
		return CandleOneMinute, true
	case period == 5*time.Minute:
		return CandleFiveMinutes, true
	case period == 15*time.Minute:
		return CandleFifteenMinutes, true
	case period == 30*time.Minute:
		return CandleThirtyMinutes, true
	case period == time.Hour:
		return CandleSixtyMinutes, true
	case period >= 23*time.Hour && period <= 25*time.Hour:
		return CandleOneDay, true
	case period >= 7*24*time.Hour-time.Hour && period <= 7*24*time.Hour+time.Hour:
		return CandleOneWeek, true
	case period >= 28*24*time.Hour-time.Hour && period <= 31*24*time.Hour+time.Hour:
		return CandleOneMonth, true
	}
	return 0, false
}

// Extrapolator steps in calendar candles of this resolution.
// The offset of t within its candle is kept.
func (r CandleResolution) Extrapolator() Extrapolator {
	return func(t time.Time, n int) time.Time {
		if n == 0 {
			return t
		}
		offset := t.Sub(r.getRecentCandleStartTime(t))
		return r.GetNthCandleTime(t, n).Add(offset)
	}
}

// FixedExtrapolator steps by a constant duration.
func FixedExtrapolator(period time.Duration) Extrapolator {
	return func(t time.Time, n int) time.Time {
		return t.Add(time.Duration(n) * period)
	}
}

// ExtrapolatorForPeriod uses the calendar for known resolutions and a fixed step otherwise.
func ExtrapolatorForPeriod(period time.Duration) Extrapolator {
	if r, ok := ResolutionForPeriod(period); ok {
		return r.Extrapolator()
	}
	return FixedExtrapolator(period)
}
