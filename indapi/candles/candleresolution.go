// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package candles

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownResolution = errors.New("unknown candle resolution")

type CandleResolution int32

const (
	CandleOneMinute CandleResolution = iota
	CandleFiveMinutes
	CandleFifteenMinutes
	CandleThirtyMinutes
	CandleSixtyMinutes
	CandleOneDay
	CandleOneWeek
	CandleOneMonth
)

const NumCandleResolutions = CandleOneMonth + 1

var resolutionNames = [...]string{"1m", "5m", "15m", "30m", "60m", "1d", "1w", "1M"}

// ParseCandleResolution accepts the short names used in configuration files, e.g. "5m" or "1d".
func ParseCandleResolution(s string) (CandleResolution, error) {
	for i, n := range resolutionNames {
		if n == s {
			return CandleResolution(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResolution, s)
}

func (r CandleResolution) String() string {
	if r < 0 || r >= NumCandleResolutions {
		return "invalid"
	}
	return resolutionNames[r]
}

func (r CandleResolution) GetDuration(context time.Time) time.Duration {
	switch r {
	case CandleOneMinute:
		return time.Minute
	case CandleFiveMinutes:
		return time.Minute * 5
	case CandleFifteenMinutes:
		return time.Minute * 15
	case CandleThirtyMinutes:
		return time.Minute * 30
	case CandleSixtyMinutes:
		return time.Hour
	case CandleOneDay:
		return getDayDuration(context)
	case CandleOneWeek:
		d, _ := getWeekDuration(context)
		return d
	case CandleOneMonth:
		d, _ := getMonthDuration(context)
		return d
	default:
		panic("unsupported candle resolution")
	}
}

func (r CandleResolution) GetNthCandleTime(t time.Time, n int) time.Time {
	// Get 0th candle time first, so that n = 0 works.
	t = r.getRecentCandleStartTime(t)
	if n < 0 {
		for i := 0; i > n; i-- {
			// Go one second back to the previous interval to get the correct duration.
			t = t.Add(-r.GetDuration(t.Add(-time.Second)))
		}
	}
	for i := 0; i < n; i++ {
		t = t.Add(r.GetDuration(t))
	}
	return t
}

func (r CandleResolution) getRecentCandleStartTime(t time.Time) time.Time {
	switch r {
	case CandleOneMinute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	case CandleFiveMinutes:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()/5*5, 0, 0, t.Location())
	case CandleFifteenMinutes:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()/15*15, 0, 0, t.Location())
	case CandleThirtyMinutes:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()/30*30, 0, 0, t.Location())
	case CandleSixtyMinutes:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case CandleOneDay:
		// We use UTC start of day as normalised start of day-based candles.
		// The broker may use timestamps of closing time, which may even be non-constant.
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case CandleOneWeek:
		// Candlestick weeks start on Mondays. Golang Weeks start on Sundays.
		// We need to adjust the difference.
		weekdayDiff := int(t.Weekday()) - int(time.Monday)
		if weekdayDiff < 0 {
			weekdayDiff = 7 + weekdayDiff
		}
		return time.Date(t.Year(), t.Month(), t.Day()-weekdayDiff, 0, 0, 0, 0, time.UTC)
	case CandleOneMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		panic("unsupported candle resolution")
	}
}

func getDayDuration(t time.Time) time.Duration {
	y := t.Year()
	m := t.Month()
	d := t.Day()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Sub(
		time.Date(y, m, d, 0, 0, 0, 0, t.Location()),
	)
}

func getWeekDuration(t time.Time) (time.Duration, time.Time) {
	// Candlestick weeks start on Mondays. Golang Weeks start on Sundays.
	// We need to adjust the difference.
	weekdayDiff := int(t.Weekday()) - int(time.Monday)
	if weekdayDiff < 0 {
		weekdayDiff = 7 + weekdayDiff
	}
	y, m, d := t.Date()
	d -= weekdayDiff
	s := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return time.Date(y, m, d+7, 0, 0, 0, 0, t.Location()).Sub(s), s
}

func getMonthDuration(t time.Time) (time.Duration, time.Time) {
	// Use "Sub" call so that daylight saving time is considered.
	y := t.Year()
	m := t.Month()
	s := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location()).Sub(s), s
}
