// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package candlemerge

import (
	"chartcore/chartval"
	"chartcore/logging"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

var logger = logging.Component("candlemerge")

// Result of merging an update into a series.
type Result[T any] struct {
	Prepended int
	Appended  int
	// Dropped counts points which could not be merged without breaking the order.
	Dropped int
	Candles []T
}

// IsStructural reports whether indexes of existing points have changed or new points were added.
func (r Result[T]) IsStructural() bool {
	return r.Prepended > 0 || r.Appended > 0
}

// SearchIndex looks up ts in sorted points. exact is true for a timestamp match.
// Otherwise idx is the last point before ts. Before the first point idx is negative.
// With extrapolate, timestamps after the last point return an index >= len(points),
// counted in steps of period (at least one step). Without, the last index is returned.
func SearchIndex[T chartval.Timestamped](points []T, ts time.Time, extrapolate bool, period time.Duration) (idx int, exact bool) {
	if len(points) == 0 {
		return 0, false
	}
	i, found := slices.BinarySearchFunc(points, ts, func(p T, t time.Time) int {
		return p.Time().Compare(t)
	})
	if found {
		return i, true
	}
	switch i {
	case 0:
		if !extrapolate {
			return -1, false
		}
		return -periodsBetween(ts, points[0].Time(), period), false
	case len(points):
		if !extrapolate {
			return len(points) - 1, false
		}
		return len(points) - 1 + periodsBetween(points[len(points)-1].Time(), ts, period), false
	default:
		return i - 1, false
	}
}

func periodsBetween(from, to time.Time, period time.Duration) int {
	if period <= 0 {
		return 1
	}
	n := int(math.Ceil(float64(to.Sub(from)) / float64(period)))
	return max(n, 1)
}

// UpdateCandles merges sorted update points into sorted target points.
// Points before the first target point are prepended, points after the last are appended,
// exact matches replace the existing point. Points falling between two existing points
// without a match are dropped and logged, inserting them would shift the indexes.
// The inputs are not modified. Indexes are reassigned after structural changes.
func UpdateCandles[T chartval.Point[T]](target, update []T) Result[T] {
	if len(update) == 0 {
		return Result[T]{Candles: target}
	}
	merged := slices.Clone(target)
	var prepend, appendQ []T
	dropped := 0
	for _, u := range update {
		idx, exact := SearchIndex(target, u.Time(), true, 0)
		switch {
		case exact:
			merged[idx] = u.WithIdx(idx)
		case idx < 0:
			prepend = append(prepend, u)
		case idx >= len(target):
			appendQ = append(appendQ, u)
		default:
			dropped++
			logger.WithFields(logrus.Fields{
				"timestamp": u.Time(),
				"after":     target[idx].Time(),
				"before":    target[idx+1].Time(),
			}).Warn("dropping update point without matching candle")
		}
	}
	prepend = sortUnique(prepend)
	appendQ = sortUnique(appendQ)

	r := Result[T]{Prepended: len(prepend), Appended: len(appendQ), Dropped: dropped}
	if len(prepend) == 0 && len(appendQ) == 0 {
		r.Candles = merged
		return r
	}
	candles := make([]T, 0, len(prepend)+len(merged)+len(appendQ))
	candles = append(candles, prepend...)
	candles = append(candles, merged...)
	candles = append(candles, appendQ...)
	if len(prepend) > 0 {
		ReindexCandles(candles, 0)
	} else {
		ReindexCandles(candles, len(merged))
	}
	r.Candles = candles
	return r
}

// PrependCandles adds older points in front of target, e.g. when lazily loading history.
// Only points before the first target point are used, nothing is replaced or appended.
func PrependCandles[T chartval.Point[T]](target, older []T) Result[T] {
	var prepend []T
	dropped := 0
	for _, o := range older {
		if len(target) == 0 || o.Time().Before(target[0].Time()) {
			prepend = append(prepend, o)
		} else {
			dropped++
		}
	}
	if dropped > 0 {
		logger.WithField("count", dropped).Debug("ignoring overlapping history")
	}
	prepend = sortUnique(prepend)
	if len(prepend) == 0 {
		return Result[T]{Dropped: dropped, Candles: target}
	}
	candles := make([]T, 0, len(prepend)+len(target))
	candles = append(candles, prepend...)
	candles = append(candles, target...)
	ReindexCandles(candles, 0)
	return Result[T]{Prepended: len(prepend), Dropped: dropped, Candles: candles}
}

// ReindexCandles assigns idx = position, starting at startIdx.
func ReindexCandles[T chartval.Point[T]](candles []T, startIdx int) {
	for i := max(startIdx, 0); i < len(candles); i++ {
		candles[i] = candles[i].WithIdx(i)
	}
}

// sortUnique sorts by timestamp. Of several points with the same timestamp the last one is kept.
func sortUnique[T chartval.Timestamped](points []T) []T {
	if len(points) < 2 {
		return points
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time().Before(points[j].Time())
	})
	r := points[:0]
	for i, p := range points {
		if i+1 < len(points) && points[i+1].Time().Equal(p.Time()) {
			continue
		}
		r = append(r, p)
	}
	return r
}
