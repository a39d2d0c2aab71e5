// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

// Points holds series data either as one flat run or as segments separated by intentional gaps.
type Points[T any] struct {
	flat      []T
	segments  [][]T
	segmented bool
}

func Flat[T any](p []T) Points[T] {
	return Points[T]{flat: p}
}

func Segmented[T any](s [][]T) Points[T] {
	return Points[T]{segments: s, segmented: true}
}

func (p Points[T]) IsSegmented() bool {
	return p.segmented
}

func (p Points[T]) Len() int {
	if !p.segmented {
		return len(p.flat)
	}
	n := 0
	for _, s := range p.segments {
		n += len(s)
	}
	return n
}

// Segments returns the data split into segments. Flat data is a single segment.
func (p Points[T]) Segments() [][]T {
	if !p.segmented {
		if len(p.flat) == 0 {
			return nil
		}
		return [][]T{p.flat}
	}
	return p.segments
}

// SegmentLengths returns the number of points per segment.
func (p Points[T]) SegmentLengths() []int {
	segments := p.Segments()
	l := make([]int, len(segments))
	for i, s := range segments {
		l[i] = len(s)
	}
	return l
}

// Flatten returns all points in order. Flat data is returned without copying.
func (p Points[T]) Flatten() []T {
	if !p.segmented {
		return p.flat
	}
	r := make([]T, 0, p.Len())
	for _, s := range p.segments {
		r = append(r, s...)
	}
	return r
}

// Resegment splits flat data using the given segment lengths.
// The first segment grows by prepended points, the last segment by all remaining points.
func Resegment[T any](flat []T, lengths []int, prepended int) Points[T] {
	if len(lengths) <= 1 {
		return Flat(flat)
	}
	segments := make([][]T, 0, len(lengths))
	pos := 0
	for i, l := range lengths {
		if i == 0 {
			l += prepended
		}
		end := pos + l
		if i == len(lengths)-1 || end > len(flat) {
			end = len(flat)
		}
		segments = append(segments, flat[pos:end])
		pos = end
	}
	return Segmented(segments)
}
