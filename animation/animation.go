// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package animation

import (
	"chartcore/viewport"
	"time"
)

type Phase int

const (
	Idle Phase = iota
	Animating
)

// Animation is a transition between two viewport states.
// The zero value is idle.
type Animation struct {
	phase    Phase
	from     viewport.State
	to       viewport.State
	start    time.Time
	duration time.Duration
}

func (a *Animation) Start(from, to viewport.State, now time.Time, duration time.Duration) {
	a.phase = Animating
	a.from = from
	a.to = to
	a.start = now
	a.duration = duration
}

func (a *Animation) Phase() Phase {
	return a.phase
}

func (a *Animation) InProgress() bool {
	return a.phase == Animating
}

func (a *Animation) Target() viewport.State {
	return a.to
}

// Retarget replaces the target of a running animation, the start state and time are kept.
func (a *Animation) Retarget(to viewport.State) {
	if a.phase != Animating {
		return
	}
	a.to = to
}

// Progress returns the linear progress in [0, 1].
func (a *Animation) Progress(now time.Time) float64 {
	if a.phase != Animating || a.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(a.start)) / float64(a.duration)
	return min(max(p, 0), 1)
}

func (a *Animation) Done(now time.Time) bool {
	return a.Progress(now) >= 1
}

// Frame returns the interpolated state for the given time.
func (a *Animation) Frame(now time.Time) viewport.State {
	if a.phase != Animating {
		return a.to
	}
	t := easeOutCubic(a.Progress(now))
	s := a.to
	s.XStart = lerp(a.from.XStart, a.to.XStart, t)
	s.XEnd = lerp(a.from.XEnd, a.to.XEnd, t)
	s.YStart = lerp(a.from.YStart, a.to.YStart, t)
	s.YEnd = lerp(a.from.YEnd, a.to.YEnd, t)
	s.ZoomX = scaleZoom(a.from.ZoomX, a.from.XEnd-a.from.XStart, s.XEnd-s.XStart, a.to.ZoomX)
	s.ZoomY = scaleZoom(a.from.ZoomY, a.from.YEnd-a.from.YStart, s.YEnd-s.YStart, a.to.ZoomY)
	return s
}

// Finish snaps to the target and returns it. ok is false if no animation was running.
func (a *Animation) Finish() (target viewport.State, ok bool) {
	if a.phase != Animating {
		return a.to, false
	}
	a.phase = Idle
	return a.to, true
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Zoom is proportional to the span, the pixel size does not change during an animation.
func scaleZoom(fromZoom, fromSpan, span, fallback float64) float64 {
	if fromSpan == 0 || fromZoom == 0 {
		return fallback
	}
	return fromZoom * span / fromSpan
}
