// SPDX-License-Identifier: Unlicense OR MIT

package scroller

import (
	"math"
	"time"

	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/tree"
	"github.com/fluxkit/interaction/velocity"
)

type scrollState uint8

const (
	scrollIdle scrollState = iota
	scrollStarted
	scrollTriggered
)

// Scroll is the intrinsic gesture attached to every scrollable
// component (§4.3.5): it claims capture once the pointer has moved past
// the tap/scroll timeout (or moved at all) and slop threshold within
// the scrollable's axis cone, then follows the pointer until release,
// handing off to the Scroller's fling phase.
type Scroll struct {
	Axis tree.Axis

	TapOrScrollTimeout time.Duration
	SlopThreshold      float32
	AngleSlopeVertical float32
	AngleSlopeHorizontal float32

	Scroller *Scroller

	state     scrollState
	downPos   f32.Point
	downTime  time.Duration
	lastPos   f32.Point
	axisScale float32
	tracker   *velocity.Tracker
}

var _ tree.GestureHandler = (*Scroll)(nil)

// NewScroll constructs a Scroll gesture bound to s, which owns the
// component's ScrollPos animation.
func NewScroll(axis tree.Axis, tapOrScrollTimeout time.Duration, slop, angleVert, angleHoriz float32, s *Scroller, minFling, maxFling float32) *Scroll {
	return &Scroll{
		Axis:                 axis,
		TapOrScrollTimeout:   tapOrScrollTimeout,
		SlopThreshold:        slop,
		AngleSlopeVertical:   angleVert,
		AngleSlopeHorizontal: angleHoriz,
		Scroller:             s,
		tracker:              velocity.NewTracker(minFling, maxFling),
	}
}

// Reset returns the gesture to Idle.
func (g *Scroll) Reset() {
	g.state = scrollIdle
}

// Triggered reports whether Scroll currently owns capture.
func (g *Scroll) Triggered() bool { return g.state == scrollTriggered }

// withinAxisCone reports whether motion lies within the axis cone
// defined by the vertical/horizontal slope thresholds (§4.3.5 rule 4).
// A slope is rise-over-run: a scroll along Y must have |dy/dx| at least
// AngleSlopeVertical; along X, |dx/dy| at least AngleSlopeHorizontal.
func (g *Scroll) withinAxisCone(motion f32.Point) bool {
	dx, dy := float64(motion.X), float64(motion.Y)
	if g.Axis == tree.Vertical {
		if dy == 0 {
			return false
		}
		return math.Abs(dy/safeDiv(dx)) >= float64(g.AngleSlopeVertical) || dx == 0
	}
	if dx == 0 {
		return false
	}
	return math.Abs(dx/safeDiv(dy)) >= float64(g.AngleSlopeHorizontal) || dy == 0
}

func safeDiv(v float64) float64 {
	if v == 0 {
		return 1e-6
	}
	return v
}

// Consume advances the Scroll state machine (§4.3.5).
func (g *Scroll) Consume(target tree.Index, tr *tree.Tree, ev pointer.Event, now time.Duration) tree.GestureOutcome {
	switch ev.Kind {
	case pointer.Down:
		g.state = scrollStarted
		g.downPos = ev.Position
		g.downTime = ev.Time
		g.lastPos = ev.Position
		g.axisScale = scaleAlong(tr, target, g.Axis)
		g.tracker.Reset()
		g.tracker.Sample(ev.Time, ev.Position)
		g.Scroller.Stop()
		return tree.GestureOutcome{}
	case pointer.Move:
		if g.state == scrollIdle {
			return tree.GestureOutcome{}
		}
		g.tracker.Sample(ev.Time, ev.Position)
		motion := ev.Position.Sub(g.downPos)
		if g.state == scrollStarted {
			if axisTravel(g.Axis, motion) <= g.SlopThreshold {
				g.lastPos = ev.Position
				return tree.GestureOutcome{}
			}
			if !g.withinAxisCone(motion) {
				g.Reset()
				return tree.GestureOutcome{}
			}
			g.state = scrollTriggered
		}
		delta := ev.Position.Sub(g.lastPos)
		g.lastPos = ev.Position
		scale := g.axisScale
		if scale == 0 {
			scale = 1
		}
		localDelta := axisComponent(g.Axis, delta) / scale
		n := tr.Node(target)
		if n != nil {
			cur := axisComponent(g.Axis, n.ScrollPos)
			extent := axisExtentOf(n)
			next := clamp(cur-localDelta, 0, maxScroll(n, extent))
			setAxisValue(g.Axis, &n.ScrollPos, next)
		}
		return tree.GestureOutcome{Triggered: true}
	case pointer.Up:
		triggered := g.state == scrollTriggered
		if triggered {
			g.tracker.Sample(ev.Time, ev.Position)
			global := axisComponent(g.Axis, g.tracker.Query())
			scale := g.axisScale
			if scale == 0 {
				scale = 1
			}
			g.Scroller.StartFling(tr, target, now, -global/scale, false)
		}
		g.Reset()
		return tree.GestureOutcome{Triggered: triggered}
	case pointer.Cancel:
		triggered := g.state == scrollTriggered
		if triggered {
			g.Scroller.StartFling(tr, target, now, 0, true)
		}
		g.Reset()
		return tree.GestureOutcome{Triggered: triggered}
	default:
		return tree.GestureOutcome{}
	}
}

func axisComponent(axis tree.Axis, p f32.Point) float32 {
	if axis == tree.Horizontal {
		return p.X
	}
	return p.Y
}

func axisTravel(axis tree.Axis, motion f32.Point) float32 {
	v := axisComponent(axis, motion)
	if v < 0 {
		return -v
	}
	return v
}

func scaleAlong(tr *tree.Tree, idx tree.Index, axis tree.Axis) float32 {
	factor := tr.Transform(idx).ScaleFactor()
	if axis == tree.Horizontal {
		return factor.X
	}
	return factor.Y
}

