// SPDX-License-Identifier: Unlicense OR MIT

package pager

import (
	"time"

	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/tree"
	"github.com/fluxkit/interaction/velocity"
)

type pagingState uint8

const (
	pagingIdle pagingState = iota
	pagingStarted
	pagingTriggered
)

// Paging is the intrinsic gesture attached to every paged component
// (§4.3.6): trigger rule mirrors package scroller's Scroll gesture, but
// along the pager's page axis, and on release it commits to the next
// page or animates back to the current one instead of free-flinging.
type Paging struct {
	Axis tree.Axis

	TapOrScrollTimeout time.Duration
	SlopThreshold      float32
	AngleSlopeVertical float32
	AngleSlopeHorizontal float32
	SwipeVelocityThreshold float32

	Pager *Pager

	state    pagingState
	downPos  f32.Point
	downTime time.Duration
	dir      tree.FocusDirection
	tracker  *velocity.Tracker
}

var _ tree.GestureHandler = (*Paging)(nil)

// NewPaging constructs a Paging gesture bound to p.
func NewPaging(axis tree.Axis, tapOrScrollTimeout time.Duration, slop, angleVert, angleHoriz, swipeVelocityThreshold float32, p *Pager, minFling, maxFling float32) *Paging {
	return &Paging{
		Axis:                   axis,
		TapOrScrollTimeout:     tapOrScrollTimeout,
		SlopThreshold:          slop,
		AngleSlopeVertical:     angleVert,
		AngleSlopeHorizontal:   angleHoriz,
		SwipeVelocityThreshold: swipeVelocityThreshold,
		Pager:                  p,
		tracker:                velocity.NewTracker(minFling, maxFling),
	}
}

// Reset returns the gesture to Idle.
func (g *Paging) Reset() { g.state = pagingIdle }

// Triggered reports whether Paging currently owns capture.
func (g *Paging) Triggered() bool { return g.state == pagingTriggered }

func axisComponent(axis tree.Axis, p f32.Point) float32 {
	if axis == tree.Horizontal {
		return p.X
	}
	return p.Y
}

func directionFor(axis tree.Axis, delta float32) tree.FocusDirection {
	if axis == tree.Horizontal {
		if delta < 0 {
			return tree.Left
		}
		return tree.Right
	}
	if delta < 0 {
		return tree.Up
	}
	return tree.Down
}

// Consume advances the Paging state machine (§4.3.6).
func (g *Paging) Consume(target tree.Index, tr *tree.Tree, ev pointer.Event, now time.Duration) tree.GestureOutcome {
	switch ev.Kind {
	case pointer.Down:
		g.state = pagingStarted
		g.downPos = ev.Position
		g.downTime = ev.Time
		g.tracker.Reset()
		g.tracker.Sample(ev.Time, ev.Position)
		g.Pager.Stop()
		return tree.GestureOutcome{}
	case pointer.Move:
		if g.state == pagingIdle {
			return tree.GestureOutcome{}
		}
		g.tracker.Sample(ev.Time, ev.Position)
		motion := ev.Position.Sub(g.downPos)
		if g.state == pagingStarted {
			travel := axisComponent(g.Axis, motion)
			if travel < 0 {
				travel = -travel
			}
			if travel <= g.SlopThreshold {
				return tree.GestureOutcome{}
			}
			if !withinCone(g.Axis, motion, g.AngleSlopeVertical, g.AngleSlopeHorizontal) {
				g.Reset()
				return tree.GestureOutcome{}
			}
			g.dir = directionFor(g.Axis, axisComponent(g.Axis, motion))
			if !g.Pager.Start(tr, target, now, g.dir) {
				g.Reset()
				return tree.GestureOutcome{}
			}
			g.state = pagingTriggered
		}
		n := tr.Node(target)
		if n == nil {
			return tree.GestureOutcome{}
		}
		extent := extentOf(n, g.dir)
		if extent <= 0 {
			extent = 1
		}
		progress := axisComponent(g.Axis, motion) / extent
		if progress < 0 {
			progress = -progress
		}
		g.Pager.SetProgress(tr, target, progress)
		return tree.GestureOutcome{Triggered: true}
	case pointer.Up:
		triggered := g.state == pagingTriggered
		if triggered {
			vel := axisComponent(g.Axis, g.tracker.Query())
			commit := g.Pager.amount >= 0.5 || absf(vel) >= g.SwipeVelocityThreshold
			if commit {
				g.Pager.Commit(now)
			} else {
				g.Pager.Abort(now)
			}
		}
		g.Reset()
		return tree.GestureOutcome{Triggered: triggered}
	case pointer.Cancel:
		triggered := g.state == pagingTriggered
		if triggered {
			g.Pager.Abort(now)
		}
		g.Reset()
		return tree.GestureOutcome{Triggered: triggered}
	default:
		return tree.GestureOutcome{}
	}
}

func withinCone(axis tree.Axis, motion f32.Point, slopeVert, slopeHoriz float32) bool {
	dx, dy := motion.X, motion.Y
	if axis == tree.Vertical {
		if dy == 0 {
			return false
		}
		return absf(dy) >= absf(dx)*slopeVert
	}
	if dx == 0 {
		return false
	}
	return absf(dx) >= absf(dy)*slopeHoriz
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
