// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
	"github.com/fluxkit/interaction/velocity"
)

// Action is what a successfully fulfilled SwipeAway does to the
// component's content (§4.3.4). The core only tracks which Action was
// configured and how far the swipe has progressed; actually moving or
// revealing content is a rendering concern for the host.
type Action uint8

const (
	ActionReveal Action = iota
	ActionSlide
	ActionCover
)

// SwipeAway recognizes a directional drag past a distance or velocity
// threshold and animates progress to completion or back to rest
// (§4.3.4).
type SwipeAway struct {
	base

	Direction   Direction
	ActionKind  Action
	AxisExtent  float32 // component extent along Direction, local units
	RevealItem  tree.Index

	AngleTolerance           float32
	VelocityThreshold        float32
	MaxVelocity              float32
	FulfillDistancePct       float32
	DefaultAnimationDuration time.Duration
	MaxAnimationDuration     time.Duration

	OnSwipeMove sequencer.Batch
	OnSwipeDone sequencer.Batch
	Seq         sequencer.Sequencer

	startPos f32.Point
	tracker  *velocity.Tracker

	progress float32

	animating bool
	animFrom  float32
	animTo    float32
	animStart time.Duration
	animDur   time.Duration

	completed bool // swiped fully away; stays out of Idle until Reset.
}

// NewSwipeAway constructs a SwipeAway gesture.
func NewSwipeAway(dir Direction, action Action, axisExtent float32, cfg SwipeConfig, onMove, onDone sequencer.Batch, seq sequencer.Sequencer) *SwipeAway {
	return &SwipeAway{
		Direction:                dir,
		ActionKind:               action,
		AxisExtent:               axisExtent,
		AngleTolerance:           cfg.AngleTolerance,
		VelocityThreshold:        cfg.VelocityThreshold,
		MaxVelocity:              cfg.MaxVelocity,
		FulfillDistancePct:       cfg.FulfillDistancePct,
		DefaultAnimationDuration: cfg.DefaultAnimationDuration,
		MaxAnimationDuration:     cfg.MaxAnimationDuration,
		OnSwipeMove:              onMove,
		OnSwipeDone:              onDone,
		Seq:                      seq,
		tracker:                  velocity.NewTracker(0, cfg.MaxVelocity),
	}
}

// SwipeConfig collects the §6 SwipeAway thresholds, grouped so
// NewSwipeAway doesn't take eight scalar parameters.
type SwipeConfig struct {
	AngleTolerance           float32
	VelocityThreshold        float32
	MaxVelocity              float32
	FulfillDistancePct       float32
	DefaultAnimationDuration time.Duration
	MaxAnimationDuration     time.Duration
}

// Progress returns the gesture's current animated progress in [0,1],
// for a host to render the reveal/slide/cover transform.
func (g *SwipeAway) Progress() float32 { return g.progress }

// Reset returns the gesture to Idle and clears swiped-away state.
func (g *SwipeAway) Reset() {
	g.reset()
	g.progress = 0
	g.animating = false
	g.completed = false
	g.tracker.Reset()
}

// Consume advances the SwipeAway state machine (§4.3.4).
func (g *SwipeAway) Consume(_ tree.Index, _ *tree.Tree, ev pointer.Event, t time.Duration) tree.GestureOutcome {
	switch ev.Kind {
	case pointer.Down:
		if g.completed {
			return tree.GestureOutcome{}
		}
		g.state = Started
		g.startPos = ev.Position
		g.progress = 0
		g.animating = false
		g.tracker.Reset()
		g.tracker.Sample(ev.Time, ev.Position)
		return tree.GestureOutcome{}
	case pointer.Move:
		if g.state != Started && g.state != Triggered {
			return tree.GestureOutcome{}
		}
		motion := ev.Position.Sub(g.startPos)
		if !withinAngle(motion, g.Direction, g.AngleTolerance) {
			g.reset()
			return tree.GestureOutcome{}
		}
		g.tracker.Sample(ev.Time, ev.Position)
		disp := motion.Dot(axisVector(g.Direction))
		if disp < 0 {
			disp = 0
		}
		extent := g.AxisExtent
		if extent <= 0 {
			extent = 1
		}
		g.progress = clamp32(disp/extent, 0, 1)
		const epsilon = 1e-3
		if g.progress >= epsilon {
			g.state = Triggered
			submit(g.Seq, g.OnSwipeMove.WithVars(map[string]any{"progress": g.progress}), sequencer.Fast)
			return tree.GestureOutcome{Triggered: true}
		}
		return tree.GestureOutcome{}
	case pointer.Up:
		if g.state != Triggered {
			g.reset()
			return tree.GestureOutcome{}
		}
		vel := g.tracker.Query().Dot(axisVector(g.Direction))
		fulfil := g.progress >= g.FulfillDistancePct || vel >= g.VelocityThreshold
		if fulfil {
			g.startAnimation(1, ev.Time, vel)
		} else {
			g.startAnimation(0, ev.Time, vel)
		}
		return tree.GestureOutcome{Triggered: true}
	case pointer.Cancel:
		if g.state == Triggered {
			g.startAnimation(0, ev.Time, 0)
			return tree.GestureOutcome{Triggered: true}
		}
		g.reset()
		return tree.GestureOutcome{}
	case pointer.TimeUpdate:
		if !g.animating {
			return tree.GestureOutcome{Triggered: g.state == Triggered}
		}
		g.tickAnimation(ev.Time)
		return tree.GestureOutcome{Triggered: g.state == Triggered}
	default:
		return tree.GestureOutcome{}
	}
}

// startAnimation begins the post-release tween toward target (0 or 1),
// with a duration proportional to remaining distance and release
// velocity, clamped to [DefaultAnimationDuration, MaxAnimationDuration].
func (g *SwipeAway) startAnimation(target float32, now time.Duration, vel float32) {
	remaining := target - g.progress
	if remaining < 0 {
		remaining = -remaining
	}
	dur := g.DefaultAnimationDuration
	speed := vel
	if speed < 0 {
		speed = -speed
	}
	if speed > 1 {
		extent := g.AxisExtent
		if extent <= 0 {
			extent = 1
		}
		estimate := time.Duration(float64(remaining*extent) / float64(speed) * float64(time.Second))
		dur = estimate
	}
	if dur < g.DefaultAnimationDuration {
		dur = g.DefaultAnimationDuration
	}
	if dur > g.MaxAnimationDuration {
		dur = g.MaxAnimationDuration
	}
	g.animating = true
	g.animFrom = g.progress
	g.animTo = target
	g.animStart = now
	g.animDur = dur
}

func (g *SwipeAway) tickAnimation(now time.Duration) {
	elapsedDur := now - g.animStart
	if elapsedDur < 0 {
		elapsedDur = 0
	}
	frac := float32(1)
	if g.animDur > 0 {
		frac = clamp32(float32(elapsedDur)/float32(g.animDur), 0, 1)
	}
	g.progress = g.animFrom + (g.animTo-g.animFrom)*frac
	submit(g.Seq, g.OnSwipeMove.WithVars(map[string]any{"progress": g.progress}), sequencer.Fast)
	if frac >= 1 {
		g.animating = false
		if g.animTo >= 1 {
			g.completed = true
			submit(g.Seq, g.OnSwipeDone, sequencer.Normal)
			g.state = Completed
		} else {
			g.reset()
		}
	}
}
