// SPDX-License-Identifier: Unlicense OR MIT

// Package gesture implements the per-component pointer-event state
// machines of §4.3: Tap, LongPress, DoublePress and SwipeAway. Each is a
// small state machine keyed by the shared alphabet of pointer.Kind
// values and the shared Idle/Started/Triggered/Completed states; the
// dispatcher that offers events to a component's gestures in
// declaration order lives in package pointerpipeline.
//
// Every gesture type here satisfies tree.GestureHandler so the pointer
// pipeline can treat Tap, LongPress, DoublePress, SwipeAway and the
// intrinsic Scroll/Paging gestures (in packages scroller and pager)
// uniformly.
package gesture

import (
	"math"
	"time"

	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
)

// State is a gesture's position in the shared state machine (§4.3).
type State uint8

const (
	Idle State = iota
	Started
	Triggered
	Completed
)

// base holds the two flags the original source tracks on every gesture
// instance (mStarted, mTriggered), generalized to the four-state
// machine shared by every recognizer in this package.
type base struct {
	state State
}

func (b *base) reset() { b.state = Idle }

// Triggered reports whether the gesture currently owns capture.
func (b *base) Triggered() bool { return b.state == Triggered }

// travel returns the Euclidean distance between two global points,
// shared by every gesture that bounds motion before triggering.
func travel(a, b f32.Point) float32 { return b.Sub(a).Len() }

// Direction is a cardinal swipe/scroll/page direction.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// axisVector returns the unit vector a Direction points along.
func axisVector(d Direction) f32.Point {
	switch d {
	case DirLeft:
		return f32.Pt(-1, 0)
	case DirRight:
		return f32.Pt(1, 0)
	case DirUp:
		return f32.Pt(0, -1)
	case DirDown:
		return f32.Pt(0, 1)
	default:
		return f32.Point{}
	}
}

// withinAngle reports whether motion deviates from direction by no more
// than tolerance radians, used by SwipeAway (§4.3.4) and the intrinsic
// Scroll/Paging gestures' angle-cone check (§4.3.5/4.3.6).
func withinAngle(motion f32.Point, direction Direction, tolerance float32) bool {
	if motion.Len() == 0 {
		return false
	}
	axis := axisVector(direction)
	cosAngle := motion.Dot(axis) / motion.Len()
	if cosAngle <= 0 {
		return false
	}
	angle := float32(math.Acos(float64(clamp32(cosAngle, -1, 1))))
	return angle <= tolerance
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// submit runs batch through seq in mode, doing nothing for an empty
// batch (an author who never attached a handler pays no cost).
func submit(seq sequencer.Sequencer, batch sequencer.Batch, mode sequencer.Mode) {
	if seq == nil || batch.Empty() {
		return
	}
	seq.Submit(batch, mode)
}

// submitHandler looks up target's ordinary handler batch for kind and
// submits it through seq, mirroring pointerpipeline's own submitHandler.
// Gestures that complete by consuming an event the pipeline will not
// also deliver to ordinary handlers (DoublePress's closing Up) use this
// to synthesize the Cancel §4.3.3 calls for.
func submitHandler(seq sequencer.Sequencer, tr *tree.Tree, target tree.Index, kind tree.HandlerKind) {
	if seq == nil || tr == nil {
		return
	}
	n := tr.Node(target)
	if n == nil {
		return
	}
	batch, ok := n.Handlers[kind]
	if !ok || batch.Empty() {
		return
	}
	seq.Submit(batch, sequencer.Fast)
}

// elapsed is a small helper for TimeUpdate-driven timers: the duration
// between two event timestamps, floored at zero to tolerate a host that
// delivers a TimeUpdate with a timestamp older than the last sample.
func elapsed(since, now time.Duration) time.Duration {
	d := now - since
	if d < 0 {
		return 0
	}
	return d
}

var _ tree.GestureHandler = (*Tap)(nil)
var _ tree.GestureHandler = (*LongPress)(nil)
var _ tree.GestureHandler = (*DoublePress)(nil)
var _ tree.GestureHandler = (*SwipeAway)(nil)

// Step names one named phase of a multi-phase gesture (e.g. SwipeAway's
// move/done/reset) along with the command batch that phase runs. None
// of the gesture types in this package is built from Steps directly —
// SwipeAway's three phases are few enough to stay as plain method calls
// — but RunStep gives a future gesture a place to hang an arbitrary
// number of named phases without the pointer pipeline needing to know
// about them, since it only ever sees a tree.GestureHandler.
type Step struct {
	Name     string
	Commands sequencer.Batch
}

// RunStep submits step's batch through seq in mode, merging vars into
// the batch's bound variables the same way a gesture's own move/done
// hooks do.
func RunStep(seq sequencer.Sequencer, step Step, mode sequencer.Mode, vars map[string]any) {
	submit(seq, step.Commands.WithVars(vars), mode)
}
