// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
)

// DoublePress models the iOS/macOS resolution of a first press as
// either a single press or the first half of a double press, with a
// bounded inter-press delay (§4.3.3). Per the SPEC_FULL.md supplement
// grounded on the original's doublepressgesture.cpp, the second press
// must also land within MaxTravel of the first.
type DoublePress struct {
	base

	Timeout        time.Duration
	MaxTravel      float32
	OnSinglePress  sequencer.Batch
	OnDoublePress  sequencer.Batch
	Seq            sequencer.Sequencer

	betweenPresses bool
	startPos       f32.Point
	startTime      time.Duration
}

// NewDoublePress constructs a DoublePress gesture.
func NewDoublePress(timeout time.Duration, maxTravel float32, single, double sequencer.Batch, seq sequencer.Sequencer) *DoublePress {
	return &DoublePress{Timeout: timeout, MaxTravel: maxTravel, OnSinglePress: single, OnDoublePress: double, Seq: seq}
}

// Reset returns the gesture to Idle.
func (g *DoublePress) Reset() {
	g.reset()
	g.betweenPresses = false
}

// Consume advances the DoublePress state machine (§4.3.3).
func (g *DoublePress) Consume(target tree.Index, tr *tree.Tree, ev pointer.Event, t time.Duration) tree.GestureOutcome {
	switch ev.Kind {
	case pointer.Down:
		switch {
		case g.state == Idle:
			g.state = Started
			g.startPos = ev.Position
			g.startTime = ev.Time
			return tree.GestureOutcome{}
		case g.state == Triggered && g.betweenPresses:
			if elapsed(g.startTime, ev.Time) > g.Timeout || travel(g.startPos, ev.Position) > g.MaxTravel {
				g.Reset()
				g.state = Started
				g.startPos = ev.Position
				g.startTime = ev.Time
				return tree.GestureOutcome{}
			}
			g.betweenPresses = false
			return tree.GestureOutcome{Triggered: true, PassThrough: true}
		default:
			return tree.GestureOutcome{}
		}
	case pointer.Up:
		switch {
		case g.state == Started:
			if elapsed(g.startTime, ev.Time) <= g.Timeout {
				g.state = Triggered
				g.betweenPresses = true
				g.startTime = ev.Time
				return tree.GestureOutcome{Triggered: true, PassThrough: true}
			}
			// Timeout already elapsed: fall through to ordinary onPress.
			g.reset()
			return tree.GestureOutcome{}
		case g.state == Triggered && !g.betweenPresses:
			submit(g.Seq, g.OnDoublePress, sequencer.Normal)
			// The second Up is ours alone: ordinary delivery never
			// sees it, so fire the Cancel it would otherwise have
			// carried (§4.3.3).
			submitHandler(g.Seq, tr, target, tree.HandlerCancel)
			g.Reset()
			return tree.GestureOutcome{Triggered: true}
		default:
			return tree.GestureOutcome{}
		}
	case pointer.TimeUpdate:
		if g.state == Triggered && g.betweenPresses && elapsed(g.startTime, ev.Time) >= g.Timeout {
			submit(g.Seq, g.OnSinglePress, sequencer.Normal)
			g.Reset()
		}
		return tree.GestureOutcome{}
	case pointer.Cancel:
		g.Reset()
		return tree.GestureOutcome{}
	default:
		return tree.GestureOutcome{}
	}
}
