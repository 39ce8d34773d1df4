// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
)

// LongPress fires onLongPressStart once the pointer has remained down
// and within travel bounds for LongPressTimeout, and onLongPressEnd on
// release (§4.3.2). Once triggered it passes every subsequent pointer
// event through to the component's ordinary handlers as well.
type LongPress struct {
	base

	Timeout        time.Duration
	MaxTapTravel   float32
	OnLongPressStart sequencer.Batch
	OnLongPressEnd   sequencer.Batch
	Seq              sequencer.Sequencer

	startPos  f32.Point
	startTime time.Duration
}

// NewLongPress constructs a LongPress gesture.
func NewLongPress(timeout time.Duration, maxTapTravel float32, start, end sequencer.Batch, seq sequencer.Sequencer) *LongPress {
	return &LongPress{Timeout: timeout, MaxTapTravel: maxTapTravel, OnLongPressStart: start, OnLongPressEnd: end, Seq: seq}
}

// Reset returns the gesture to Idle.
func (g *LongPress) Reset() { g.reset() }

// Consume advances the LongPress state machine (§4.3.2).
func (g *LongPress) Consume(_ tree.Index, _ *tree.Tree, ev pointer.Event, t time.Duration) tree.GestureOutcome {
	switch ev.Kind {
	case pointer.Down:
		g.state = Started
		g.startPos = ev.Position
		g.startTime = ev.Time
		return tree.GestureOutcome{}
	case pointer.Move:
		if g.state == Idle || g.state == Completed {
			return tree.GestureOutcome{}
		}
		if travel(g.startPos, ev.Position) > g.MaxTapTravel {
			g.reset()
			return tree.GestureOutcome{}
		}
		if g.state == Triggered {
			return tree.GestureOutcome{Triggered: true, PassThrough: true}
		}
		return tree.GestureOutcome{}
	case pointer.TimeUpdate:
		if g.state != Started {
			return tree.GestureOutcome{}
		}
		if elapsed(g.startTime, ev.Time) >= g.Timeout {
			g.state = Triggered
			submit(g.Seq, g.OnLongPressStart, sequencer.Normal)
			return tree.GestureOutcome{Triggered: true, PassThrough: true}
		}
		return tree.GestureOutcome{}
	case pointer.Up:
		switch g.state {
		case Triggered:
			submit(g.Seq, g.OnLongPressEnd, sequencer.Normal)
			g.state = Completed
			return tree.GestureOutcome{Triggered: true, PassThrough: true}
		default:
			g.reset()
			return tree.GestureOutcome{}
		}
	case pointer.Cancel:
		wasTriggered := g.state == Triggered
		g.reset()
		return tree.GestureOutcome{PassThrough: !wasTriggered}
	default:
		return tree.GestureOutcome{}
	}
}
