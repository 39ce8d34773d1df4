// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"

	"github.com/fluxkit/interaction/f32"
)

// Tap recognizes a bounded-travel, bounded-velocity press-release
// (§4.3.1). It is distinct from the pointer pipeline's always-available
// onPress synthesis: an author attaches Tap only when they need the
// onTap command batch specifically.
type Tap struct {
	base

	MaxTravel   float32
	MaxVelocity float32
	OnTap       sequencer.Batch
	Seq         sequencer.Sequencer

	startPos  f32.Point
	startTime time.Duration
}

// NewTap constructs a Tap gesture with the given thresholds (global
// units) and command batch.
func NewTap(maxTravel, maxVelocity float32, onTap sequencer.Batch, seq sequencer.Sequencer) *Tap {
	return &Tap{MaxTravel: maxTravel, MaxVelocity: maxVelocity, OnTap: onTap, Seq: seq}
}

// Reset returns the gesture to Idle.
func (g *Tap) Reset() { g.reset() }

// Consume advances the Tap state machine (§4.3.1).
func (g *Tap) Consume(_ tree.Index, _ *tree.Tree, ev pointer.Event, t time.Duration) tree.GestureOutcome {
	switch ev.Kind {
	case pointer.Down:
		g.state = Started
		g.startPos = ev.Position
		g.startTime = ev.Time
		return tree.GestureOutcome{}
	case pointer.Move:
		if g.state != Started {
			return tree.GestureOutcome{}
		}
		if travel(g.startPos, ev.Position) > g.MaxTravel {
			g.reset()
		}
		return tree.GestureOutcome{}
	case pointer.Up:
		if g.state != Started {
			return tree.GestureOutcome{}
		}
		dist := travel(g.startPos, ev.Position)
		dt := (ev.Time - g.startTime).Seconds()
		var vel float32
		if dt > 0 {
			vel = dist / float32(dt)
		}
		if dist <= g.MaxTravel && vel <= g.MaxVelocity {
			submit(g.Seq, g.OnTap, sequencer.Normal)
			g.state = Completed
			return tree.GestureOutcome{Triggered: true}
		}
		g.reset()
		return tree.GestureOutcome{}
	case pointer.Cancel:
		g.reset()
		return tree.GestureOutcome{}
	default:
		return tree.GestureOutcome{}
	}
}
