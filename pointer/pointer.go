// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer implements the pointer event wire contract of §6: the
// immutable record the host hands the core on every Down/Move/Up/Cancel
// (plus the core-internal TimeUpdate and TargetChanged kinds used to
// drive timers and re-hit-test after a tree mutation).
package pointer

import (
	"time"

	"github.com/fluxkit/interaction/f32"
)

// ID identifies one pointer (finger or mouse cursor) across its
// Down...Up/Cancel lifetime.
type ID uint64

// Kind is the type of a pointer Event.
type Kind uint8

const (
	// Down is the initial touch/press of a pointer.
	Down Kind = iota
	// Move is reported for every subsequent position change while the
	// pointer is down, or while hovering for mouse sources.
	Move
	// Up is the release of a pointer.
	Up
	// Cancel is synthetic-or-real per invariant I4: delivered whenever
	// a gesture takes capture mid-interaction, or the host aborts the
	// stream (e.g. an incoming phone call).
	Cancel
	// TimeUpdate carries no position change; it exists purely to let
	// gesture timers (LongPress, DoublePress) and SwipeAway's
	// post-release animation observe the passage of time without a
	// corresponding pointer movement.
	TimeUpdate
	// TargetChanged is delivered after a tree mutation invalidates the
	// pipeline's notion of which component owns an in-progress pointer
	// stream, forcing a re-hit-test on the next real event.
	TargetChanged
)

// Source distinguishes the physical input device, since tap travel and
// velocity thresholds in §6 are tuned for touch and are overly strict
// for the much smaller, higher-precision motion of a mouse.
type Source uint8

const (
	// Touch is a finger or stylus contact.
	Touch Source = iota
	// Mouse is a pointing device with discrete buttons.
	Mouse
)

// Event is an immutable pointer event record (§3 "PointerEvent").
type Event struct {
	Kind     Kind
	Position f32.Point
	Pointer  ID
	Source   Source
	Time     time.Duration
}

// ImplementsEvent marks Event as an event.Event.
func (Event) ImplementsEvent() {}

func (k Kind) String() string {
	switch k {
	case Down:
		return "Down"
	case Move:
		return "Move"
	case Up:
		return "Up"
	case Cancel:
		return "Cancel"
	case TimeUpdate:
		return "TimeUpdate"
	case TargetChanged:
		return "TargetChanged"
	default:
		return "Unknown"
	}
}
