// SPDX-License-Identifier: Unlicense OR MIT

// Package velocity implements the Velocity Tracker (§4.1): a 2-D
// estimator fed pointer samples in global coordinates, queried at
// release for the clamped global velocity used to seed a fling.
package velocity

import (
	"time"

	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/internal/extrapolate"
)

// Tracker accumulates (time, global position) samples for a single
// pointer stream and reports a smoothed velocity on Query. Velocity is
// always reported in global coordinate units per second, even when the
// tracked component has a non-identity transform — converting to local
// axes is the caller's responsibility (§4.1).
type Tracker struct {
	x, y extrapolate.Extrapolation

	minFling float32
	maxFling float32
}

// NewTracker returns a Tracker whose queried velocity is zeroed when its
// magnitude is below minFling and clamped to maxFling above it.
func NewTracker(minFling, maxFling float32) *Tracker {
	return &Tracker{minFling: minFling, maxFling: maxFling}
}

// Reset discards all recorded samples, preparing the tracker to track a
// new pointer stream.
func (t *Tracker) Reset() {
	t.x.Reset()
	t.y.Reset()
}

// Sample records a pointer position at time ts, in global coordinates.
func (t *Tracker) Sample(ts time.Duration, p f32.Point) {
	t.x.Sample(ts, p.X)
	t.y.Sample(ts, p.Y)
}

// Query returns the current smoothed global velocity, with its
// magnitude clamped to MaxFlingVelocity and zeroed if below
// MinFlingVelocity.
func (t *Tracker) Query() f32.Point {
	vx := t.x.Estimate().Velocity
	vy := t.y.Estimate().Velocity
	v := f32.Pt(vx, vy)
	mag := v.Len()
	if mag < t.minFling {
		return f32.Point{}
	}
	if mag > t.maxFling && mag > 0 {
		scale := t.maxFling / mag
		v = v.Mul(scale)
	}
	return v
}
