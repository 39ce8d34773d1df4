// SPDX-License-Identifier: Unlicense OR MIT

package velocity_test

import (
	"testing"
	"time"

	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/velocity"
)

func TestQueryClampsToMaximum(t *testing.T) {
	tr := velocity.NewTracker(50, 1200)
	base := time.Duration(0)
	for i := 0; i < 6; i++ {
		// 300 units per 16ms tick ~= 18750 units/s, well above max.
		tr.Sample(base+time.Duration(i)*16*time.Millisecond, f32.Pt(float32(i)*300, 0))
	}
	v := tr.Query()
	if got := v.Len(); got > 1200.01 {
		t.Errorf("velocity magnitude %v exceeds MaxFlingVelocity", got)
	}
}

func TestQueryZeroesBelowMinimum(t *testing.T) {
	tr := velocity.NewTracker(50, 1200)
	base := time.Duration(0)
	for i := 0; i < 6; i++ {
		tr.Sample(base+time.Duration(i)*16*time.Millisecond, f32.Pt(float32(i)*0.1, 0))
	}
	v := tr.Query()
	if v != (f32.Point{}) {
		t.Errorf("expected zero velocity below MinFlingVelocity, got %v", v)
	}
}

func TestResetClearsSamples(t *testing.T) {
	tr := velocity.NewTracker(50, 1200)
	tr.Sample(0, f32.Pt(0, 0))
	tr.Sample(16*time.Millisecond, f32.Pt(100, 0))
	tr.Reset()
	if v := tr.Query(); v != (f32.Point{}) {
		t.Errorf("expected zero velocity after reset, got %v", v)
	}
}
