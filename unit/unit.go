// SPDX-License-Identifier: Unlicense OR MIT

// Package unit implements the device-independent units used throughout
// the interaction core's configuration surface (§6): device independent
// pixels (dp), scaled pixels (sp) for text-relative sizes, and device
// pixels (px) for values already resolved to a concrete display.
package unit

// Dp is a value in device independent pixels. 1 Dp has the same
// apparent size across displays of differing density.
type Dp float32

// Sp is a value in scaled pixels, a Dp with text scaling applied.
type Sp float32

// Px is a value in device pixels, resolved for a specific display.
type Px float32

// Metric converts device-independent values to device pixels for one
// display. The zero Metric is invalid; hosts must supply PxPerDp (and
// PxPerSp, when text scaling differs from density scaling).
type Metric struct {
	PxPerDp float32
	PxPerSp float32
}

// Dp converts v device-independent pixels to device pixels.
func (m Metric) Dp(v float32) Px { return Px(v * m.PxPerDp) }

// Sp converts v scaled pixels to device pixels.
func (m Metric) Sp(v float32) Px { return Px(v * m.PxPerSp) }

// DpToSp converts a Dp-scaled value to the equivalent Sp-scaled value.
func (m Metric) DpToSp(v float32) float32 { return v * m.PxPerDp / m.PxPerSp }

// SpToDp converts an Sp-scaled value to the equivalent Dp-scaled value.
func (m Metric) SpToDp(v float32) float32 { return v * m.PxPerSp / m.PxPerDp }

// PxToDp converts device pixels back to device-independent pixels.
func (m Metric) PxToDp(px Px) Dp { return Dp(float32(px) / m.PxPerDp) }

// PxToSp converts device pixels back to scaled pixels.
func (m Metric) PxToSp(px Px) Sp { return Sp(float32(px) / m.PxPerSp) }
