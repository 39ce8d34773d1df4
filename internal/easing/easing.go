// SPDX-License-Identifier: Unlicense OR MIT

// Package easing provides the small set of timing curves the Scroller
// and Pager animators apply to an animation's progress fraction (§4.2,
// §6), in the spirit of the example app's hand-rolled easeInOutCubic.
package easing

// Func maps a linear progress fraction in [0,1] to an eased fraction.
type Func func(t float32) float32

// Linear is the identity curve, the default Pager duration easing.
func Linear(t float32) float32 { return t }

// CubicEaseOut is the Scroller's snap curve, and its fling displacement
// curve when the configured duration easing is nil.
func CubicEaseOut(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// CubicBezier returns the easing curve of a CSS-style cubic Bezier with
// control points (0,0), (x1,y1), (x2,y2), (1,1) — the default
// ScrollCommandDuration curve is CubicBezier(0.42, 0, 0.58, 1) and the
// default UEScrollerDurationEasing is CubicBezier(0.65, 0, 0.35, 1).
// The returned Func solves for the Bezier parameter at x=t by
// Newton-Raphson, falling back to bisection if a step would leave
// [0,1].
func CubicBezier(x1, y1, x2, y2 float32) Func {
	bez := func(p0, p1, p2, p3, t float32) float32 {
		mt := 1 - t
		return mt*mt*mt*p0 + 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t*p3
	}
	bezDerivative := func(p0, p1, p2, p3, t float32) float32 {
		mt := 1 - t
		return 3*mt*mt*(p1-p0) + 6*mt*t*(p2-p1) + 3*t*t*(p3-p2)
	}
	return func(x float32) float32 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		t := x
		lo, hi := float32(0), float32(1)
		for i := 0; i < 8; i++ {
			cx := bez(0, x1, x2, 1, t) - x
			if cx > -1e-5 && cx < 1e-5 {
				break
			}
			if cx > 0 {
				hi = t
			} else {
				lo = t
			}
			d := bezDerivative(0, x1, x2, 1, t)
			if d == 0 {
				break
			}
			next := t - cx/d
			if next <= lo || next >= hi {
				next = (lo + hi) / 2
			}
			t = next
		}
		return bez(0, y1, y2, 1, t)
	}
}
