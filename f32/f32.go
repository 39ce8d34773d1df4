// SPDX-License-Identifier: Unlicense OR MIT

// Package f32 is a float32 implementation of package image's Point and
// Rectangle, plus the 2-D affine transform the interaction core uses to
// move between viewport and component-local coordinate spaces.
//
// The coordinate space has the origin in the top left corner with the
// axes extending right and down.
package f32

import "math"

// Point is a two dimensional point.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Rectangle contains the points (X, Y) where Min.X <= X < Max.X,
// Min.Y <= Y < Max.Y.
type Rectangle struct {
	Min, Max Point
}

// Rect is shorthand for Rectangle{Min: Pt(x0,y0), Max: Pt(x1,y1)}.
func Rect(x0, y0, x1, y1 float32) Rectangle {
	return Rectangle{Min: Pt(x0, y0), Max: Pt(x1, y1)}
}

// Add returns the point p+p2.
func (p Point) Add(p2 Point) Point { return Point{X: p.X + p2.X, Y: p.Y + p2.Y} }

// Sub returns the vector p-p2.
func (p Point) Sub(p2 Point) Point { return Point{X: p.X - p2.X, Y: p.Y - p2.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float32) Point { return Point{X: p.X * s, Y: p.Y * s} }

// Dot returns the dot product of p and p2.
func (p Point) Dot(p2 Point) float32 { return p.X*p2.X + p.Y*p2.Y }

// Len returns the Euclidean length of p.
func (p Point) Len() float32 { return float32(math.Hypot(float64(p.X), float64(p.Y))) }

// Size returns r's width and height.
func (r Rectangle) Size() Point { return Point{X: r.Dx(), Y: r.Dy()} }

// Dx returns r's width.
func (r Rectangle) Dx() float32 { return r.Max.X - r.Min.X }

// Dy returns r's height.
func (r Rectangle) Dy() float32 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint of r.
func (r Rectangle) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Add returns r translated by p.
func (r Rectangle) Add(p Point) Rectangle {
	return Rectangle{Min: r.Min.Add(p), Max: r.Max.Add(p)}
}

// Contains reports whether p is inside r (half-open on Max).
func (r Rectangle) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X < r.Max.X && r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// Intersect returns the largest rectangle contained in both r and s. If
// the two rectangles do not overlap, the zero Rectangle is returned.
func (r Rectangle) Intersect(s Rectangle) Rectangle {
	if r.Min.X < s.Min.X {
		r.Min.X = s.Min.X
	}
	if r.Min.Y < s.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if r.Max.X > s.Max.X {
		r.Max.X = s.Max.X
	}
	if r.Max.Y > s.Max.Y {
		r.Max.Y = s.Max.Y
	}
	if r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y {
		return Rectangle{}
	}
	return r
}

// Empty reports whether r encloses no area.
func (r Rectangle) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Affine2D is a 2-D affine transformation matrix in row-major order:
//
//	a b c
//	d e f
//	0 0 1
//
// The zero value of Affine2D is the identity transform.
type Affine2D struct {
	a, b, c float32
	d, e, f float32
	set     bool
}

// split returns a, or the multiplicative identity when a is the zero
// value, since the zero value of Affine2D has a==0 rather than a==1.
func (a Affine2D) split() (m Affine2D) {
	if !a.set {
		return Affine2D{a: 1, e: 1, set: true}
	}
	return a
}

// Offset returns a transform that translates by o.
func (a Affine2D) Offset(o Point) Affine2D {
	return a.mul(Affine2D{a: 1, c: o.X, e: 1, f: o.Y, set: true})
}

// Scale returns a transform that scales about origin by s.
func (a Affine2D) Scale(origin, s Point) Affine2D {
	return a.mul(Affine2D{
		a: s.X, c: origin.X - s.X*origin.X,
		e: s.Y, f: origin.Y - s.Y*origin.Y,
		set: true,
	})
}

// Rotate returns a transform that rotates about origin by radians
// (clockwise, since the Y axis points down).
func (a Affine2D) Rotate(origin Point, radians float32) Affine2D {
	sin, cos := float32(math.Sin(float64(radians))), float32(math.Cos(float64(radians)))
	return a.mul(Affine2D{
		a: cos, b: -sin, c: origin.X - cos*origin.X + sin*origin.Y,
		d: sin, e: cos, f: origin.Y - sin*origin.X - cos*origin.Y,
		set: true,
	})
}

// Shear returns a transform that shears about origin by the given
// radians along each axis.
func (a Affine2D) Shear(origin Point, ax, ay float32) Affine2D {
	tx, ty := float32(math.Tan(float64(ax))), float32(math.Tan(float64(ay)))
	return a.mul(Affine2D{
		a: 1, b: tx, c: -tx * origin.Y,
		d: ty, e: 1, f: -ty * origin.X,
		set: true,
	})
}

// Multiply returns b∘a: transforming by the result is equivalent to
// transforming by a then by b.
func (a Affine2D) Multiply(b Affine2D) Affine2D {
	return b.mul(a)
}

func (a Affine2D) mul(b Affine2D) Affine2D {
	a, b = a.split(), b.split()
	return Affine2D{
		a: a.a*b.a + a.b*b.d,
		b: a.a*b.b + a.b*b.e,
		c: a.a*b.c + a.b*b.f + a.c,
		d: a.d*b.a + a.e*b.d,
		e: a.d*b.b + a.e*b.e,
		f: a.d*b.c + a.e*b.f + a.f,
		set: true,
	}
}

// Transform returns a transformed by a.
func (a Affine2D) Transform(p Point) Point {
	a = a.split()
	return Point{
		X: a.a*p.X + a.b*p.Y + a.c,
		Y: a.d*p.X + a.e*p.Y + a.f,
	}
}

// TransformVector transforms p ignoring translation. Use for velocities
// and deltas, not positions.
func (a Affine2D) TransformVector(p Point) Point {
	a = a.split()
	return Point{
		X: a.a*p.X + a.b*p.Y,
		Y: a.d*p.X + a.e*p.Y,
	}
}

// Determinant returns the determinant of the linear part of a.
func (a Affine2D) Determinant() float32 {
	a = a.split()
	return a.a*a.e - a.b*a.d
}

// Invert returns the inverse of a. If a is degenerate (zero
// determinant), Invert returns the identity and ok is false; callers
// must treat this as the degenerate-transform condition of §7 and
// abandon the hit-test or gesture in progress.
func (a Affine2D) Invert() (inv Affine2D, ok bool) {
	a = a.split()
	det := a.Determinant()
	if det == 0 {
		return Affine2D{a: 1, e: 1, set: true}, false
	}
	invDet := 1 / det
	ia := a.e * invDet
	ib := -a.b * invDet
	id := -a.d * invDet
	ie := a.a * invDet
	ic := -(ia*a.c + ib*a.f)
	iF := -(id*a.c + ie*a.f)
	return Affine2D{a: ia, b: ib, c: ic, d: id, e: ie, f: iF, set: true}, true
}

// ScaleFactor returns the effective scale of a along the X and Y axes,
// used to convert pointer-movement deltas between global and local
// coordinates (§4.2 "Coordinate handling").
func (a Affine2D) ScaleFactor() Point {
	a = a.split()
	return Point{
		X: Pt(a.a, a.d).Len(),
		Y: Pt(a.b, a.e).Len(),
	}
}
