// SPDX-License-Identifier: Unlicense OR MIT

package f32

import (
	"math"
	"testing"
)

func eq(p1, p2 Point) bool {
	tol := 1e-4
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	return math.Abs(math.Sqrt(float64(dx*dx+dy*dy))) < tol
}

func TestOffset(t *testing.T) {
	p := Pt(1, 2)
	o := Pt(2, -3)
	r := Affine2D{}.Offset(o).Transform(p)
	if !eq(r, Pt(3, -1)) {
		t.Errorf("offset mismatch: have %v, want {3 -1}", r)
	}
	inv, ok := Affine2D{}.Offset(o).Invert()
	if !ok {
		t.Fatal("invert failed")
	}
	if i := inv.Transform(r); !eq(i, p) {
		t.Errorf("offset inverse mismatch: have %v, want %v", i, p)
	}
}

func TestScale(t *testing.T) {
	p := Pt(1, 2)
	s := Pt(-1, 2)
	r := Affine2D{}.Scale(Point{}, s).Transform(p)
	if !eq(r, Pt(-1, 4)) {
		t.Errorf("scale mismatch: have %v, want {-1 4}", r)
	}
}

func TestRotate(t *testing.T) {
	p := Pt(1, 0)
	r := Affine2D{}.Rotate(Point{}, float32(math.Pi/2)).Transform(p)
	if !eq(r, Pt(0, 1)) {
		t.Errorf("rotate mismatch: have %v, want {0 1}", r)
	}
}

func TestDegenerateInvert(t *testing.T) {
	a := Affine2D{}.Scale(Point{}, Pt(0, 1))
	_, ok := a.Invert()
	if ok {
		t.Fatal("expected degenerate transform to fail inversion")
	}
}

func TestScaleFactor(t *testing.T) {
	a := Affine2D{}.Scale(Point{}, Pt(2, 3))
	sf := a.ScaleFactor()
	if !eq(sf, Pt(2, 3)) {
		t.Errorf("scale factor mismatch: have %v, want {2 3}", sf)
	}
}

func TestRectangleIntersect(t *testing.T) {
	r := Rect(0, 0, 10, 10).Intersect(Rect(5, 5, 20, 20))
	if r != Rect(5, 5, 10, 10) {
		t.Errorf("intersect mismatch: have %v", r)
	}
	if empty := Rect(0, 0, 1, 1).Intersect(Rect(5, 5, 6, 6)); !empty.Empty() {
		t.Errorf("expected empty intersection, got %v", empty)
	}
}
