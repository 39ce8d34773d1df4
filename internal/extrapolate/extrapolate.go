// SPDX-License-Identifier: Unlicense OR MIT

// Package extrapolate fits a quadratic curve through recent (time,
// position) samples by least squares and reports the instantaneous
// velocity and total displacement implied by the fit. It is the
// numerical core of the Velocity Tracker (§4.1): a sliding window of
// samples, fitted by linear least squares, clamped and zeroed by the
// caller.
package extrapolate

import "time"

// maxSamples bounds the sliding window; old samples are dropped once the
// window is full, satisfying the "last <=N samples (>=3)" freedom in
// §4.1 with N=20, matching the window size used by production fling
// estimators for single-pointer drags.
const maxSamples = 20

// degree is the polynomial degree fitted to the samples: a quadratic is
// enough to capture acceleration/deceleration across a short drag while
// staying numerically well-conditioned for the small windows used here.
const degree = 2

// Sample is one (time, position) observation along a single axis.
type Sample struct {
	T time.Duration
	V float32
}

// Estimate is the result of fitting the sample window: the
// instantaneous velocity (position units per second) and the net
// displacement (position units) covered by the window.
type Estimate struct {
	Velocity float32
	Distance float32
}

// Extrapolation accumulates position samples along one axis and fits a
// least-squares polynomial to estimate velocity at release.
type Extrapolation struct {
	samples []Sample
}

// Sample records a new (time, position) observation. Samples must be
// supplied in non-decreasing time order.
func (e *Extrapolation) Sample(t time.Duration, v float32) {
	e.samples = append(e.samples, Sample{T: t, V: v})
	if n := len(e.samples); n > maxSamples {
		e.samples = e.samples[n-maxSamples:]
	}
}

// Reset discards all recorded samples.
func (e *Extrapolation) Reset() {
	e.samples = e.samples[:0]
}

// Estimate fits the recorded samples and returns the velocity at the
// most recent sample and the net distance covered. With fewer than
// degree+1 samples it falls back to a simple secant between the first
// and last sample (or zero, with 0 or 1 samples).
func (e *Extrapolation) Estimate() Estimate {
	n := len(e.samples)
	if n == 0 {
		return Estimate{}
	}
	if n == 1 {
		return Estimate{}
	}
	first, last := e.samples[0], e.samples[n-1]
	dist := last.V - first.V
	if n < degree+1 {
		dt := (last.T - first.T).Seconds()
		if dt <= 0 {
			return Estimate{Distance: dist}
		}
		return Estimate{Velocity: dist / float32(dt), Distance: dist}
	}

	t0 := first.T
	xs := make([]float32, n)
	ys := make([]float32, n)
	for i, s := range e.samples {
		xs[i] = float32((s.T - t0).Seconds())
		ys[i] = s.V
	}
	coeffs, ok := polyFit(xs, ys)
	if !ok {
		dt := (last.T - first.T).Seconds()
		if dt <= 0 {
			return Estimate{Distance: dist}
		}
		return Estimate{Velocity: dist / float32(dt), Distance: dist}
	}
	tEnd := xs[n-1]
	// d/dt (c0 + c1*t + c2*t^2) = c1 + 2*c2*t
	vel := coeffs[1] + 2*coeffs[2]*tEnd
	return Estimate{Velocity: vel, Distance: dist}
}

// coefficients holds the fitted polynomial's coefficients, lowest
// degree first: coefficients{c0, c1, c2} represents c0 + c1*t + c2*t^2.
type coefficients [degree + 1]float32

func (c coefficients) approxEqual(o coefficients) bool {
	const tol = 1e-3
	for i := range c {
		d := c[i] - o[i]
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

// polyFit fits a degree-2 polynomial y = c0 + c1*x + c2*x^2 to the given
// samples by least squares, solved via a QR decomposition of the
// Vandermonde matrix.
func polyFit(xs, ys []float32) (coefficients, bool) {
	n := len(xs)
	if n != len(ys) || n < degree+1 {
		return coefficients{}, false
	}
	vander := &matrix{rows: n, cols: degree + 1, data: make([]float32, n*(degree+1))}
	for i, x := range xs {
		p := float32(1)
		for j := 0; j <= degree; j++ {
			vander.set(i, j, p)
			p *= x
		}
	}
	q, rt, ok := decomposeQR(vander)
	if !ok {
		return coefficients{}, false
	}
	// Solve R*c = Q^T*y by back substitution; Rt stores R transposed,
	// i.e. Rt.at(j,i) == R.at(i,j).
	qty := make([]float32, degree+1)
	for j := 0; j < degree+1; j++ {
		var sum float32
		for i := 0; i < n; i++ {
			sum += q.at(i, j) * ys[i]
		}
		qty[j] = sum
	}
	var c coefficients
	for i := degree; i >= 0; i-- {
		sum := qty[i]
		for j := i + 1; j <= degree; j++ {
			sum -= rt.at(j, i) * c[j]
		}
		diag := rt.at(i, i)
		if diag == 0 {
			return coefficients{}, false
		}
		c[i] = sum / diag
	}
	return c, true
}

// matrix is a dense row-major matrix of float32, sized at construction.
type matrix struct {
	rows, cols int
	data       []float32
}

func newMatrix(rows, cols int) *matrix {
	return &matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}
}

func (m *matrix) at(r, c int) float32   { return m.data[r*m.cols+c] }
func (m *matrix) set(r, c int, v float32) { m.data[r*m.cols+c] = v }

func (m *matrix) transpose() *matrix {
	t := newMatrix(m.cols, m.rows)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			t.set(c, r, m.at(r, c))
		}
	}
	return t
}

func (m *matrix) mul(o *matrix) *matrix {
	if m.cols != o.rows {
		panic("extrapolate: matrix dimension mismatch")
	}
	p := newMatrix(m.rows, o.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < o.cols; c++ {
			var sum float32
			for k := 0; k < m.cols; k++ {
				sum += m.at(r, k) * o.at(k, c)
			}
			p.set(r, c, sum)
		}
	}
	return p
}

func (m *matrix) approxEqual(o *matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	const tol = 1e-2
	for i := range m.data {
		d := m.data[i] - o.data[i]
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

// decomposeQR computes a reduced QR decomposition of A (rows >= cols)
// using the modified Gram-Schmidt process: A = Q*R, with Q having
// orthonormal columns and R upper triangular. Rt is returned transposed
// (cols x cols) since callers only ever need R's entries, not a
// generally-shaped matrix.
func decomposeQR(a *matrix) (q, rt *matrix, ok bool) {
	if a.rows < a.cols {
		return nil, nil, false
	}
	q = newMatrix(a.rows, a.cols)
	rt = newMatrix(a.cols, a.cols)
	// v starts as a copy of A's columns.
	v := make([][]float32, a.cols)
	for j := 0; j < a.cols; j++ {
		col := make([]float32, a.rows)
		for i := 0; i < a.rows; i++ {
			col[i] = a.at(i, j)
		}
		v[j] = col
	}
	for j := 0; j < a.cols; j++ {
		var norm float32
		for i := 0; i < a.rows; i++ {
			norm += v[j][i] * v[j][i]
		}
		norm = sqrt32(norm)
		if norm == 0 {
			return nil, nil, false
		}
		rt.set(j, j, norm)
		for i := 0; i < a.rows; i++ {
			q.set(i, j, v[j][i]/norm)
		}
		for k := j + 1; k < a.cols; k++ {
			var dot float32
			for i := 0; i < a.rows; i++ {
				dot += q.at(i, j) * v[k][i]
			}
			rt.set(k, j, dot)
			for i := 0; i < a.rows; i++ {
				v[k][i] -= dot * q.at(i, j)
			}
		}
	}
	return q, rt, true
}

func sqrt32(v float32) float32 {
	if v <= 0 {
		return 0
	}
	x := v
	for i := 0; i < 20; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}
