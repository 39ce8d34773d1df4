// SPDX-License-Identifier: Unlicense OR MIT

// Package scroller implements the Scroller Animator (§4.2) and its
// attached intrinsic Scroll gesture (§4.3.5). One Scroller instance
// owns a single scrollable Node's ScrollPos animation; package core
// drives it through Tick on every UpdateTime, and its Scroll gesture
// drives it on every pointer event.
package scroller

import (
	"math"
	"time"

	"github.com/fluxkit/interaction/config"
	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/internal/easing"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
	"github.com/fluxkit/interaction/unit"
)

// Phase is the Scroller's current animation mode.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseCommanded
	PhaseFling
	PhaseSnapping
)

// Scroller drives one scrollable Node's ScrollPos over time (§4.2).
type Scroller struct {
	cfg config.Config
	seq sequencer.Sequencer

	phase Phase

	startTime time.Duration
	duration  time.Duration

	startAxisPos float32
	targetAxisPos float32

	// fling-only.
	flingVelocity float32 // local units/s along the scroll axis at start
	lastVelocity  float32 // local units/s at the moment the fling phase ended

	minFlingVelocity float32 // px/s, converted from cfg.MinimumFlingVelocity
}

// New returns an idle Scroller. metric resolves cfg's dp-denominated
// MinimumFlingVelocity threshold to the px/s units Tick and StartFling
// work in.
func New(cfg config.Config, metric unit.Metric, seq sequencer.Sequencer) *Scroller {
	return &Scroller{
		cfg:              cfg,
		seq:              seq,
		minFlingVelocity: float32(metric.Dp(float32(cfg.MinimumFlingVelocity))),
	}
}

// Active reports whether an animation is in flight.
func (s *Scroller) Active() bool { return s.phase != PhaseIdle }

// Stop cancels any in-flight animation immediately, leaving ScrollPos
// at its current value (§4.2 Cancellation).
func (s *Scroller) Stop() { s.phase = PhaseIdle }

func axisValue(axis tree.Axis, p f32.Point) float32 {
	if axis == tree.Horizontal {
		return p.X
	}
	return p.Y
}

func setAxisValue(axis tree.Axis, p *f32.Point, v float32) {
	if axis == tree.Horizontal {
		p.X = v
	} else {
		p.Y = v
	}
}

func contentLength(n *tree.Node) float32 { return axisValue(n.ScrollAxis, n.ContentExtent) }

func maxScroll(n *tree.Node, viewportExtent float32) float32 {
	m := contentLength(n) - viewportExtent
	if m < 0 {
		return 0
	}
	return m
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StartCommanded begins a (a) commanded scroll (§4.2a): deltaViewports
// is expressed in multiples of the viewport's axis extent, duration 0
// meaning cfg.ScrollCommandDuration.
func (s *Scroller) StartCommanded(tr *tree.Tree, idx tree.Index, now time.Duration, deltaViewports float32, duration time.Duration, viewportExtent float32) {
	n := tr.Node(idx)
	if n == nil {
		return
	}
	if duration <= 0 {
		duration = s.cfg.ScrollCommandDuration
	}
	cur := axisValue(n.ScrollAxis, n.ScrollPos)
	target := clamp(cur+deltaViewports*viewportExtent, 0, maxScroll(n, viewportExtent))
	s.phase = PhaseCommanded
	s.startTime = now
	s.duration = duration
	s.startAxisPos = cur
	s.targetAxisPos = target
}

// StartFling begins a (b) fling scroll (§4.2b) from velocityLocal, the
// already-converted local-axis velocity (global velocity divided by the
// component's effective scale, per "Coordinate handling").
// forceSnapFromCancel marks a Cancel-triggered snap that bypasses the velocity check below.
func (s *Scroller) StartFling(tr *tree.Tree, idx tree.Index, now time.Duration, velocityLocal float32, forceSnapFromCancel bool) {
	n := tr.Node(idx)
	if n == nil {
		return
	}
	if forceSnapFromCancel {
		// §4.3.5 "On Cancel: stop at current position and run snap
		// (force-snap variants only)".
		if n.Snap.Force() {
			s.settleAndSnap(tr, idx, now, 0)
		} else {
			s.phase = PhaseIdle
		}
		return
	}
	if velocityLocal == 0 {
		s.lastVelocity = 0
		s.maybeSnap(tr, idx, now, false)
		return
	}
	decel := s.cfg.UEScrollerDeceleration
	if decel <= 0 {
		decel = 0.2
	}
	// Exponential decay v(t) = v0 * decel^t; run length to "zero" is
	// bounded, so solve for when |v| drops under 1 unit/s.
	runLength := time.Duration(0)
	if abs32(velocityLocal) > 1 {
		// t = ln(1/|v0|) / ln(decel)
		t := math.Log(1/float64(abs32(velocityLocal))) / math.Log(float64(decel))
		if t > 0 {
			runLength = time.Duration(t * float64(time.Second))
		}
	}
	if runLength <= 0 || runLength > s.cfg.UEScrollerMaxDuration {
		runLength = s.cfg.UEScrollerMaxDuration
	}
	distance := velocityLocal * float32(runLength.Seconds()) / 2 // area under a linearly-eased decay to 0
	cur := axisValue(n.ScrollAxis, n.ScrollPos)
	target := clamp(cur+distance, 0, maxScroll(n, axisExtentOf(n)))
	s.phase = PhaseFling
	s.startTime = now
	s.duration = runLength
	s.startAxisPos = cur
	s.targetAxisPos = target
	s.flingVelocity = velocityLocal
}

// axisExtentOf is a fallback when the caller hasn't threaded the live
// viewport extent through; Scroller only needs it to clamp the fling
// target, so an approximation from the node's own bounds is adequate.
func axisExtentOf(n *tree.Node) float32 {
	if n.ScrollAxis == tree.Horizontal {
		return n.Bounds.Dx()
	}
	return n.Bounds.Dy()
}

// Tick advances the active animation to time now, committing ScrollPos
// on tr's node and returning whether an animation is still in flight
// afterward (§5 Ordering (i)).
func (s *Scroller) Tick(tr *tree.Tree, idx tree.Index, now time.Duration) bool {
	n := tr.Node(idx)
	if n == nil || s.phase == PhaseIdle {
		return false
	}
	elapsedDur := now - s.startTime
	if elapsedDur < 0 {
		elapsedDur = 0
	}
	frac := float32(1)
	if s.duration > 0 {
		frac = clamp(float32(elapsedDur)/float32(s.duration), 0, 1)
	}
	switch s.phase {
	case PhaseCommanded:
		eased := s.cfg.ScrollCommandEasing
		if eased == nil {
			eased = easing.Linear
		}
		pos := s.startAxisPos + (s.targetAxisPos-s.startAxisPos)*eased(frac)
		setAxisValue(n.ScrollAxis, &n.ScrollPos, pos)
		if frac >= 1 {
			s.phase = PhaseIdle
			s.submitOnScroll(n)
			return false
		}
		return true
	case PhaseFling:
		veased := s.cfg.UEScrollerVelocityEasing
		if veased == nil {
			veased = easing.Linear
		}
		deased := s.cfg.UEScrollerDurationEasing
		if deased == nil {
			deased = easing.CubicEaseOut
		}
		pos := s.startAxisPos + (s.targetAxisPos-s.startAxisPos)*deased(frac)
		clamped := clamp(pos, 0, maxScroll(n, axisExtentOf(n)))
		setAxisValue(n.ScrollAxis, &n.ScrollPos, clamped)
		s.lastVelocity = s.flingVelocity * (1 - veased(frac))
		stoppedAtEdge := clamped != pos
		if frac >= 1 || stoppedAtEdge {
			s.phase = PhaseIdle
			s.submitOnScroll(n)
			s.maybeSnap(tr, idx, now, stoppedAtEdge)
			return s.phase != PhaseIdle
		}
		return true
	case PhaseSnapping:
		eased := easing.CubicEaseOut
		pos := s.startAxisPos + (s.targetAxisPos-s.startAxisPos)*eased(frac)
		setAxisValue(n.ScrollAxis, &n.ScrollPos, pos)
		if frac >= 1 {
			s.phase = PhaseIdle
			s.submitOnScroll(n)
			return false
		}
		return true
	}
	return false
}

func (s *Scroller) submitOnScroll(n *tree.Node) {
	if s.seq == nil || n.OnScroll.Empty() {
		return
	}
	s.seq.Submit(n.OnScroll, sequencer.Normal)
}

// maybeSnap runs the §4.2 "Snap selection" rules once a fling settles.
func (s *Scroller) maybeSnap(tr *tree.Tree, idx tree.Index, now time.Duration, clampedAtEdge bool) {
	n := tr.Node(idx)
	if n == nil || n.Snap == tree.SnapNone {
		return
	}
	if !n.Snap.Force() {
		if clampedAtEdge {
			return
		}
		if abs32(s.lastVelocity) >= s.minFlingVelocity {
			return
		}
	} else if clampedAtEdge {
		return
	}
	s.settleAndSnap(tr, idx, now, axisExtentOf(n))
}

// settleAndSnap starts the ScrollSnapDuration animation to the nearest
// snap-policy target. viewportExtent of 0 asks settleAndSnap to derive
// it from the node's own bounds.
func (s *Scroller) settleAndSnap(tr *tree.Tree, idx tree.Index, now time.Duration, viewportExtent float32) {
	n := tr.Node(idx)
	if n == nil || n.Snap == tree.SnapNone {
		s.phase = PhaseIdle
		return
	}
	if viewportExtent <= 0 {
		viewportExtent = axisExtentOf(n)
	}
	cur := axisValue(n.ScrollAxis, n.ScrollPos)
	target, ok := snapTarget(tr, idx, n, cur, viewportExtent)
	if !ok || target == cur {
		s.phase = PhaseIdle
		return
	}
	s.phase = PhaseSnapping
	s.startTime = now
	s.duration = s.cfg.ScrollSnapDuration
	s.startAxisPos = cur
	s.targetAxisPos = clamp(target, 0, maxScroll(n, viewportExtent))
}

// snapTarget implements "Snap selection" (§4.2): picks the target
// scroll offset for n's snap policy given the current scroll position
// and viewport extent along n's scroll axis.
func snapTarget(tr *tree.Tree, idx tree.Index, n *tree.Node, cur, viewportExtent float32) (float32, bool) {
	children := n.Children()
	if len(children) == 0 {
		return 0, false
	}
	axis := n.ScrollAxis
	type edge struct{ start, end, center float32 }
	edges := make([]edge, 0, len(children))
	for _, c := range children {
		cn := tr.Node(c)
		if cn == nil {
			continue
		}
		start := axisValue(axis, cn.Bounds.Min)
		end := axisValue(axis, cn.Bounds.Max)
		edges = append(edges, edge{start: start, end: end, center: (start + end) / 2})
	}
	if len(edges) == 0 {
		return 0, false
	}
	var (
		best         float32
		bestDistance float32
		found        bool
	)
	switch n.Snap {
	case tree.SnapStart, tree.SnapForceStart:
		found = false
		for _, e := range edges {
			if e.start >= cur {
				d := e.start - cur
				if !found || d < bestDistance {
					best, bestDistance, found = e.start, d, true
				}
			}
		}
		if !found {
			last := edges[len(edges)-1]
			best, found = last.start, true
		}
	case tree.SnapCenter, tree.SnapForceCenter:
		viewportCenter := cur + viewportExtent/2
		for _, e := range edges {
			d := abs32(e.center - viewportCenter)
			if !found || d < bestDistance {
				best, bestDistance, found = e.center-viewportExtent/2, d, true
			}
		}
	case tree.SnapEnd, tree.SnapForceEnd:
		threshold := cur + viewportExtent
		for _, e := range edges {
			if e.end >= threshold {
				d := e.end - threshold
				if !found || d < bestDistance {
					best, bestDistance, found = e.end-viewportExtent, d, true
				}
			}
		}
		if !found {
			last := edges[len(edges)-1]
			best, found = last.end-viewportExtent, true
		}
	}
	return best, found
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
