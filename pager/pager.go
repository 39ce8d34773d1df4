// SPDX-License-Identifier: Unlicense OR MIT

// Package pager implements the Pager Animator (§4.2 "Pager Animator")
// and its attached intrinsic Paging gesture (§4.3.6), mirroring the
// structure of package scroller: one Pager instance owns a single
// paged Node's transition animation, and Paging is the tree.GestureHandler
// that drives it from pointer input.
package pager

import (
	"time"

	"github.com/fluxkit/interaction/config"
	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/internal/easing"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
)

// Hook receives every animation tick of an in-flight page transition
// (§4.2 "offers the author a hook"). current/next are the indices of
// the outgoing and incoming pages. When Hook is nil, Pager applies the
// default translate-by-axis-extent behavior itself.
type Hook func(amount float32, direction tree.FocusDirection, forward bool, current, next tree.Index)

// Phase is a Pager's current animation mode.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseDragging      // amount driven directly by the Paging gesture
	PhaseSettlingCommit // amount animating toward 1.0, page WILL change
	PhaseSettlingAbort  // amount animating toward 0.0, page stays put
)

// Pager drives one paged Node's current-page transition over time.
type Pager struct {
	cfg  config.Config
	seq  sequencer.Sequencer
	Hook Hook

	phase Phase

	startTime time.Duration
	duration  time.Duration

	fromPage, toPage int
	direction        tree.FocusDirection
	forward          bool

	amount       float32
	startAmount  float32
	currentBase  f32.Affine2D
	nextBase     f32.Affine2D
}

// New returns an idle Pager.
func New(cfg config.Config, seq sequencer.Sequencer, hook Hook) *Pager {
	return &Pager{cfg: cfg, seq: seq, Hook: hook}
}

// Active reports whether a page transition is in flight.
func (p *Pager) Active() bool { return p.phase != PhaseIdle }

// Stop cancels any in-flight transition immediately at its current
// value (§4.2 Cancellation).
func (p *Pager) Stop() { p.phase = PhaseIdle }

// forwardFor resolves §4.2 "Forward semantics" for a swipe direction
// against a paged node's axis and reading direction.
func forwardFor(n *tree.Node, dir tree.FocusDirection) bool {
	switch n.PageAxis {
	case tree.Horizontal:
		if n.Direction == tree.RTL {
			return dir == tree.Right
		}
		return dir == tree.Left
	default: // Vertical
		return dir == tree.Up
	}
}

// resolveTarget applies navigation policy to compute the candidate next
// page index, returning ok=false if the policy forbids the move.
func resolveTarget(n *tree.Node, forward bool) (int, bool) {
	if n.Nav == tree.NavNone {
		return n.Page, false
	}
	delta := 1
	if !forward {
		delta = -1
	}
	next := n.Page + delta
	switch n.Nav {
	case tree.NavWrap:
		if next < 0 {
			next = n.PageCount - 1
		} else if next >= n.PageCount {
			next = 0
		}
		return next, true
	case tree.NavForwardOnly:
		if !forward {
			return n.Page, false
		}
		if next >= n.PageCount {
			return n.Page, false
		}
		return next, true
	default: // NavNormal
		if next < 0 || next >= n.PageCount {
			return n.Page, false
		}
		return next, true
	}
}

func (p *Pager) pages(n *tree.Node) (current, next tree.Index) {
	children := n.Children()
	current, next = tree.NoIndex, tree.NoIndex
	if p.fromPage >= 0 && p.fromPage < len(children) {
		current = children[p.fromPage]
	}
	if p.toPage >= 0 && p.toPage < len(children) {
		next = children[p.toPage]
	}
	return
}

// Start begins a drag-tracked transition toward dir, recording each
// page's pre-transition transform so render can apply an absolute
// offset every call instead of compounding one onto itself.
func (p *Pager) Start(tr *tree.Tree, idx tree.Index, now time.Duration, dir tree.FocusDirection) bool {
	n := tr.Node(idx)
	if n == nil {
		return false
	}
	forward := forwardFor(n, dir)
	target, ok := resolveTarget(n, forward)
	if !ok {
		return false
	}
	p.phase = PhaseDragging
	p.fromPage = n.Page
	p.toPage = target
	p.direction = dir
	p.forward = forward
	p.amount = 0
	current, next := p.pages(n)
	if cn := tr.Node(current); cn != nil {
		p.currentBase = cn.Transform
	}
	if nn := tr.Node(next); nn != nil {
		p.nextBase = nn.Transform
	}
	return true
}

// SetProgress updates the live drag amount in [0,1] and re-renders
// immediately; used by Paging on every Move while dragging.
func (p *Pager) SetProgress(tr *tree.Tree, idx tree.Index, amount float32) {
	if p.phase != PhaseDragging {
		return
	}
	p.amount = clamp(amount, 0, 1)
	p.render(tr, idx, p.amount)
}

// Commit starts the settle-to-completion animation: amount eases from
// its current value to 1.0, and the page index changes on arrival.
func (p *Pager) Commit(now time.Duration) {
	if p.phase == PhaseIdle {
		return
	}
	p.startTime = now
	p.duration = p.cfg.DefaultPagerAnimationDuration
	p.startAmount = p.amount
	p.phase = PhaseSettlingCommit
}

// Abort starts the settle-back animation: amount eases from its current
// value back to 0.0, and the page index is left unchanged.
func (p *Pager) Abort(now time.Duration) {
	if p.phase == PhaseIdle {
		return
	}
	p.startTime = now
	p.duration = p.cfg.DefaultPagerAnimationDuration
	p.startAmount = p.amount
	p.phase = PhaseSettlingAbort
}

// Tick advances an in-flight settle animation to time now, rendering
// and, on completion, committing or discarding the page change.
func (p *Pager) Tick(tr *tree.Tree, idx tree.Index, now time.Duration) bool {
	n := tr.Node(idx)
	if n == nil || (p.phase != PhaseSettlingCommit && p.phase != PhaseSettlingAbort) {
		return p.phase == PhaseDragging
	}
	elapsedDur := now - p.startTime
	if elapsedDur < 0 {
		elapsedDur = 0
	}
	frac := float32(1)
	if p.duration > 0 {
		frac = clamp(float32(elapsedDur)/float32(p.duration), 0, 1)
	}
	eased := p.cfg.DefaultPagerAnimationEasing
	if eased == nil {
		eased = easing.Linear
	}
	target := float32(1)
	if p.phase == PhaseSettlingAbort {
		target = 0
	}
	amount := p.startAmount + (target-p.startAmount)*eased(frac)
	p.render(tr, idx, amount)
	if frac >= 1 {
		committed := p.phase == PhaseSettlingCommit
		p.phase = PhaseIdle
		if committed {
			n.Page = p.toPage
			if p.seq != nil && !n.OnPageMove.Empty() {
				p.seq.Submit(n.OnPageMove, sequencer.Normal)
			}
		} else {
			p.resetTransforms(tr, n)
		}
		return false
	}
	return true
}

func (p *Pager) resetTransforms(tr *tree.Tree, n *tree.Node) {
	current, next := p.pages(n)
	if cn := tr.Node(current); cn != nil {
		cn.Transform = p.currentBase
	}
	if nn := tr.Node(next); nn != nil {
		nn.Transform = p.nextBase
	}
}

func (p *Pager) render(tr *tree.Tree, idx tree.Index, amount float32) {
	n := tr.Node(idx)
	if n == nil {
		return
	}
	current, next := p.pages(n)
	if p.Hook != nil {
		p.Hook(amount, p.direction, p.forward, current, next)
		return
	}
	defaultTranslate(tr, current, next, amount, p.direction, p.currentBase, p.nextBase)
}

// directionVector is the unit vector a page-transition direction points
// along, analogous to package gesture's axisVector.
func directionVector(dir tree.FocusDirection) f32.Point {
	switch dir {
	case tree.Left:
		return f32.Pt(-1, 0)
	case tree.Right:
		return f32.Pt(1, 0)
	case tree.Up:
		return f32.Pt(0, -1)
	case tree.Down:
		return f32.Pt(0, 1)
	default:
		return f32.Point{}
	}
}

// defaultTranslate is the §4.2 default behavior: translate current by
// -amount*extent along direction, and next by (1-amount)*extent in the
// opposite direction, applied as an absolute offset atop each page's
// pre-transition base transform.
func defaultTranslate(tr *tree.Tree, current, next tree.Index, amount float32, dir tree.FocusDirection, currentBase, nextBase f32.Affine2D) {
	v := directionVector(dir)
	if cn := tr.Node(current); cn != nil {
		extent := extentOf(cn, dir)
		cn.Transform = currentBase.Offset(v.Mul(-amount * extent))
	}
	if nn := tr.Node(next); nn != nil {
		extent := extentOf(nn, dir)
		nn.Transform = nextBase.Offset(v.Mul(-(1 - amount) * extent))
	}
}

func extentOf(n *tree.Node, dir tree.FocusDirection) float32 {
	if dir == tree.Left || dir == tree.Right {
		return n.Bounds.Dx()
	}
	return n.Bounds.Dy()
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
