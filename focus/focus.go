// SPDX-License-Identifier: Unlicense OR MIT

// Package focus implements the Focus Manager (§4.5): at-most-one
// focused component, directional and sequential navigation, static
// overrides, and the host-resolvable focus-release action used at
// document boundaries. It mirrors the shape of package scroller and
// package pager — one long-lived manager driven by discrete calls from
// the core, holding tree.Index references rather than node pointers —
// but owns no per-node animation state of its own; scrolling a new
// focus target into view is delegated to an injected hook so this
// package never needs to import package scroller.
package focus

import (
	"time"

	"github.com/fluxkit/interaction/config"
	"github.com/fluxkit/interaction/diag"
	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/key"
	"github.com/fluxkit/interaction/tree"
)

// Event is what the Focus Manager hands to its Sink on every change
// (§6 "Host-emitted events": Focus). Target is tree.NoIndex for a
// clear or a release. Action is non-nil only for a release whose
// outcome the host must resolve (§4.5 "focus-release event").
type Event struct {
	Target    tree.Index
	Bounds    f32.Rectangle
	Direction tree.FocusDirection
	Released  bool
	Action    *ActionRef
}

// ImplementsEvent marks Event as an event.Event.
func (Event) ImplementsEvent() {}

// Sink receives the events a Focus Manager emits.
type Sink interface {
	OnFocus(ev Event)
	OnOpenKeyboard(target tree.Index)
}

// NopSink discards every event, the default when a host doesn't care
// (mirrors diag.Discard).
type NopSink struct{}

func (NopSink) OnFocus(Event) {}

func (NopSink) OnOpenKeyboard(tree.Index) {}

// ActionRef is the oneshot slot a pending focus-release is resolved
// through (§5 "Focus-release action ref"). The host calls Resolve from
// its own event loop, arbitrarily later; the Manager only observes the
// result on a subsequent PollPending.
type ActionRef struct {
	resolved   bool
	terminated bool
	allow      bool
}

// Resolve records the host's decision. A Resolve after the ref has
// already been terminated by competing input is silently ignored
// (§7 "Host-ignored-release" is the only other way this value never
// takes effect).
func (a *ActionRef) Resolve(allow bool) {
	if a == nil || a.terminated || a.resolved {
		return
	}
	a.resolved = true
	a.allow = allow
}

// ScrollIntoViewFunc brings target's bounds into view inside scrollable
// by whatever means the caller's Scroller uses, honoring its snap
// policy (§4.5 "Scrolling side-effects"). Wired by package core, which
// owns the per-node *scroller.Scroller registry this package never
// sees.
type ScrollIntoViewFunc func(tr *tree.Tree, scrollable, target tree.Index, now time.Duration)

// ScrollByViewportFunc scrolls scrollable by one viewport along axis
// (forward in increasing-offset direction if forward) and reports
// whether there was room to do so (§4.5 "scroll by one viewport along
// the axis").
type ScrollByViewportFunc func(tr *tree.Tree, scrollable tree.Index, axis tree.Axis, forward bool, now time.Duration) bool

// Manager is the Focus Manager. Zero value is not usable; construct
// with New.
type Manager struct {
	cfg  config.Config
	sink Sink
	diag diag.Sink

	ScrollIntoView   ScrollIntoViewFunc
	ScrollByViewport ScrollByViewportFunc

	current tree.Index
	pending *ActionRef
}

// New returns an empty Manager. sink defaults to NopSink, diagSink to
// diag.Discard, if nil.
func New(cfg config.Config, sink Sink, diagSink diag.Sink) *Manager {
	if sink == nil {
		sink = NopSink{}
	}
	if diagSink == nil {
		diagSink = diag.Discard
	}
	return &Manager{cfg: cfg, sink: sink, diag: diagSink}
}

// GetFocus returns the currently focused component, or tree.NoIndex.
func (m *Manager) GetFocus() tree.Index { return m.current }

// GetFocusableAreas returns every reachable focusable component's
// global bounds (§4.5 operation 5).
func (m *Manager) GetFocusableAreas(tr *tree.Tree) map[tree.Index]f32.Rectangle {
	areas := map[tree.Index]f32.Rectangle{}
	for _, idx := range focusables(tr) {
		areas[idx] = tr.GlobalBounds(idx)
	}
	return areas
}

// focusables returns every reachable node with the Focusable capability
// in document order. Reachable, not just Visible: an invisible ancestor
// (opacity=0, display=none) hides every descendant regardless of the
// descendant's own Visible bit (I6). Walk still recurses into such a
// subtree because this callback always returns true (returning false
// would end the whole walk), so each node is checked with Reachable.
func focusables(tr *tree.Tree) []tree.Index {
	var out []tree.Index
	tr.Walk(tr.Root(), func(idx tree.Index) bool {
		n := tr.Node(idx)
		if n == nil || !tr.Reachable(idx) {
			return true
		}
		if n.Has(tree.Focusable) && !n.Disabled() {
			out = append(out, idx)
		}
		return true
	})
	return out
}

// SetFocus is operation 1: programmatic/host-driven focus (§4.5). A
// non-focusable or unreachable target fails silently.
func (m *Manager) SetFocus(tr *tree.Tree, target tree.Index, dir tree.FocusDirection, now time.Duration) bool {
	m.terminatePending()
	n := tr.Node(target)
	if n == nil || !n.Has(tree.Focusable) || n.Disabled() || !tr.Reachable(target) {
		m.diag.Logf("focus: SetFocus(%v) refused, target is not a reachable focusable component", target)
		return false
	}
	m.moveTo(tr, target, dir, now)
	return true
}

// ClearFocus is operation 2: immediate, emits a null-component event.
func (m *Manager) ClearFocus(tr *tree.Tree) {
	m.terminatePending()
	if m.current == tree.NoIndex {
		return
	}
	m.clearFocusBit(tr, m.current)
	m.current = tree.NoIndex
	m.sink.OnFocus(Event{Target: tree.NoIndex, Released: false})
}

// NextFocus is operation 3: a directional or sequential move from the
// current focus (§4.5). It returns true if focus changed, a pager page
// advanced, or a scroll-instead took place — false only when the move
// was entirely absorbed by a pending focus-release.
func (m *Manager) NextFocus(tr *tree.Tree, dir tree.FocusDirection, now time.Duration) bool {
	m.terminatePending()

	if m.current != tree.NoIndex {
		if n := tr.Node(m.current); n != nil {
			if target, ok := n.NextFocus[dir]; ok {
				if tn := tr.Node(target); tn != nil && tn.Has(tree.Focusable) && !tn.Disabled() && tr.Reachable(target) {
					m.moveTo(tr, target, dir, now)
					return true
				}
			}
		}
	}

	switch dir {
	case tree.Forward, tree.Backward:
		return m.sequentialMove(tr, dir, now)
	default:
		return m.directionalMove(tr, dir, now)
	}
}

// HandleKey translates the navigation keys of §6's key event wire
// contract into NextFocus calls. Enter/NumpadEnter/MediaPlayPause are
// not navigation and are ignored here; the core does not turn them into
// a press on the focused component either.
func (m *Manager) HandleKey(tr *tree.Tree, ev key.Event, now time.Duration) bool {
	if ev.State != key.Press {
		return false
	}
	var dir tree.FocusDirection
	switch ev.Name {
	case key.NameArrowUp:
		dir = tree.Up
	case key.NameArrowDown:
		dir = tree.Down
	case key.NameArrowLeft:
		dir = tree.Left
	case key.NameArrowRight:
		dir = tree.Right
	case key.NameTab:
		dir = tree.Forward
		if ev.Modifiers.Contain(key.ModShift) {
			dir = tree.Backward
		}
	default:
		return false
	}
	return m.NextFocus(tr, dir, now)
}

// NotifyCompetingInput terminates any pending focus-release action
// without processing a new navigation request (§5 Cancellation,
// "focus-release action churn"). NextFocus, SetFocus and ClearFocus
// already call this internally; expose it for pointer input, which is
// "competing input" too but doesn't flow through this package.
func (m *Manager) NotifyCompetingInput() { m.terminatePending() }

func (m *Manager) terminatePending() {
	if m.pending != nil {
		m.pending.terminated = true
		m.pending = nil
	}
}

// PollPending is called from the core's clearPending pump (§5
// Ordering). If the outstanding release action has been resolved, it
// applies the result: true clears focus, false leaves it untouched.
func (m *Manager) PollPending(tr *tree.Tree) {
	if m.pending == nil || !m.pending.resolved {
		return
	}
	ref := m.pending
	m.pending = nil
	if ref.terminated || !ref.allow {
		return
	}
	if m.current != tree.NoIndex {
		m.clearFocusBit(tr, m.current)
		m.current = tree.NoIndex
	}
}

// ReconcileRemoved implements the tree-mutation semantics of §4.5: if
// the focused component no longer exists, emit a release event and do
// not auto-pick a replacement. The core calls this after any
// tree.Remove that might have touched the focused subtree.
func (m *Manager) ReconcileRemoved(tr *tree.Tree) {
	if m.current == tree.NoIndex || tr.Valid(m.current) {
		return
	}
	m.current = tree.NoIndex
	m.terminatePending()
	m.sink.OnFocus(Event{Target: tree.NoIndex, Released: true})
}

// OnPagerPageChanged implements §4.5's pager-page-change focus
// transfer: when a pager's current page changes programmatically (not
// via NextFocus's own page switch, which already targets the right
// page) and the focused component lived on the page being left, focus
// moves to the pager container itself, bypassing the ordinary
// Focusable check since a pager container need not be independently
// focusable.
func (m *Manager) OnPagerPageChanged(tr *tree.Tree, pagerIdx tree.Index, oldPage int) {
	if m.current == tree.NoIndex {
		return
	}
	page, ok := childPageOf(tr, pagerIdx, m.current)
	if !ok || page != oldPage {
		return
	}
	m.clearFocusBit(tr, m.current)
	m.current = pagerIdx
	if n := tr.Node(pagerIdx); n != nil {
		n.States |= tree.Focused
	}
	m.sink.OnFocus(Event{Target: pagerIdx, Bounds: tr.GlobalBounds(pagerIdx)})
}

// FocusEditTextOnTap implements §4.5's "Edit-text tap-to-focus": called
// by the core from the pointer pipeline's onPress hook when
// cfg.EditTextTapToFocus is enabled. It focuses target directly if it's
// an EditText, or target's sole child if that child is an EditText,
// and emits OpenKeyboard in addition to (not instead of) the ordinary
// onUp the pipeline already delivered.
func (m *Manager) FocusEditTextOnTap(tr *tree.Tree, target tree.Index, now time.Duration) bool {
	if !m.cfg.EditTextTapToFocus {
		return false
	}
	n := tr.Node(target)
	if n == nil {
		return false
	}
	editIdx := tree.NoIndex
	if n.Has(tree.EditText) {
		editIdx = target
	} else if children := n.Children(); len(children) == 1 {
		if cn := tr.Node(children[0]); cn != nil && cn.Has(tree.EditText) {
			editIdx = children[0]
		}
	}
	if editIdx == tree.NoIndex {
		return false
	}
	m.SetFocus(tr, editIdx, tree.Forward, now)
	m.sink.OnOpenKeyboard(editIdx)
	return true
}

func (m *Manager) clearFocusBit(tr *tree.Tree, idx tree.Index) {
	if n := tr.Node(idx); n != nil {
		n.States &^= tree.Focused
	}
}

// moveTo commits focus to idx, moving the Focused state bit (owned
// exclusively by this Manager per §5), applying any pending pager page
// switch, running the scroll-into-view side effect, and emitting the
// change.
func (m *Manager) moveTo(tr *tree.Tree, idx tree.Index, dir tree.FocusDirection, now time.Duration) {
	if m.current != tree.NoIndex && m.current != idx {
		m.clearFocusBit(tr, m.current)
	}
	m.current = idx
	if n := tr.Node(idx); n != nil {
		n.States |= tree.Focused
	}
	m.runScrollIntoView(tr, idx, now)
	m.sink.OnFocus(Event{Target: idx, Bounds: tr.GlobalBounds(idx), Direction: dir})
}

func (m *Manager) runScrollIntoView(tr *tree.Tree, idx tree.Index, now time.Duration) {
	if m.ScrollIntoView == nil {
		return
	}
	for _, a := range tr.Ancestors(idx) {
		if n := tr.Node(a); n != nil && n.Has(tree.Scrollable) {
			m.ScrollIntoView(tr, a, idx, now)
		}
	}
}

// emitRelease implements the "no candidate exists at all" branch of
// §4.5: a host-resolvable action ref, focus unchanged until resolved.
func (m *Manager) emitRelease(dir tree.FocusDirection) {
	ref := &ActionRef{}
	m.pending = ref
	m.sink.OnFocus(Event{Released: true, Direction: dir, Action: ref})
}

// sequentialMove implements §4.5's "Sequential algorithm": a
// document-order walk among focusables, wrapping never — Forward past
// the last, or Backward past the first, emits a release.
func (m *Manager) sequentialMove(tr *tree.Tree, dir tree.FocusDirection, now time.Duration) bool {
	list := focusables(tr)
	if len(list) == 0 {
		m.emitRelease(dir)
		return false
	}
	if m.current == tree.NoIndex {
		if dir == tree.Backward {
			m.moveTo(tr, list[len(list)-1], dir, now)
		} else {
			m.moveTo(tr, list[0], dir, now)
		}
		return true
	}
	pos := -1
	for i, idx := range list {
		if idx == m.current {
			pos = i
			break
		}
	}
	if pos == -1 {
		m.moveTo(tr, list[0], dir, now)
		return true
	}
	if dir == tree.Forward {
		if pos+1 >= len(list) {
			m.emitRelease(dir)
			return false
		}
		m.moveTo(tr, list[pos+1], dir, now)
		return true
	}
	if pos-1 < 0 {
		m.emitRelease(dir)
		return false
	}
	m.moveTo(tr, list[pos-1], dir, now)
	return true
}

// directionalMove implements §4.5's "Directional algorithm".
func (m *Manager) directionalMove(tr *tree.Tree, dir tree.FocusDirection, now time.Duration) bool {
	list := focusables(tr)

	if m.current == tree.NoIndex {
		best, ok := defaultCandidate(tr, list, dir)
		if !ok {
			m.emitRelease(dir)
			return false
		}
		m.moveTo(tr, best, dir, now)
		return true
	}

	origin := tr.GlobalBounds(m.current)
	direct, directOK := tree.NoIndex, false
	cone, coneOK := tree.NoIndex, false
	var directScore, directPerp, coneScore, conePerp float32

	for _, idx := range list {
		if idx == m.current {
			continue
		}
		cand := tr.GlobalBounds(idx)
		axisDist, ahead := axisDistance(origin, cand, dir)
		if !ahead {
			continue
		}
		perp := perpDistance(origin, cand, dir)
		if overlapsPerp(origin, cand, dir) {
			if !directOK || axisDist < directScore || (axisDist == directScore && perp < directPerp) {
				direct, directOK, directScore, directPerp = idx, true, axisDist, perp
			}
			continue
		}
		if perp <= axisDist {
			score := axisDist + perp
			if !coneOK || score < coneScore || (score == coneScore && perp < conePerp) {
				cone, coneOK, coneScore, conePerp = idx, true, score, perp
			}
		}
	}

	if directOK {
		if pagerIdx, targetPage, ok := crossesPage(tr, m.current, direct); ok {
			if n := tr.Node(pagerIdx); n != nil && n.Nav != tree.NavNone {
				n.Page = targetPage
			}
		}
		m.moveTo(tr, direct, dir, now)
		return true
	}
	if coneOK {
		m.moveTo(tr, cone, dir, now)
		return true
	}

	if m.tryScrollInstead(tr, dir, now) {
		return true
	}
	m.emitRelease(dir)
	return false
}

// defaultCandidate picks the "most appropriate candidate" §4.5
// describes for NextFocus with no current focus: forward/backward pick
// by document order (handled by sequentialMove); the four directional
// entries are generalized from the spec's single worked example
// ("down -> topmost focusable") to the edge a user entering from that
// direction would logically land on first.
func defaultCandidate(tr *tree.Tree, list []tree.Index, dir tree.FocusDirection) (tree.Index, bool) {
	if len(list) == 0 {
		return tree.NoIndex, false
	}
	best := list[0]
	bestRect := tr.GlobalBounds(best)
	for _, idx := range list[1:] {
		r := tr.GlobalBounds(idx)
		switch dir {
		case tree.Down:
			if r.Min.Y < bestRect.Min.Y {
				best, bestRect = idx, r
			}
		case tree.Up:
			if r.Max.Y > bestRect.Max.Y {
				best, bestRect = idx, r
			}
		case tree.Right:
			if r.Min.X < bestRect.Min.X {
				best, bestRect = idx, r
			}
		case tree.Left:
			if r.Max.X > bestRect.Max.X {
				best, bestRect = idx, r
			}
		}
	}
	return best, true
}

// axisDistance reports the gap between origin and cand along dir's
// axis, and whether cand lies in the half-plane ahead of origin.
func axisDistance(origin, cand f32.Rectangle, dir tree.FocusDirection) (float32, bool) {
	switch dir {
	case tree.Down:
		if cand.Min.Y < origin.Max.Y {
			return 0, false
		}
		return cand.Min.Y - origin.Max.Y, true
	case tree.Up:
		if cand.Max.Y > origin.Min.Y {
			return 0, false
		}
		return origin.Min.Y - cand.Max.Y, true
	case tree.Right:
		if cand.Min.X < origin.Max.X {
			return 0, false
		}
		return cand.Min.X - origin.Max.X, true
	case tree.Left:
		if cand.Max.X > origin.Min.X {
			return 0, false
		}
		return origin.Min.X - cand.Max.X, true
	default:
		return 0, false
	}
}

// overlapsPerp reports whether origin and cand's projections onto the
// cross axis overlap — a "direct" match per §4.5.
func overlapsPerp(origin, cand f32.Rectangle, dir tree.FocusDirection) bool {
	if dir == tree.Up || dir == tree.Down {
		return rangesOverlap(origin.Min.X, origin.Max.X, cand.Min.X, cand.Max.X)
	}
	return rangesOverlap(origin.Min.Y, origin.Max.Y, cand.Min.Y, cand.Max.Y)
}

// perpDistance is the distance between origin and cand's centers along
// the cross axis, used for tie-breaking and the 45° cone test.
func perpDistance(origin, cand f32.Rectangle, dir tree.FocusDirection) float32 {
	if dir == tree.Up || dir == tree.Down {
		return absf(origin.Center().X - cand.Center().X)
	}
	return absf(origin.Center().Y - cand.Center().Y)
}

func rangesOverlap(aMin, aMax, bMin, bMax float32) bool {
	return aMin < bMax && bMin < aMax
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// crossesPage reports whether to, relative to from, lives on a
// different page of a common ancestor pager that is still free to
// navigate there (§4.5 "lives on a different page of an ancestor
// pager").
func crossesPage(tr *tree.Tree, from, to tree.Index) (pagerIdx tree.Index, targetPage int, ok bool) {
	pagerIdx, ok = tr.NearestAncestor(to, tree.Paged)
	if !ok {
		return tree.NoIndex, 0, false
	}
	fromPager, fromOK := tr.NearestAncestor(from, tree.Paged)
	if !fromOK || fromPager != pagerIdx {
		return tree.NoIndex, 0, false
	}
	targetPage, pageOK := childPageOf(tr, pagerIdx, to)
	n := tr.Node(pagerIdx)
	if !pageOK || n == nil || targetPage == n.Page {
		return tree.NoIndex, 0, false
	}
	return pagerIdx, targetPage, true
}

// childPageOf reports which page of pagerIdx contains idx (idx may be
// the page child itself or any of its descendants).
func childPageOf(tr *tree.Tree, pagerIdx, idx tree.Index) (int, bool) {
	n := tr.Node(pagerIdx)
	if n == nil {
		return 0, false
	}
	children := n.Children()
	chain := append([]tree.Index{idx}, tr.Ancestors(idx)...)
	for _, c := range chain {
		for page, child := range children {
			if child == c {
				return page, true
			}
		}
	}
	return 0, false
}

// tryScrollInstead implements §4.5's "scroll by one viewport" fallback:
// when the current focus sits inside a scrollable that still has room
// to move along dir's axis, scroll it instead of releasing focus.
func (m *Manager) tryScrollInstead(tr *tree.Tree, dir tree.FocusDirection, now time.Duration) bool {
	if m.ScrollByViewport == nil {
		return false
	}
	axis, forward, ok := scrollAxisFor(dir)
	if !ok {
		return false
	}
	scrollIdx := m.current
	if n := tr.Node(scrollIdx); n == nil || !n.Has(tree.Scrollable) || n.ScrollAxis != axis {
		a, aok := tr.NearestAncestor(m.current, tree.Scrollable)
		if !aok || tr.Node(a).ScrollAxis != axis {
			return false
		}
		scrollIdx = a
	}
	return m.ScrollByViewport(tr, scrollIdx, axis, forward, now)
}

func scrollAxisFor(dir tree.FocusDirection) (tree.Axis, bool, bool) {
	switch dir {
	case tree.Down:
		return tree.Vertical, true, true
	case tree.Up:
		return tree.Vertical, false, true
	case tree.Right:
		return tree.Horizontal, true, true
	case tree.Left:
		return tree.Horizontal, false, true
	default:
		return 0, false, false
	}
}
